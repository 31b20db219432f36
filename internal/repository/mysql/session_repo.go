package mysql

import (
	"context"

	"Lee_Channel/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	return translate(r.DB.WithContext(ctx).Create(s).Error)
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	err := r.DB.WithContext(ctx).First(&s, "token = ?", token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// DeleteByToken is idempotent: deleting an absent session is not an error.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return translate(r.DB.WithContext(ctx).Delete(&model.Session{}, "token = ?", token).Error)
}

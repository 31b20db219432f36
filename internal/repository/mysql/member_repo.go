package mysql

import (
	"context"

	"Lee_Channel/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChannelMemberRepository struct {
	DB *gorm.DB
}

func (r *ChannelMemberRepository) Get(ctx context.Context, channelID, userID uuid.UUID) (*model.ChannelMember, error) {
	var m model.ChannelMember
	err := r.DB.WithContext(ctx).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *ChannelMemberRepository) List(ctx context.Context, channelID uuid.UUID) ([]model.ChannelMember, error) {
	var list []model.ChannelMember
	err := r.DB.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (r *ChannelMemberRepository) Add(ctx context.Context, m *model.ChannelMember) error {
	return translate(r.DB.WithContext(ctx).Create(m).Error)
}

func (r *ChannelMemberRepository) Remove(ctx context.Context, channelID, userID uuid.UUID) error {
	return translate(r.DB.WithContext(ctx).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&model.ChannelMember{}).Error)
}

func (r *ChannelMemberRepository) UpdateRole(ctx context.Context, channelID, userID uuid.UUID, role model.UserRole) error {
	return translate(r.DB.WithContext(ctx).Model(&model.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Update("role", role).Error)
}

func (r *ChannelMemberRepository) CountAdmins(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ChannelMember{}).
		Where("channel_id = ? AND role = ?", channelID, model.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (r *ChannelMemberRepository) Count(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ChannelMember{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

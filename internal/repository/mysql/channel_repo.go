package mysql

import (
	"context"

	"Lee_Channel/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChannelRepository struct {
	DB *gorm.DB
}

// CreateWithAdmin inserts the channel and its creator's admin membership in
// one transaction, so a channel can never exist without an admin.
func (r *ChannelRepository) CreateWithAdmin(ctx context.Context, ch *model.Channel, creatorID uuid.UUID) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ch).Error; err != nil {
			return err
		}
		return tx.Create(&model.ChannelMember{
			ChannelID: ch.ID,
			UserID:    creatorID,
			Role:      model.RoleAdmin,
		}).Error
	})
	return translate(err)
}

func (r *ChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	var ch model.Channel
	err := r.DB.WithContext(ctx).First(&ch, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ch, nil
}

func (r *ChannelRepository) Patch(ctx context.Context, id uuid.UUID, patch model.ChannelPatch) (*model.Channel, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Topic != nil {
		updates["topic"] = *patch.Topic
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if len(updates) > 0 {
		err := r.DB.WithContext(ctx).Model(&model.Channel{}).
			Where("id = ?", id).
			Updates(updates).Error
		if err != nil {
			return nil, translate(err)
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes the channel and cascades over its members in one
// transaction.
func (r *ChannelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ChannelMember{}, "channel_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Channel{}, "id = ?", id).Error
	})
	return translate(err)
}

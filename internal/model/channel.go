package model

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is a closed set; the authorization rules live in one place
// (ChannelService) so new roles only touch the decision function.
type UserRole int

const (
	RoleMember UserRole = 0
	RoleAdmin  UserRole = 1
)

func (r UserRole) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

type Channel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Topic       string    `gorm:"size:128" json:"topic"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uuid.UUID `gorm:"type:char(36);not null;index" json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChannelPatch carries the patchable channel fields; nil means leave as is.
type ChannelPatch struct {
	Name        *string `json:"name"`
	Topic       *string `json:"topic"`
	Description *string `json:"description"`
}

type ChannelMember struct {
	ChannelID uuid.UUID `gorm:"type:char(36);primaryKey" json:"channel_id"`
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey" json:"user_id"`
	Role      UserRole  `gorm:"not null;default:0" json:"role"`
	CreatedAt time.Time `json:"joined_at"`
	UpdatedAt time.Time `json:"-"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is one login. A user may hold several at once; logout removes only
// the presented one. Expiry is checked at resolve time, there is no sweeper.
type Session struct {
	Token     string    `gorm:"primaryKey;size:512" json:"token"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index" json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// OtpToken is a single-use signup code. Expiry is lazy: every lookup must
// filter on used = false AND expires_at > now.
type OtpToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

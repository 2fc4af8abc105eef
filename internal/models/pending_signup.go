package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingSignup holds the email and pre-hashed credential between OTP
// issuance and verification, keyed by a token returned to the client.
// One row per email: re-issuing an OTP replaces the token, hash and expiry.
type PendingSignup struct {
	Token        uuid.UUID `gorm:"type:uuid;primaryKey" json:"token"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is a verified identity. Rows are created only by successful OTP
// consumption, never directly by signup.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Username     string         `gorm:"size:100;uniqueIndex" json:"username"`
	FirstName    string         `gorm:"size:100" json:"first_name"`
	Birthday     string         `gorm:"size:10" json:"birthday"`
	StarSign     string         `gorm:"size:20" json:"star_sign"`
	Location     string         `gorm:"size:255" json:"location"`
	Interests    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"interests"`
	Verified     bool           `gorm:"default:false" json:"verified"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// VibeDecision is the append-only audit record of a vibe-call outcome. One
// row per call, written regardless of whether a Match already exists.
type VibeDecision struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CandidateID  uuid.UUID `gorm:"type:uuid;not null" json:"candidate_id"`
	Decision     string    `gorm:"size:10;not null" json:"decision"`
	CallDuration int       `json:"call_duration"`
	CreatedAt    time.Time `json:"created_at"`
}

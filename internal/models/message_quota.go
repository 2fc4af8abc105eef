package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageQuota counts messages sent by a user in a match on a calendar date
// (server-local, "2006-01-02"). Created lazily on the first send of the day,
// incremented after, never decremented; the date in the key gives the
// implicit daily rollover.
type MessageQuota struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_message_quotas_key" json:"user_id"`
	MatchID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_message_quotas_key" json:"match_id"`
	Date         string    `gorm:"size:10;not null;uniqueIndex:idx_message_quotas_key" json:"date"`
	MessagesSent int       `gorm:"not null;default:0" json:"messages_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is created only through the chat service send path. Read flips
// false -> true when the receiver fetches the match's messages, never back.
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MatchID    uuid.UUID `gorm:"type:uuid;not null;index" json:"match_id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"default:false" json:"read"`
	SentAt     time.Time `gorm:"not null;index" json:"sent_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Match is a mutual relationship unlocking messaging. The pair is stored in
// canonical order (UserAID sorts before UserBID), so the composite unique
// index also rules out reversed-order duplicates.
type Match struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserAID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair" json:"user_a_id"`
	UserBID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair" json:"user_b_id"`
	MatchedAt time.Time `json:"matched_at"`
}

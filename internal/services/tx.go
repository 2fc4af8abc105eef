package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const txRetryAttempts = 3

// withConflictRetry re-executes the transaction from the read step when it
// loses a write race (duplicate key on a lazily created row, serialization
// failure). Domain errors pass through untouched.
func withConflictRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txRetryAttempts; attempt++ {
		err = db.Transaction(fn)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return err
}

func isRetryableTxError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "could not serialize")
}

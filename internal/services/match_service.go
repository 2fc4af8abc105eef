package services

import (
	"bytes"
	"errors"
	"time"

	"github.com/gingerhq/ginger-backend/internal/candidates"
	"github.com/gingerhq/ginger-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DecisionPass  = "pass"
	DecisionMatch = "match"
)

var ErrInvalidDecision = errors.New("invalid decision")

type MatchService struct {
	db     *gorm.DB
	source candidates.Source
	now    func() time.Time
}

func NewMatchService(db *gorm.DB, source candidates.Source) *MatchService {
	return &MatchService{db: db, source: source, now: time.Now}
}

// RandomCandidate returns a profile to pair the caller with.
func (s *MatchService) RandomCandidate() (*candidates.Candidate, error) {
	return s.source.Random()
}

// RecordDecision appends the call outcome to the audit trail and, on a
// "match" decision, creates the match row. Creation is idempotent: an
// existing row for the pair is silently kept and the call still reports
// matched. The audit insert and the match insert share one transaction.
func (s *MatchService) RecordDecision(actorID, candidateID uuid.UUID, decision string, callDuration int) (bool, error) {
	if decision != DecisionPass && decision != DecisionMatch {
		return false, ErrInvalidDecision
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		record := models.VibeDecision{
			ID:           uuid.New(),
			UserID:       actorID,
			CandidateID:  candidateID,
			Decision:     decision,
			CallDuration: callDuration,
			CreatedAt:    s.now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if decision != DecisionMatch {
			return nil
		}

		a, b := canonicalPair(actorID, candidateID)
		match := models.Match{
			ID:        uuid.New(),
			UserAID:   a,
			UserBID:   b,
			MatchedAt: s.now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).Create(&match).Error
	})
	if err != nil {
		return false, err
	}
	return decision == DecisionMatch, nil
}

// ListMatches returns every match the user appears in, storage order.
func (s *MatchService) ListMatches(userID uuid.UUID) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	err := s.db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).Find(&matches).Error
	return matches, err
}

// canonicalPair orders the two ids so the unique index on (user_a_id,
// user_b_id) also catches reversed-order duplicates.
func canonicalPair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(x[:], y[:]) > 0 {
		return y, x
	}
	return x, y
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/gingerhq/ginger-backend/internal/dto"
	"github.com/gingerhq/ginger-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Each side of a match may send at most this many messages per calendar day.
const dailyMessageLimit = 3

var (
	ErrEmptyMessage  = errors.New("message cannot be empty")
	ErrQuotaExceeded = errors.New("daily message limit reached")
	ErrMatchNotFound = errors.New("match not found")
)

type ChatService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db, now: time.Now}
}

// SendMessage persists a message if the sender still has daily budget for
// the match. The quota check and increment run as one transaction: the
// increment is guarded by "messages_sent < limit" in the WHERE clause and
// the first-of-day insert is protected by the (user, match, date) unique
// index, so concurrent sends can never push the count past the limit. A
// duplicate-key loss on the lazy insert is retried from the read step.
func (s *ChatService) SendMessage(senderID uuid.UUID, req *dto.SendMessageRequest) (int, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return 0, ErrEmptyMessage
	}

	day := s.now().Format("2006-01-02")
	var left int

	err := withConflictRetry(s.db, func(tx *gorm.DB) error {
		var quota models.MessageQuota
		err := tx.Where("user_id = ? AND match_id = ? AND date = ?", senderID, req.MatchID, day).
			First(&quota).Error
		switch {
		case err == nil:
			if quota.MessagesSent >= dailyMessageLimit {
				return ErrQuotaExceeded
			}
			res := tx.Model(&models.MessageQuota{}).
				Where("id = ? AND messages_sent < ?", quota.ID, dailyMessageLimit).
				Update("messages_sent", gorm.Expr("messages_sent + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrQuotaExceeded
			}
			var updated models.MessageQuota
			if err := tx.First(&updated, "id = ?", quota.ID).Error; err != nil {
				return err
			}
			left = dailyMessageLimit - updated.MessagesSent
		case errors.Is(err, gorm.ErrRecordNotFound):
			quota = models.MessageQuota{
				ID:           uuid.New(),
				UserID:       senderID,
				MatchID:      req.MatchID,
				Date:         day,
				MessagesSent: 1,
			}
			if err := tx.Create(&quota).Error; err != nil {
				return err
			}
			left = dailyMessageLimit - 1
		default:
			return err
		}

		message := models.Message{
			ID:         uuid.New(),
			MatchID:    req.MatchID,
			SenderID:   senderID,
			ReceiverID: req.ReceiverID,
			Content:    content,
			SentAt:     s.now(),
		}
		return tx.Create(&message).Error
	})
	if err != nil {
		return 0, err
	}
	return left, nil
}

// FetchMessages returns the match's messages oldest-first and marks every
// message addressed to the viewer as read. The read and the mark share one
// transaction so the caller never observes a partially applied read-state.
func (s *ChatService) FetchMessages(matchID, viewerID uuid.UUID) ([]models.Message, error) {
	var match models.Match
	if err := s.db.First(&match, "id = ?", matchID).Error; err != nil {
		return nil, ErrMatchNotFound
	}
	if match.UserAID != viewerID && match.UserBID != viewerID {
		return nil, ErrMatchNotFound
	}

	messages := make([]models.Message, 0)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", matchID).
			Order("sent_at ASC").
			Find(&messages).Error; err != nil {
			return err
		}
		return tx.Model(&models.Message{}).
			Where("match_id = ? AND receiver_id = ? AND read = ?", matchID, viewerID, false).
			Update("read", true).Error
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

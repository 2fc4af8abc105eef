package dto

import "github.com/google/uuid"

type SendMessageRequest struct {
	MatchID    uuid.UUID `json:"match_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
}

type SendMessageResponse struct {
	Message      string `json:"message"`
	MessagesLeft int    `json:"messages_left"`
}

package dto

import "github.com/google/uuid"

type VibeDecisionRequest struct {
	Decision      string    `json:"decision"`
	MatchedUserID uuid.UUID `json:"matched_user_id"`
	CallDuration  int       `json:"call_duration"`
}

type VibeDecisionResponse struct {
	Message string `json:"message"`
	Matched bool   `json:"matched"`
}

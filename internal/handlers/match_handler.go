package handlers

import (
	"errors"

	"github.com/gingerhq/ginger-backend/internal/dto"
	"github.com/gingerhq/ginger-backend/internal/services"
	"github.com/gingerhq/ginger-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// RandomCandidate handles GET /api/random-match
func (h *MatchHandler) RandomCandidate(c *fiber.Ctx) error {
	if _, err := session.UserID(c); err != nil {
		return unauthorized(c)
	}

	candidate, err := h.matchService.RandomCandidate()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "No candidates available",
		})
	}

	return c.JSON(candidate)
}

// RecordDecision handles POST /api/vibe-decision
func (h *MatchHandler) RecordDecision(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.VibeDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	matched, err := h.matchService.RecordDecision(userID, req.MatchedUserID, req.Decision, req.CallDuration)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDecision) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record decision",
		})
	}

	return c.JSON(dto.VibeDecisionResponse{
		Message: "Decision recorded: " + req.Decision,
		Matched: matched,
	})
}

// ListMatches handles GET /api/matches
func (h *MatchHandler) ListMatches(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matches, err := h.matchService.ListMatches(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch matches",
		})
	}

	return c.JSON(matches)
}

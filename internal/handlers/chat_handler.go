package handlers

import (
	"errors"

	"github.com/gingerhq/ginger-backend/internal/dto"
	"github.com/gingerhq/ginger-backend/internal/services"
	"github.com/gingerhq/ginger-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage handles POST /api/send-message
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	left, err := h.chatService.SendMessage(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":         true,
				"message":       "Daily message limit reached (3 messages)",
				"messages_left": 0,
			})
		}
		if errors.Is(err, services.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SendMessageResponse{
		Message:      "Message sent",
		MessagesLeft: left,
	})
}

// GetMessages handles GET /api/messages/:matchId
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("matchId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid match id",
		})
	}

	messages, err := h.chatService.FetchMessages(matchID, userID)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch messages",
		})
	}

	return c.JSON(messages)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"whisperlink.backend/internal/domain/entities"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/interfaces/http/response"
)

// MessageService is the slice of the message usecase the handler depends on.
type MessageService interface {
	Send(ctx context.Context, username, content string) (*entities.Message, error)
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error)
	Delete(ctx context.Context, userID, messageID uuid.UUID) error
}

// MessageHandler handles anonymous message endpoints
type MessageHandler struct {
	service MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(service MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send accepts an anonymous message for a recipient. No authentication: the
// sender stays anonymous.
// POST /api/messages/send
func (h *MessageHandler) Send(c *gin.Context) {
	var input entities.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if _, err := h.service.Send(c.Request.Context(), input.Username, input.Content); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Message sent successfully", nil)
}

// List returns the signed-in user's messages, newest first
// GET /api/messages
func (h *MessageHandler) List(c *gin.Context) {
	userID, err := sessionUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	messages, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Messages fetched successfully", gin.H{
		"messages": messages,
	})
}

// Delete removes one of the signed-in user's messages
// DELETE /api/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	userID, err := sessionUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid message id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, messageID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Message deleted successfully", nil)
}

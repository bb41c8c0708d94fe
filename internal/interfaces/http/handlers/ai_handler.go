package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/infrastructure/ai"
	"whisperlink.backend/internal/interfaces/http/response"
)

// AssistantService is the slice of the assistant usecase the handler uses.
type AssistantService interface {
	Enhance(ctx context.Context, message string) (string, error)
	Generate(ctx context.Context, topic string) (string, error)
	AnalyzeSentiment(ctx context.Context, message string) (*ai.SentimentResult, error)
}

// AIHandler handles message-assistant endpoints
type AIHandler struct {
	service AssistantService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(service AssistantService) *AIHandler {
	return &AIHandler{service: service}
}

type enhanceRequest struct {
	Message string `json:"message" binding:"required"`
}

type generateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// Enhance rewrites a draft message for clarity and tone
// POST /api/ai/enhance
func (h *AIHandler) Enhance(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	enhanced, err := h.service.Enhance(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Message enhanced successfully", gin.H{
		"enhancedMessage": enhanced,
	})
}

// Generate produces message suggestions for a topic
// POST /api/ai/generate
func (h *AIHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	suggestions, err := h.service.Generate(c.Request.Context(), req.Topic)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Suggestions generated successfully", gin.H{
		"suggestions": suggestions,
	})
}

// Sentiment classifies a message's sentiment
// POST /api/ai/sentiment
func (h *AIHandler) Sentiment(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.service.AnalyzeSentiment(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Sentiment analyzed successfully", gin.H{
		"sentiment": result,
	})
}

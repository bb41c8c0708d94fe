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

// ProfileService resolves the authenticated user's profile.
type ProfileService interface {
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
}

// AcceptanceService flips whether the user accepts anonymous messages.
type AcceptanceService interface {
	ToggleAcceptance(ctx context.Context, userID uuid.UUID, accepting bool) error
}

// UserHandler handles the authenticated user's own resources
type UserHandler struct {
	profiles   ProfileService
	acceptance AcceptanceService
}

// NewUserHandler creates a new user handler
func NewUserHandler(profiles ProfileService, acceptance AcceptanceService) *UserHandler {
	return &UserHandler{
		profiles:   profiles,
		acceptance: acceptance,
	}
}

// Me returns the signed-in user's profile
// GET /api/user
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := sessionUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	profile, err := h.profiles.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User fetched successfully", gin.H{
		"user": profile,
	})
}

// ToggleAcceptance updates whether the user accepts anonymous messages
// POST /api/user/acceptance
func (h *UserHandler) ToggleAcceptance(c *gin.Context) {
	userID, err := sessionUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ToggleAcceptanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.acceptance.ToggleAcceptance(c.Request.Context(), userID, *input.IsAccepting); err != nil {
		response.Error(c, err)
		return
	}

	message := "You are no longer accepting messages"
	if *input.IsAccepting {
		message = "You are now accepting messages"
	}
	response.Success(c, http.StatusOK, message, gin.H{
		"isAccepting": *input.IsAccepting,
	})
}

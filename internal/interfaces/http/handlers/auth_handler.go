package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"whisperlink.backend/internal/domain/entities"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/interfaces/http/middleware"
	"whisperlink.backend/internal/interfaces/http/response"
)

// AuthService is the slice of the auth usecase the handler depends on.
type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterInput) error
	Verify(ctx context.Context, input *entities.VerifyInput) (*entities.AuthResponse, error)
	SignIn(ctx context.Context, input *entities.SignInInput) (*entities.AuthResponse, error)
	SignOut(ctx context.Context, tokenString string) error
	CheckUsername(ctx context.Context, username string) (bool, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	service       AuthService
	cookieMaxAge  int
	secureCookies bool
}

// NewAuthHandler creates a new auth handler. The cookie lifetime should match
// the session token lifetime.
func NewAuthHandler(service AuthService, cookieTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		service:       service,
		cookieMaxAge:  int(cookieTTL.Seconds()),
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.secureCookies, true)
}

// Register handles account registration and verification-code delivery
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.service.Register(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully. Please verify your email.", nil)
}

// Verify handles email verification and signs the caller in on success
// POST /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var input entities.VerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.service.Verify(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, auth.Token, h.cookieMaxAge)
	response.Success(c, http.StatusOK, "Account verified successfully", gin.H{
		"user": userPayload(auth.User),
	})
}

// SignIn handles credential sign-in
// POST /api/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var input entities.SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.service.SignIn(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, auth.Token, h.cookieMaxAge)
	response.Success(c, http.StatusOK, "Signed in successfully", gin.H{
		"user": userPayload(auth.User),
	})
}

// SignOut revokes the current session and clears the cookie
// POST /api/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie != "" {
		if err := h.service.SignOut(c.Request.Context(), cookie); err != nil {
			response.Error(c, err)
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Signed out successfully", nil)
}

// CheckUsername reports whether a username is free to register
// GET /api/auth/check-username?username=
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Error(c, domainerrors.BadRequest("username query parameter is required"))
		return
	}

	available, err := h.service.CheckUsername(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Username is already taken"
	if available {
		message = "Username is available"
	}
	response.Success(c, http.StatusOK, message, gin.H{
		"available": available,
	})
}

func userPayload(user *entities.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"isVerified":  user.IsVerified,
		"isAccepting": user.IsAccepting,
	}
}

// sessionUserID extracts the authenticated user's id set by CookieAuth.
func sessionUserID(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetString(middleware.UserIDKey)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.Unauthorized("Authentication required")
	}
	return userID, nil
}

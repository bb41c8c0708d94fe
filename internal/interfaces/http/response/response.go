package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "whisperlink.backend/internal/domain/errors"
)

// Success sends a success envelope, merging extra payload fields in
func Success(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error converts any error to the uniform failure envelope. Domain sentinels
// carry their own status and a caller-safe message; everything else becomes
// an opaque 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"success": false,
			"message": appErr.Message,
		})
		return
	}

	status, message := classify(err)
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		// One message for both unknown identifier and wrong password.
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domainerrors.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, domainerrors.ErrInvalidCode):
		return http.StatusBadRequest, "Invalid verification code"
	case errors.Is(err, domainerrors.ErrExpiredCode):
		return http.StatusBadRequest, "Verification code has expired"
	case errors.Is(err, domainerrors.ErrAlreadyVerified):
		return http.StatusBadRequest, "User is already verified"
	case errors.Is(err, domainerrors.ErrNotVerified):
		return http.StatusBadRequest, "User is not verified"
	case errors.Is(err, domainerrors.ErrNotAccepting):
		return http.StatusForbidden, "User is not accepting messages"
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domainerrors.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domainerrors.ErrEmailDispatch):
		return http.StatusInternalServerError, "Failed to send verification email"
	case errors.Is(err, domainerrors.ErrUpstream):
		return http.StatusInternalServerError, "Upstream service failure"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

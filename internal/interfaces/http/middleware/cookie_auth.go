package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"whisperlink.backend/pkg/jwt"
)

const (
	// SessionCookieName is the cookie holding the session token
	SessionCookieName = "token"
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UsernameKey is the context key for username
	UsernameKey = "username"
	// VerifiedKey is the context key for the verification flag
	VerifiedKey = "isVerified"
)

// RevocationChecker reports whether a token id has been revoked by sign-out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) bool
}

// CookieAuth authenticates API requests from the session cookie, falling back
// to a bearer Authorization header. On success it stores the session identity
// in the gin context for handlers downstream.
func CookieAuth(tokens *jwt.Service, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		if revoked != nil && revoked.IsRevoked(c.Request.Context(), claims.ID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID.String())
		c.Set(UserEmailKey, claims.Email)
		c.Set(UsernameKey, claims.Username)
		c.Set(VerifiedKey, claims.Verified)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(header, BearerPrefix) {
		return strings.TrimPrefix(header, BearerPrefix)
	}
	return ""
}

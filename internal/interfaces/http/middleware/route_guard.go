package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"whisperlink.backend/pkg/jwt"
)

// PathClass classifies a request path for the page guard.
type PathClass int

const (
	// PathPublic is any page outside the guarded sets
	PathPublic PathClass = iota
	// PathProtected requires a valid, verified session
	PathProtected
	// PathAuthOnly is for sign-in/sign-up/verify pages
	PathAuthOnly
)

// TokenState is the session token's standing on the current request.
type TokenState int

const (
	// TokenAbsent means no session cookie was sent
	TokenAbsent TokenState = iota
	// TokenInvalid means the cookie failed validation or was revoked
	TokenInvalid
	// TokenValid means the cookie carries a live session
	TokenValid
)

// GuardAction is the page guard's verdict for a request.
type GuardAction int

const (
	// GuardAllow lets the request through
	GuardAllow GuardAction = iota
	// GuardRedirectSignIn sends the visitor to the sign-in page
	GuardRedirectSignIn
	// GuardClearAndRedirectSignIn drops the bad cookie, then redirects to sign-in
	GuardClearAndRedirectSignIn
	// GuardRedirectVerify sends an unverified session to the verify page
	GuardRedirectVerify
	// GuardRedirectDashboard sends a signed-in visitor off the auth pages
	GuardRedirectDashboard
)

const (
	signInPath    = "/sign-in"
	verifyPath    = "/verify"
	dashboardPath = "/dashboard"
)

var (
	protectedPrefixes = []string{"/dashboard", "/messages", "/settings", "/send-message"}
	authOnlyPrefixes  = []string{"/sign-in", "/sign-up", "/verify"}
)

// ClassifyPath buckets a page path by prefix. API paths are never classified
// here; the guard skips them entirely.
func ClassifyPath(path string) PathClass {
	for _, prefix := range protectedPrefixes {
		if hasPathPrefix(path, prefix) {
			return PathProtected
		}
	}
	for _, prefix := range authOnlyPrefixes {
		if hasPathPrefix(path, prefix) {
			return PathAuthOnly
		}
	}
	return PathPublic
}

func hasPathPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// Decide applies the page access rules for one request. It is pure so the
// whole decision table can be exercised without HTTP plumbing.
func Decide(class PathClass, state TokenState, verified bool, path string) GuardAction {
	switch class {
	case PathProtected:
		switch state {
		case TokenAbsent:
			return GuardRedirectSignIn
		case TokenInvalid:
			return GuardClearAndRedirectSignIn
		default:
			if !verified {
				return GuardRedirectVerify
			}
			return GuardAllow
		}
	case PathAuthOnly:
		if state != TokenValid {
			return GuardAllow
		}
		if !verified {
			if hasPathPrefix(path, verifyPath) {
				return GuardAllow
			}
			return GuardRedirectVerify
		}
		return GuardRedirectDashboard
	default:
		return GuardAllow
	}
}

// RouteGuard enforces page access rules on non-API routes. API routes carry
// their own authentication middleware and pass through untouched.
func RouteGuard(tokens *jwt.Service, revoked RevocationChecker, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			c.Next()
			return
		}

		state := TokenAbsent
		verified := false
		if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
			claims, err := tokens.Validate(cookie)
			switch {
			case err != nil:
				state = TokenInvalid
			case revoked != nil && revoked.IsRevoked(c.Request.Context(), claims.ID):
				state = TokenInvalid
			default:
				state = TokenValid
				verified = claims.Verified
			}
		}

		switch Decide(ClassifyPath(path), state, verified, path) {
		case GuardRedirectSignIn:
			redirect(c, signInPath)
		case GuardClearAndRedirectSignIn:
			c.SetCookie(SessionCookieName, "", -1, "/", "", secureCookies, true)
			redirect(c, signInPath)
		case GuardRedirectVerify:
			redirect(c, verifyPath)
		case GuardRedirectDashboard:
			redirect(c, dashboardPath)
		default:
			c.Next()
		}
	}
}

func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusFound, to)
	c.Abort()
}

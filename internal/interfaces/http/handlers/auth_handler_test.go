package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"whisperlink.backend/internal/domain/entities"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/interfaces/http/middleware"
)

const testCookieTTL = 7 * 24 * time.Hour

func newAuthTestRouter(stub *authServiceStub) *gin.Engine {
	h := NewAuthHandler(stub, testCookieTTL, false)
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/verify", h.Verify)
	r.POST("/api/auth/sign-in", h.SignIn)
	r.POST("/api/auth/sign-out", h.SignOut)
	r.GET("/api/auth/check-username", h.CheckUsername)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func authResponseFor(user *entities.User) *entities.AuthResponse {
	return &entities.AuthResponse{Token: "signed-token", User: user}
}

func testUser(verified bool) *entities.User {
	return &entities.User{
		ID:          uuid.New(),
		Username:    "ada",
		Email:       "ada@example.com",
		IsVerified:  verified,
		IsAccepting: true,
	}
}

func TestRegisterReturnsCreated(t *testing.T) {
	stub := &authServiceStub{}
	w := postJSON(newAuthTestRouter(stub), "/api/auth/register",
		`{"email":"ada@example.com","username":"ada","password":"secret1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Please verify your email")
	require.Len(t, stub.registered, 1)
	assert.Equal(t, "ada@example.com", stub.registered[0].Email)
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"username":"ada","password":"secret1"}`},
		{"bad email", `{"email":"nope","username":"ada","password":"secret1"}`},
		{"short username", `{"email":"a@b.com","username":"ab","password":"secret1"}`},
		{"non alphanumeric username", `{"email":"a@b.com","username":"ada!","password":"secret1"}`},
		{"short password", `{"email":"a@b.com","username":"ada","password":"abc"}`},
		{"not json", `{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &authServiceStub{}
			w := postJSON(newAuthTestRouter(stub), "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, stub.registered)
		})
	}
}

func TestRegisterMapsDuplicateToBadRequest(t *testing.T) {
	stub := &authServiceStub{registerErr: domainerrors.ErrAlreadyExists}
	w := postJSON(newAuthTestRouter(stub), "/api/auth/register",
		`{"email":"ada@example.com","username":"ada","password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestRegisterMapsDispatchFailureToServerError(t *testing.T) {
	stub := &authServiceStub{registerErr: domainerrors.ErrEmailDispatch}
	w := postJSON(newAuthTestRouter(stub), "/api/auth/register",
		`{"email":"ada@example.com","username":"ada","password":"secret1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to send verification email")
}

func TestVerifySetsSessionCookie(t *testing.T) {
	stub := &authServiceStub{verifyResp: authResponseFor(testUser(true))}
	w := postJSON(newAuthTestRouter(stub), "/api/auth/verify",
		`{"email":"ada@example.com","code":"123456"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isVerified":true`)
	assert.NotContains(t, w.Body.String(), "signed-token")

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int(testCookieTTL.Seconds()), cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
}

func TestVerifyRejectsMalformedCode(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"too short", `{"email":"a@b.com","code":"123"}`},
		{"not numeric", `{"email":"a@b.com","code":"12345a"}`},
		{"missing", `{"email":"a@b.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &authServiceStub{verifyResp: authResponseFor(testUser(true))}
			w := postJSON(newAuthTestRouter(stub), "/api/auth/verify", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestVerifyMapsCodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"wrong code", domainerrors.ErrInvalidCode, http.StatusBadRequest, "Invalid verification code"},
		{"expired code", domainerrors.ErrExpiredCode, http.StatusBadRequest, "Verification code has expired"},
		{"already verified", domainerrors.ErrAlreadyVerified, http.StatusBadRequest, "User is already verified"},
		{"unknown account", domainerrors.ErrNotFound, http.StatusNotFound, "Resource not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &authServiceStub{verifyErr: tt.err}
			w := postJSON(newAuthTestRouter(stub), "/api/auth/verify",
				`{"email":"a@b.com","code":"123456"}`)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.Nil(t, sessionCookie(t, w))
		})
	}
}

func TestSignInSetsSessionCookie(t *testing.T) {
	stub := &authServiceStub{signInResp: authResponseFor(testUser(false))}
	w := postJSON(newAuthTestRouter(stub), "/api/auth/sign-in",
		`{"identifier":"ada","password":"secret1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isVerified":false`)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
}

func TestSignInFailureIsUniform(t *testing.T) {
	stub := &authServiceStub{signInErr: domainerrors.ErrInvalidCredentials}
	router := newAuthTestRouter(stub)

	unknown := postJSON(router, "/api/auth/sign-in", `{"identifier":"ghost","password":"secret1"}`)
	wrongPass := postJSON(router, "/api/auth/sign-in", `{"identifier":"ada","password":"wrong99"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestSignOutClearsCookieAndRevokes(t *testing.T) {
	stub := &authServiceStub{}
	router := newAuthTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-out", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "live-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"live-token"}, stub.signedOutTokens)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestSignOutWithoutCookieStillSucceeds(t *testing.T) {
	stub := &authServiceStub{}
	w := postJSON(newAuthTestRouter(stub), "/api/auth/sign-out", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, stub.signedOutTokens)
}

func TestCheckUsername(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		stub := &authServiceStub{available: true}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check-username?username=ada", nil)
		newAuthTestRouter(stub).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"available":true`)
		assert.Equal(t, []string{"ada"}, stub.checkedUsernames)
	})

	t.Run("taken", func(t *testing.T) {
		stub := &authServiceStub{available: false}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check-username?username=ada", nil)
		newAuthTestRouter(stub).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"available":false`)
		assert.Contains(t, w.Body.String(), "already taken")
	})

	t.Run("missing parameter", func(t *testing.T) {
		stub := &authServiceStub{}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check-username", nil)
		newAuthTestRouter(stub).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, stub.checkedUsernames)
	})
}

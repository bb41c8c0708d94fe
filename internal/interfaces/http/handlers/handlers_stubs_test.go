package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"whisperlink.backend/internal/domain/entities"
	"whisperlink.backend/internal/infrastructure/ai"
	"whisperlink.backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// authAs fakes the CookieAuth middleware for handler tests.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
		c.Next()
	}
}

type authServiceStub struct {
	registerErr      error
	verifyResp       *entities.AuthResponse
	verifyErr        error
	signInResp       *entities.AuthResponse
	signInErr        error
	signOutErr       error
	available        bool
	checkErr         error
	registered       []*entities.RegisterInput
	signedOutTokens  []string
	checkedUsernames []string
}

func (s *authServiceStub) Register(_ context.Context, input *entities.RegisterInput) error {
	s.registered = append(s.registered, input)
	return s.registerErr
}

func (s *authServiceStub) Verify(_ context.Context, _ *entities.VerifyInput) (*entities.AuthResponse, error) {
	return s.verifyResp, s.verifyErr
}

func (s *authServiceStub) SignIn(_ context.Context, _ *entities.SignInInput) (*entities.AuthResponse, error) {
	return s.signInResp, s.signInErr
}

func (s *authServiceStub) SignOut(_ context.Context, tokenString string) error {
	s.signedOutTokens = append(s.signedOutTokens, tokenString)
	return s.signOutErr
}

func (s *authServiceStub) CheckUsername(_ context.Context, username string) (bool, error) {
	s.checkedUsernames = append(s.checkedUsernames, username)
	return s.available, s.checkErr
}

type profileServiceStub struct {
	profile *entities.Profile
	err     error
}

func (s *profileServiceStub) CurrentUser(_ context.Context, _ uuid.UUID) (*entities.Profile, error) {
	return s.profile, s.err
}

type acceptanceServiceStub struct {
	err    error
	toggle []bool
}

func (s *acceptanceServiceStub) ToggleAcceptance(_ context.Context, _ uuid.UUID, accepting bool) error {
	s.toggle = append(s.toggle, accepting)
	return s.err
}

type messageServiceStub struct {
	sendMsg    *entities.Message
	sendErr    error
	listMsgs   []*entities.Message
	listErr    error
	deleteErr  error
	sentTo     []string
	deletedIDs []uuid.UUID
}

func (s *messageServiceStub) Send(_ context.Context, username, _ string) (*entities.Message, error) {
	s.sentTo = append(s.sentTo, username)
	return s.sendMsg, s.sendErr
}

func (s *messageServiceStub) List(_ context.Context, _ uuid.UUID) ([]*entities.Message, error) {
	return s.listMsgs, s.listErr
}

func (s *messageServiceStub) Delete(_ context.Context, _, messageID uuid.UUID) error {
	s.deletedIDs = append(s.deletedIDs, messageID)
	return s.deleteErr
}

type assistantServiceStub struct {
	enhanced    string
	enhanceErr  error
	generated   string
	generateErr error
	sentiment   *ai.SentimentResult
	analyzeErr  error
}

func (s *assistantServiceStub) Enhance(_ context.Context, _ string) (string, error) {
	return s.enhanced, s.enhanceErr
}

func (s *assistantServiceStub) Generate(_ context.Context, _ string) (string, error) {
	return s.generated, s.generateErr
}

func (s *assistantServiceStub) AnalyzeSentiment(_ context.Context, _ string) (*ai.SentimentResult, error) {
	return s.sentiment, s.analyzeErr
}

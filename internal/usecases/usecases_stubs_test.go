package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"whisperlink.backend/internal/domain/entities"
	domainerrors "whisperlink.backend/internal/domain/errors"
)

// userRepoStub is an in-memory credential store for usecase tests
type userRepoStub struct {
	users map[uuid.UUID]*entities.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[uuid.UUID]*entities.User{}}
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	for _, u := range s.users {
		if u.Username == strings.ToLower(user.Username) || u.Email == user.Email {
			return domainerrors.ErrAlreadyExists
		}
	}
	clone := *user
	clone.Username = strings.ToLower(user.Username)
	s.users[user.ID] = &clone
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if u, ok := s.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, u := range s.users {
		if u.Username == strings.ToLower(strings.TrimSpace(username)) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	if u, err := s.GetByUsername(ctx, identifier); err == nil {
		return u, nil
	}
	return s.GetByEmail(ctx, identifier)
}

func (s *userRepoStub) RefreshUnverified(_ context.Context, id uuid.UUID, passwordHash, code string, expiry time.Time) error {
	u, ok := s.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if u.IsVerified {
		return domainerrors.ErrAlreadyVerified
	}
	u.PasswordHash = passwordHash
	u.VerificationCode = code
	u.CodeExpiry = expiry
	return nil
}

func (s *userRepoStub) MarkVerified(_ context.Context, id uuid.UUID) error {
	u, ok := s.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if u.IsVerified {
		return domainerrors.ErrAlreadyVerified
	}
	u.IsVerified = true
	return nil
}

func (s *userRepoStub) SetAcceptance(_ context.Context, id uuid.UUID, accepting bool) error {
	u, ok := s.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.IsAccepting = accepting
	return nil
}

// messageRepoStub is an in-memory message store for usecase tests
type messageRepoStub struct {
	messages map[uuid.UUID][]*entities.Message
}

func newMessageRepoStub() *messageRepoStub {
	return &messageRepoStub{messages: map[uuid.UUID][]*entities.Message{}}
}

func (s *messageRepoStub) Append(_ context.Context, userID uuid.UUID, content string) (*entities.Message, error) {
	m := &entities.Message{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}
	s.messages[userID] = append([]*entities.Message{m}, s.messages[userID]...)
	return m, nil
}

func (s *messageRepoStub) ListByUser(_ context.Context, userID uuid.UUID) ([]*entities.Message, error) {
	return s.messages[userID], nil
}

func (s *messageRepoStub) Remove(_ context.Context, userID, messageID uuid.UUID) error {
	list := s.messages[userID]
	for i, m := range list {
		if m.ID == messageID {
			s.messages[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *messageRepoStub) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(s.messages[userID])), nil
}

// dispatcherStub records outgoing verification emails
type dispatcherStub struct {
	sent []sentEmail
	err  error
}

type sentEmail struct {
	to       string
	username string
	code     string
}

func (s *dispatcherStub) SendVerificationCode(toAddress, username, code string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{to: toAddress, username: username, code: code})
	return nil
}

// revokerStub records revoked token ids
type revokerStub struct {
	revoked map[string]time.Duration
}

func newRevokerStub() *revokerStub {
	return &revokerStub{revoked: map[string]time.Duration{}}
}

func (s *revokerStub) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.revoked[jti] = ttl
	return nil
}

package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"whisperlink.backend/internal/domain/entities"
)

// UserRepository defines credential store operations
type UserRepository interface {
	// Create persists a new account. A username or email collision with any
	// existing row surfaces as ErrAlreadyExists via the store's unique
	// indexes; there is no separate existence check that could race.
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	// GetByIdentifier resolves a username (case-insensitive, stored lowercase)
	// or an email (exact).
	GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error)
	// RefreshUnverified overwrites password hash, verification code and expiry
	// on an unverified account; re-registration never creates a second row.
	RefreshUnverified(ctx context.Context, id uuid.UUID, passwordHash, code string, expiry time.Time) error
	// MarkVerified flips is_verified exactly once. An already-verified row
	// yields ErrAlreadyVerified. The verification code is retained.
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SetAcceptance(ctx context.Context, id uuid.UUID, accepting bool) error
}

// MessageRepository defines operations on account-owned messages
type MessageRepository interface {
	Append(ctx context.Context, userID uuid.UUID, content string) (*entities.Message, error)
	// ListByUser returns the owner's messages, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error)
	// Remove deletes a message only when it belongs to userID.
	Remove(ctx context.Context, userID, messageID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

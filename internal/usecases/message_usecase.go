package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"whisperlink.backend/internal/domain/entities"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/domain/repositories"
)

// MessageUsecase handles anonymous message operations
type MessageUsecase struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
}

// NewMessageUsecase creates a new message usecase
func NewMessageUsecase(userRepo repositories.UserRepository, messageRepo repositories.MessageRepository) *MessageUsecase {
	return &MessageUsecase{
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

// Send appends an anonymous message to a recipient's collection. The
// recipient must exist, be verified, and be accepting messages.
func (u *MessageUsecase) Send(ctx context.Context, username, content string) (*entities.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, domainerrors.ErrNotVerified
	}
	if !user.IsAccepting {
		return nil, domainerrors.ErrNotAccepting
	}

	return u.messageRepo.Append(ctx, user.ID, content)
}

// List returns the owner's messages, newest first
func (u *MessageUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error) {
	return u.messageRepo.ListByUser(ctx, userID)
}

// Delete removes one of the owner's messages
func (u *MessageUsecase) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	return u.messageRepo.Remove(ctx, userID, messageID)
}

// ToggleAcceptance switches whether the account accepts inbound messages
func (u *MessageUsecase) ToggleAcceptance(ctx context.Context, userID uuid.UUID, accepting bool) error {
	return u.userRepo.SetAcceptance(ctx, userID, accepting)
}

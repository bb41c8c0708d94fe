package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"whisperlink.backend/internal/domain/entities"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/domain/repositories"
	"whisperlink.backend/pkg/crypto"
	"whisperlink.backend/pkg/jwt"
)

// codeValidity is how long a verification code stays usable after issuance
const codeValidity = time.Hour

// EmailDispatcher delivers one-time verification codes
type EmailDispatcher interface {
	SendVerificationCode(toAddress, username, code string) error
}

// TokenRevoker records signed-out token ids until their natural expiry
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthUsecase drives the account lifecycle: registration, code
// re-issuance, verification, sign-in and sign-out.
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
	dispatcher  EmailDispatcher
	tokens      *jwt.Service
	revoker     TokenRevoker
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	messageRepo repositories.MessageRepository,
	dispatcher EmailDispatcher,
	tokens *jwt.Service,
	revoker TokenRevoker,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		dispatcher:  dispatcher,
		tokens:      tokens,
		revoker:     revoker,
	}
}

// Register creates an unverified account with a fresh verification code, or
// re-issues the code for an existing unverified account with the same email.
// A verified account is never touched. The verification email goes out after
// the row is persisted; a dispatch failure is reported to the caller but the
// row is not rolled back.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) error {
	username := strings.ToLower(strings.TrimSpace(input.Username))

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return err
	}
	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(codeValidity)

	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	switch {
	case err == nil && existing.IsVerified:
		return domainerrors.ErrAlreadyExists
	case err == nil:
		// Unverified re-registration: overwrite password, code and expiry in
		// place rather than creating a second row.
		if err := u.userRepo.RefreshUnverified(ctx, existing.ID, passwordHash, code, expiry); err != nil {
			return err
		}
		username = existing.Username
	case errors.Is(err, domainerrors.ErrNotFound):
		now := time.Now()
		user := &entities.User{
			ID:               uuid.New(),
			Username:         username,
			Email:            input.Email,
			PasswordHash:     passwordHash,
			VerificationCode: code,
			CodeExpiry:       expiry,
			IsVerified:       false,
			IsAccepting:      true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
	default:
		return err
	}

	if err := u.dispatcher.SendVerificationCode(input.Email, username, code); err != nil {
		return domainerrors.ErrEmailDispatch
	}
	return nil
}

// Verify checks the submitted code against the stored one and flips the
// account to verified exactly once. A wrong or expired code leaves the
// account untouched; the stored code is retained even after success.
func (u *AuthUsecase) Verify(ctx context.Context, input *entities.VerifyInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user.IsVerified {
		return nil, domainerrors.ErrAlreadyVerified
	}
	if user.VerificationCode != input.Code {
		return nil, domainerrors.ErrInvalidCode
	}
	if time.Now().After(user.CodeExpiry) {
		return nil, domainerrors.ErrExpiredCode
	}

	if err := u.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true

	token, err := u.tokens.Generate(user.ID, user.Email, user.Username, true)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, User: user}, nil
}

// SignIn authenticates by username or email. A missing account and a wrong
// password are indistinguishable to the caller. An unverified account signs
// in and receives a token with verified=false; the route guard sends it to
// the verification step.
func (u *AuthUsecase) SignIn(ctx context.Context, input *entities.SignInInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := u.tokens.Generate(user.ID, user.Email, user.Username, user.IsVerified)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{Token: token, User: user}, nil
}

// SignOut revokes the session token for the rest of its lifetime. An
// unparseable token is already useless and revokes to a no-op.
func (u *AuthUsecase) SignOut(ctx context.Context, tokenString string) error {
	claims, err := u.tokens.Validate(tokenString)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return u.revoker.Revoke(ctx, claims.ID, ttl)
}

// CurrentUser returns the account's profile with its message count
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := u.messageRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entities.Profile{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		IsVerified:   user.IsVerified,
		IsAccepting:  user.IsAccepting,
		MessageCount: count,
	}, nil
}

// CheckUsername reports whether a username is still available
func (u *AuthUsecase) CheckUsername(ctx context.Context, username string) (bool, error) {
	_, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"whisperlink.backend/internal/domain/entities"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/infrastructure/models"
)

// UserRepository implements credential store operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new account. The unique indexes on username and email are
// the single source of truth for duplicates: a concurrent registration for
// the same identity loses with ErrAlreadyExists instead of inserting twice.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:               user.ID,
		Username:         strings.ToLower(user.Username),
		Email:            user.Email,
		PasswordHash:     user.PasswordHash,
		VerificationCode: user.VerificationCode,
		CodeExpiry:       user.CodeExpiry,
		IsVerified:       user.IsVerified,
		IsAccepting:      user.IsAccepting,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets an account by email (exact match)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByUsername gets an account by username, case-insensitively
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByIdentifier resolves a username or an email
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", strings.ToLower(strings.TrimSpace(identifier)), identifier).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// RefreshUnverified overwrites the password hash, verification code and
// expiry of an unverified account in place.
func (r *UserRepository) RefreshUnverified(ctx context.Context, id uuid.UUID, passwordHash, code string, expiry time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND is_verified = ?", id, false).
		Updates(map[string]interface{}{
			"password_hash":     passwordHash,
			"verification_code": code,
			"code_expiry":       expiry,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

// MarkVerified flips is_verified exactly once. The verification code stays
// on the row after the flip.
func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND is_verified = ?", id, false).
		Updates(map[string]interface{}{
			"is_verified": true,
			"verified_at": time.Now(),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

// SetAcceptance toggles whether the account accepts new inbound messages
func (r *UserRepository) SetAcceptance(ctx context.Context, id uuid.UUID, accepting bool) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_accepting": accepting,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// classifyMiss distinguishes a missing row from one already verified after a
// guarded update matched nothing.
func (r *UserRepository) classifyMiss(ctx context.Context, id uuid.UUID) error {
	var m models.User
	if err := r.db.WithContext(ctx).Select("id", "is_verified").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	if m.IsVerified {
		return domainerrors.ErrAlreadyVerified
	}
	return domainerrors.ErrNotFound
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:               m.ID,
		Username:         m.Username,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		VerificationCode: m.VerificationCode,
		CodeExpiry:       m.CodeExpiry,
		IsVerified:       m.IsVerified,
		IsAccepting:      m.IsAccepting,
		VerifiedAt:       null.TimeFromPtr(m.VerifiedAt),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

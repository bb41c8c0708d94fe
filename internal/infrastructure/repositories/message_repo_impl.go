package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"whisperlink.backend/internal/domain/entities"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/infrastructure/models"
)

// MessageRepository implements account-owned message operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append adds a message to an account's collection
func (r *MessageRepository) Append(ctx context.Context, userID uuid.UUID, content string) (*entities.Message, error) {
	m := &models.Message{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return toMessageEntity(m), nil
}

// ListByUser returns an account's messages, newest first
func (r *MessageRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*entities.Message, 0, len(messageModels))
	for i := range messageModels {
		messages = append(messages, toMessageEntity(&messageModels[i]))
	}
	return messages, nil
}

// Remove deletes a message if and only if it belongs to userID
func (r *MessageRepository) Remove(ctx context.Context, userID, messageID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", messageID, userID).
		Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountByUser counts an account's messages
func (r *MessageRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func toMessageEntity(m *models.Message) *entities.Message {
	return &entities.Message{
		ID:        m.ID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Username         string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	VerificationCode string    `gorm:"type:varchar(6);not null"`
	CodeExpiry       time.Time `gorm:"not null"`
	IsVerified       bool      `gorm:"not null;default:false"`
	IsAccepting      bool      `gorm:"not null;default:true"`
	VerifiedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

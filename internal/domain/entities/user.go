package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a feedback account. VerificationCode and CodeExpiry are
// meaningful only while IsVerified is false; the code is deliberately
// retained after verification.
type User struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	VerificationCode string    `json:"-"`
	CodeExpiry       time.Time `json:"-"`
	IsVerified       bool      `json:"isVerified"`
	IsAccepting      bool      `json:"isAccepting"`
	VerifiedAt       null.Time `json:"verifiedAt,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// RegisterInput represents input for account registration
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=20,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
}

// VerifyInput represents input for email verification
type VerifyInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// SignInInput represents input for signing in with a username or email
type SignInInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token string `json:"-"`
	User  *User  `json:"user"`
}

// Profile is the user view returned by the API, with the owned message count
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsVerified   bool      `json:"isVerified"`
	IsAccepting  bool      `json:"isAccepting"`
	MessageCount int64     `json:"messageCount"`
}

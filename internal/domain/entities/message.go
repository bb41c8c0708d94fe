package entities

import (
	"time"

	"github.com/google/uuid"
)

// Message is an anonymous message owned by exactly one account. It has no
// identity outside its owner: every query is scoped by user id.
type Message struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendMessageInput represents input for sending an anonymous message
type SendMessageInput struct {
	Username string `json:"username" binding:"required"`
	Content  string `json:"content" binding:"required,max=1000"`
}

// ToggleAcceptanceInput represents input for the accept-messages switch
type ToggleAcceptanceInput struct {
	IsAccepting *bool `json:"isAccepting" binding:"required"`
}

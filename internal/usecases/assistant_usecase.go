package usecases

import (
	"context"
	"strings"

	"whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/infrastructure/ai"
)

// maxAssistantInput bounds text forwarded to the assistant
const maxAssistantInput = 1000

// AssistantClient is the collaborator contract with the generative model
type AssistantClient interface {
	Enhance(ctx context.Context, message string) (string, error)
	Generate(ctx context.Context, topic string) (string, error)
	AnalyzeSentiment(ctx context.Context, message string) (*ai.SentimentResult, error)
}

// AssistantUsecase validates input and delegates to the assistant client
type AssistantUsecase struct {
	client AssistantClient
}

// NewAssistantUsecase creates a new assistant usecase
func NewAssistantUsecase(client AssistantClient) *AssistantUsecase {
	return &AssistantUsecase{client: client}
}

// Enhance rewrites a draft message
func (u *AssistantUsecase) Enhance(ctx context.Context, message string) (string, error) {
	if err := checkAssistantInput(message); err != nil {
		return "", err
	}
	out, err := u.client.Enhance(ctx, message)
	if err != nil {
		return "", errors.ErrUpstream
	}
	return out, nil
}

// Generate produces a message from a topic description
func (u *AssistantUsecase) Generate(ctx context.Context, topic string) (string, error) {
	if err := checkAssistantInput(topic); err != nil {
		return "", err
	}
	out, err := u.client.Generate(ctx, topic)
	if err != nil {
		return "", errors.ErrUpstream
	}
	return out, nil
}

// AnalyzeSentiment classifies a message's tone
func (u *AssistantUsecase) AnalyzeSentiment(ctx context.Context, message string) (*ai.SentimentResult, error) {
	if err := checkAssistantInput(message); err != nil {
		return nil, err
	}
	result, err := u.client.AnalyzeSentiment(ctx, message)
	if err != nil {
		return nil, errors.ErrUpstream
	}
	return result, nil
}

func checkAssistantInput(text string) error {
	if strings.TrimSpace(text) == "" || len(text) > maxAssistantInput {
		return errors.ErrInvalidInput
	}
	return nil
}

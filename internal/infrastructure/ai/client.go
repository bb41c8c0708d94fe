package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"whisperlink.backend/internal/config"
)

// SentimentResult is the structured outcome of a sentiment analysis
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Summary    string  `json:"summary"`
}

// Client calls the generative-language API for message assistance. It is a
// pure request/response collaborator: no state beyond the HTTP client.
type Client struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

// NewClient creates a new assistant client
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Enhance rewrites a feedback message to be clearer and more constructive
func (c *Client) Enhance(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(`Please enhance the following feedback message to make it more constructive, clear, and professional while maintaining the original intent and sentiment. Keep it concise and respectful. The enhanced message should be between 100-300 characters:

Original message: %q

Enhanced message:`, message)

	return c.generateContent(ctx, prompt)
}

// Generate produces a feedback message from a topic description
func (c *Client) Generate(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(`Generate a constructive and professional feedback message based on the following description or topic. Make it specific, actionable, and respectful. The message should be between 100-300 characters:

Topic/Description: %q

Feedback message:`, topic)

	return c.generateContent(ctx, prompt)
}

// AnalyzeSentiment classifies a message's tone. When the model's answer is
// not parseable JSON a neutral result is returned instead of an error.
func (c *Client) AnalyzeSentiment(ctx context.Context, message string) (*SentimentResult, error) {
	prompt := fmt.Sprintf(`Analyze the sentiment of this feedback message and provide a JSON response with the following format:
{
  "sentiment": "positive" | "negative" | "neutral",
  "confidence": number between 0 and 1,
  "summary": "brief summary of the message tone and key points"
}

Message to analyze: %q

Response:`, message)

	answer, err := c.generateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result SentimentResult
	if err := json.Unmarshal([]byte(stripCodeFence(answer)), &result); err != nil {
		return &SentimentResult{
			Sentiment:  "neutral",
			Confidence: 0.5,
			Summary:    "Unable to analyze sentiment",
		}, nil
	}
	return &result, nil
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode assistant response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assistant returned no candidates")
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// stripCodeFence removes a surrounding markdown code fence, which the model
// tends to wrap JSON answers in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	domainerrors "whisperlink.backend/internal/domain/errors"
	"whisperlink.backend/internal/infrastructure/ai"
)

func newAITestRouter(stub *assistantServiceStub) *gin.Engine {
	h := NewAIHandler(stub)
	r := gin.New()
	r.POST("/api/ai/enhance", h.Enhance)
	r.POST("/api/ai/generate", h.Generate)
	r.POST("/api/ai/sentiment", h.Sentiment)
	return r
}

func TestEnhanceMessage(t *testing.T) {
	stub := &assistantServiceStub{enhanced: "You are doing wonderfully."}
	w := postJSON(newAITestRouter(stub), "/api/ai/enhance", `{"message":"ur doing gud"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You are doing wonderfully.")
}

func TestEnhanceRequiresMessage(t *testing.T) {
	w := postJSON(newAITestRouter(&assistantServiceStub{}), "/api/ai/enhance", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnhanceUpstreamFailure(t *testing.T) {
	stub := &assistantServiceStub{enhanceErr: domainerrors.ErrUpstream}
	w := postJSON(newAITestRouter(stub), "/api/ai/enhance", `{"message":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Upstream service failure")
}

func TestGenerateSuggestions(t *testing.T) {
	stub := &assistantServiceStub{generated: "Keep shipping!||Proud of you||One step at a time"}
	w := postJSON(newAITestRouter(stub), "/api/ai/generate", `{"topic":"encouragement"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Keep shipping!")
}

func TestGenerateRequiresTopic(t *testing.T) {
	w := postJSON(newAITestRouter(&assistantServiceStub{}), "/api/ai/generate", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeSentiment(t *testing.T) {
	stub := &assistantServiceStub{sentiment: &ai.SentimentResult{
		Sentiment:  "positive",
		Confidence: 0.92,
		Summary:    "Warm and encouraging.",
	}}
	w := postJSON(newAITestRouter(stub), "/api/ai/sentiment", `{"message":"you rock"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sentiment":"positive"`)
	assert.Contains(t, w.Body.String(), "0.92")
}

func TestAnalyzeSentimentOversizedInput(t *testing.T) {
	stub := &assistantServiceStub{analyzeErr: domainerrors.ErrInvalidInput}
	w := postJSON(newAITestRouter(stub), "/api/ai/sentiment", `{"message":"x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

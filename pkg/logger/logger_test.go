package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitAndContextLogging(t *testing.T) {
	Init("development")
	assert.NotNil(t, GetLogger())

	// Init is once-only; a second call must not replace the logger.
	first := GetLogger()
	Init("production")
	assert.Same(t, first, GetLogger())

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	assert.NotNil(t, WithContext(ctx))
	assert.NotNil(t, WithContext(context.Background()))
	assert.NotNil(t, WithContext(nil))

	// Smoke the level helpers; they must not panic.
	Info(ctx, "info line")
	Debug(ctx, "debug line")
	Warn(ctx, "warn line")
	Error(ctx, "error line")
	LogRequest(ctx, "GET", "/health", 200, 3*time.Millisecond, "127.0.0.1")
}

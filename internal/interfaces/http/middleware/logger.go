package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"whisperlink.backend/pkg/logger"
)

// RequestLogger emits one structured log line per request after the handler
// chain completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		ctx := c.Request.Context()
		if requestID := c.GetString(logger.RequestIDKey); requestID != "" {
			ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)
		}
		logger.LogRequest(ctx, method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/interview-coach/internal/logger"
	"github.com/dtroode/interview-coach/internal/model"
)

// Logging logs HTTP requests and results.
type Logging struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(contextManager model.ContextManager, logger *logger.Logger) *Logging {
	return &Logging{contextManager: contextManager, logger: logger}
}

// Handle logs method, path, status and duration for each request.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()
	requestID, _ := l.contextManager.GetRequestIDFromContext(c.Request.Context())

	l.logger.Debug("HTTP request started",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", requestID)

	c.Next()

	status := c.Writer.Status()
	args := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID,
	}

	switch {
	case status >= 500:
		l.logger.Error("HTTP request failed", args...)
	case status >= 400:
		l.logger.Warn("HTTP request rejected", args...)
	default:
		l.logger.Info("HTTP request completed", args...)
	}
}

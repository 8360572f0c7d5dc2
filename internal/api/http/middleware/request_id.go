package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/interview-coach/internal/model"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id taken from RequestIDHeader or generated.
type RequestID struct {
	contextManager model.ContextManager
}

// NewRequestID creates a new RequestID middleware.
func NewRequestID(contextManager model.ContextManager) *RequestID {
	return &RequestID{contextManager: contextManager}
}

// Handle stores the id in the request context and echoes it in the response.
func (m *RequestID) Handle(c *gin.Context) {
	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" || len(requestID) > 128 {
		requestID = uuid.NewString()
	}

	ctx := m.contextManager.SetRequestIDToContext(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Header(RequestIDHeader, requestID)

	c.Next()
}

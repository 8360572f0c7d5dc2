// Package context keeps request-scoped values for the HTTP layer.
package context

import (
	"context"

	"github.com/dtroode/interview-coach/internal/model"
)

var _ model.ContextManager = (*Manager)(nil)

type requestIDKey struct{}

// Manager stores request-scoped values in a context.Context.
// It is stateless, so one instance is shared by the middleware and the handlers.
type Manager struct{}

// NewManager creates a context manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetRequestIDToContext attaches a request id to the context.
//
// Parameters:
//   - ctx: Parent context
//   - requestID: Id assigned by the request id middleware
//
// Returns a copy of ctx carrying requestID.
func (m *Manager) SetRequestIDToContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestIDFromContext reads the request id stored by SetRequestIDToContext.
//
// Parameters:
//   - ctx: Context of the current request
//
// Returns the request id and true, or an empty string and false when none is set.
func (m *Manager) GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey{}).(string)
	if !ok || requestID == "" {
		return "", false
	}
	return requestID, true
}

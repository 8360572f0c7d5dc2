package model

import "context"

// ContextManager carries request-scoped values through context.
type ContextManager interface {
	SetRequestIDToContext(ctx context.Context, requestID string) context.Context
	GetRequestIDFromContext(ctx context.Context) (string, bool)
}

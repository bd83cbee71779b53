package shared

import (
	"context"

	"github.com/tenantbot/api-registry/internal/domain"
)

// ContextKey is the type for values this package stores in a request context.
type ContextKey string

// Context keys for various values
const (
	// UserContextKey holds the authenticated domain.PublicUser.
	UserContextKey ContextKey = "user"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// WithTraceID stores traceID in ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user domain.PublicUser) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserFromContext returns the authenticated user placed in ctx by the auth
// middleware.
func UserFromContext(ctx context.Context) (domain.PublicUser, bool) {
	user, ok := ctx.Value(UserContextKey).(domain.PublicUser)
	return user, ok
}

// Package requestcontext provides context accessors for operation-scoped values.
//
// An operation is one unit of user intent: a CLI command, a login attempt, a
// retention sweep. Every value the services read from the context is set once
// by the caller that starts the operation.
//
// Usage in services (read values):
//
//	now := requestcontext.Now(ctx)
//	opID := requestcontext.OperationID(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	operationIDKey   struct{}
	actorKey         struct{}
	operationTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyOperationID   = operationIDKey{}
	ContextKeyActor         = actorKey{}
	ContextKeyOperationTime = operationTimeKey{}
)

// -----------------------------------------------------------------------------
// Operation metadata
// -----------------------------------------------------------------------------

// OperationID retrieves the operation correlation id from the context.
func OperationID(ctx context.Context) string {
	if opID, ok := ctx.Value(ContextKeyOperationID).(string); ok {
		return opID
	}
	return ""
}

// WithOperationID injects an operation correlation id into the context.
func WithOperationID(ctx context.Context, operationID string) context.Context {
	return context.WithValue(ctx, ContextKeyOperationID, operationID)
}

// Actor retrieves the username of the logged-in user acting in this operation.
func Actor(ctx context.Context) string {
	if actor, ok := ctx.Value(ContextKeyActor).(string); ok {
		return actor
	}
	return ""
}

// WithActor injects the acting username into the context.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ContextKeyActor, username)
}

// -----------------------------------------------------------------------------
// Operation time
// -----------------------------------------------------------------------------

// Now retrieves the operation-scoped time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyOperationTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
// Useful for:
//   - Service unit tests that pin "today"
//   - Sweeps that must judge every row against the same date
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyOperationTime, t)
}

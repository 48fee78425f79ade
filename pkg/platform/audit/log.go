package audit

import (
	"context"
	"log/slog"

	"nhplus/pkg/requestcontext"
)

// Log writes an audit event to the structured logger. Operation id and actor
// are taken from the context when present.
func Log(ctx context.Context, logger *slog.Logger, event AuditEvent, attrs ...any) {
	if logger == nil {
		return
	}
	if opID := requestcontext.OperationID(ctx); opID != "" {
		attrs = append(attrs, "operation_id", opID)
	}
	if actor := requestcontext.Actor(ctx); actor != "" {
		attrs = append(attrs, "actor", actor)
	}

	args := append(attrs, "event", string(event), "category", string(event.Category()), "log_type", "audit")
	logger.InfoContext(ctx, string(event), args...)
}

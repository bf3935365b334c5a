package ports

import (
	"context"

	"github.com/cropbank/banking-system/internal/core/domain"
)

// EventPublisher hands a committed mutation's audit event to the transport.
// Publish is fire-and-forget: it must not block the caller and its outcome
// never affects the mutation that produced the event. Per-resource ordering
// is the transport's concern (events are keyed by resource id).
type EventPublisher interface {
	Publish(event domain.AuditEvent)
}

// AuditSink consumes published events: it deduplicates replays and appends
// the event to the audit trail. The transport delivers at least once, so the
// sink must be idempotent.
type AuditSink interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepository appends immutable audit records.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// DedupStore tracks which event ids have already been processed.
type DedupStore interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

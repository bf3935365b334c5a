package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
)

type auditService struct {
	repo  ports.AuditRepository
	dedup ports.DedupStore
	log   zerolog.Logger
}

// NewAuditService returns the AuditSink that dispatcher workers run: dedup by
// event id, then append to the audit trail. The transport delivers at least
// once, so replays of an already-seen event id are silently skipped.
func NewAuditService(repo ports.AuditRepository, dedup ports.DedupStore, log zerolog.Logger) ports.AuditSink {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	seen, err := s.dedup.Seen(ctx, event.EventID())
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.EventID()).Msg("dedup check failed, processing anyway")
	} else if seen {
		s.log.Debug().Str("event_id", event.EventID()).Str("topic", event.Topic()).Msg("duplicate event skipped")
		return nil
	}

	// Mark before writing so a crash between mark and insert loses the event
	// rather than double-writing it on redelivery.
	if markErr := s.dedup.Mark(ctx, event.EventID()); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", event.EventID()).Msg("failed to set dedup key")
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("audit insert: %w", err)
	}

	s.log.Info().
		Str("event_id", event.EventID()).
		Str("topic", event.Topic()).
		Str("key", event.Key()).
		Msg("audit event recorded")
	return nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupStore tracks processed audit event ids in Redis so the at-least-once
// pipeline stays idempotent on the consumer side.
// Key format: audit:dedup:<event_id>
type DedupStore struct {
	client *redis.Client
}

// NewDedupStore creates a DedupStore wrapping the given Redis client.
func NewDedupStore(client *redis.Client) *DedupStore {
	return &DedupStore{client: client}
}

// Seen reports whether this event id has already been processed.
func (d *DedupStore) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event id has been processed (expires after dedupTTL).
func (d *DedupStore) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *DedupStore) key(eventID string) string {
	return "audit:dedup:" + eventID
}

package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cropbank/banking-system/internal/core/domain"
)

type collectingSink struct {
	mu     sync.Mutex
	byKey  map[string][]string
	total  int
	notify chan struct{}
}

func newCollectingSink() *collectingSink {
	return &collectingSink{
		byKey:  make(map[string][]string),
		notify: make(chan struct{}, 1024),
	}
}

func (s *collectingSink) Process(_ context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	s.byKey[event.Key()] = append(s.byKey[event.Key()], event.EventID())
	s.total++
	s.mu.Unlock()
	s.notify <- struct{}{}
	return nil
}

func (s *collectingSink) waitFor(t *testing.T, n int) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-s.notify:
		case <-deadline:
			s.mu.Lock()
			got := s.total
			s.mu.Unlock()
			t.Fatalf("timed out waiting for %d events, processed %d", n, got)
		}
	}
}

func clientEvent(id, clientID string) domain.ClientEvent {
	return domain.ClientEvent{
		ID:        id,
		EventType: domain.EventClientCreated,
		ClientID:  clientID,
		Timestamp: time.Now().UTC(),
	}
}

// Events sharing a partition key are processed in publish order even when
// events for other keys interleave across workers.
func TestDispatcher_PerKeyOrdering(t *testing.T) {
	sink := newCollectingSink()
	d := NewDispatcher(4, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	keys := []string{"client_a", "client_b", "client_c"}
	const perKey = 50
	for i := 0; i < perKey; i++ {
		for _, key := range keys {
			d.Publish(clientEvent(fmt.Sprintf("%s_ev_%03d", key, i), key))
		}
	}

	sink.waitFor(t, perKey*len(keys))

	sink.mu.Lock()
	defer sink.mu.Unlock()
	for _, key := range keys {
		got := sink.byKey[key]
		if len(got) != perKey {
			t.Fatalf("key %s: expected %d events, got %d", key, perKey, len(got))
		}
		for i, id := range got {
			want := fmt.Sprintf("%s_ev_%03d", key, i)
			if id != want {
				t.Fatalf("key %s: out of order at %d: got %s, want %s", key, i, id, want)
			}
		}
	}
}

// Publish must never block the caller, even with no workers draining the
// queues: overflow is dropped.
func TestDispatcher_PublishNeverBlocks(t *testing.T) {
	d := NewDispatcher(1, newCollectingSink(), zerolog.Nop())
	// Start is deliberately not called.

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+50; i++ {
			d.Publish(clientEvent(fmt.Sprintf("ev_%d", i), "client_a"))
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Publish blocked on a full queue")
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	sink := newCollectingSink()
	d := NewDispatcher(2, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Publish(clientEvent("ev_1", "client_a"))
	sink.waitFor(t, 1)

	cancel()
	// Give workers a moment to observe cancellation, then verify later events
	// are no longer drained.
	time.Sleep(50 * time.Millisecond)
	d.Publish(clientEvent("ev_2", "client_a"))

	select {
	case <-sink.notify:
		t.Fatalf("worker processed an event after cancellation")
	case <-time.After(200 * time.Millisecond):
	}
}

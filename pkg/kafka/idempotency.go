package kafka

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// IdempotencyStore remembers which event IDs have already been handled.
// Implementations must be safe for concurrent use.
type IdempotencyStore interface {
	// Contains reports whether the event ID was already processed.
	Contains(ctx context.Context, eventID string) (bool, error)
	// Add records the event ID. Callers invoke it only after the handler
	// succeeded, so a failed event stays retriable.
	Add(ctx context.Context, eventID string) error
}

// MemoryIdempotencyStore keeps processed event IDs in a map with a TTL, which
// bounds memory on a single instance. Fine for one process; a multi-instance
// deployment wants a shared store instead.
type MemoryIdempotencyStore struct {
	mu   sync.RWMutex
	seen map[string]time.Time
	ttl  time.Duration
}

// NewMemoryIdempotencyStore creates an in-memory store. Entries older than
// ttl are dropped lazily, on the next lookup that touches them.
func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		seen: make(map[string]time.Time),
		ttl:  ttl,
	}
}

// Contains reports whether the event ID is present and still within its TTL.
func (s *MemoryIdempotencyStore) Contains(_ context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	addedAt, ok := s.seen[eventID]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if time.Since(addedAt) > s.ttl {
		s.mu.Lock()
		delete(s.seen, eventID)
		s.mu.Unlock()
		return false, nil
	}

	return true, nil
}

// Add records the event ID with the current time.
func (s *MemoryIdempotencyStore) Add(_ context.Context, eventID string) error {
	s.mu.Lock()
	s.seen[eventID] = time.Now()
	s.mu.Unlock()
	return nil
}

// Len reports how many IDs the store holds, expired entries included.
func (s *MemoryIdempotencyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

// IdempotentHandler wraps a handler so a redelivered event runs at most once.
// An event without an ID cannot be deduplicated and passes straight through;
// a store lookup failure also passes through, since processing twice beats
// silently dropping mail.
func IdempotentHandler(store IdempotencyStore, inner Handler, logger *slog.Logger) Handler {
	return func(ctx context.Context, event *Event) error {
		if event.EventID == "" {
			return inner(ctx, event)
		}

		seen, err := store.Contains(ctx, event.EventID)
		if err != nil {
			logger.Warn("idempotency store lookup failed, processing anyway",
				slog.String("event_id", event.EventID),
				slog.String("error", err.Error()),
			)
			return inner(ctx, event)
		}
		if seen {
			ConsumerMessagesDuplicate.WithLabelValues(event.EventType).Inc()
			logger.Debug("skipping duplicate event",
				slog.String("event_id", event.EventID),
				slog.String("event_type", event.EventType),
				slog.String("aggregate_id", event.AggregateID),
			)
			return nil
		}

		if err := inner(ctx, event); err != nil {
			return err
		}

		if addErr := store.Add(ctx, event.EventID); addErr != nil {
			logger.Warn("failed to record event ID in idempotency store",
				slog.String("event_id", event.EventID),
				slog.String("error", addErr.Error()),
			)
		}

		return nil
	}
}

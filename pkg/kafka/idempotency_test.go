package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	seen, err := store.Contains(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.Add(ctx, "evt-1"))

	seen, err = store.Contains(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryIdempotencyStore_ExpiredEntryIsForgotten(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Nanosecond)

	require.NoError(t, store.Add(ctx, "evt-1"))
	time.Sleep(time.Millisecond)

	seen, err := store.Contains(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Equal(t, 0, store.Len())
}

func TestIdempotentHandler_ProcessesNewEvents(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	calls := 0
	handler := IdempotentHandler(store, func(ctx context.Context, event *Event) error {
		calls++
		return nil
	}, discardLogger())

	event := &Event{EventID: "evt-1", EventType: "order.placed"}
	require.NoError(t, handler(ctx, event))
	require.NoError(t, handler(ctx, event))

	assert.Equal(t, 1, calls)
}

func TestIdempotentHandler_FailedEventIsRetriable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	calls := 0
	handler := IdempotentHandler(store, func(ctx context.Context, event *Event) error {
		calls++
		if calls == 1 {
			return assert.AnError
		}
		return nil
	}, discardLogger())

	event := &Event{EventID: "evt-1", EventType: "order.placed"}
	require.Error(t, handler(ctx, event))

	// The failed attempt must not be recorded as processed.
	require.NoError(t, handler(ctx, event))
	assert.Equal(t, 2, calls)
}

func TestIdempotentHandler_MissingEventIDPassesThrough(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	calls := 0
	handler := IdempotentHandler(store, func(ctx context.Context, event *Event) error {
		calls++
		return nil
	}, discardLogger())

	event := &Event{EventType: "order.placed"}
	require.NoError(t, handler(ctx, event))
	require.NoError(t, handler(ctx, event))

	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, store.Len())
}

package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderPlacedPayload struct {
	OrderID string `json:"order_id"`
	Total   int64  `json:"total"`
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("order.placed", "order-1", "order", "artmuse-server",
		orderPlacedPayload{OrderID: "order-1", Total: 62000})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "order.placed", event.EventType)
	assert.Equal(t, "order-1", event.AggregateID)
	assert.Equal(t, "order", event.AggregateType)
	assert.Equal(t, "artmuse-server", event.Source)
	assert.False(t, event.Timestamp.IsZero())
	assert.NotNil(t, event.Metadata)
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("order.placed", "order-1", "order", "artmuse-server", make(chan int))
	assert.Error(t, err)
}

func TestEvent_MarshalRoundtrip(t *testing.T) {
	event, err := NewEvent("order.placed", "order-1", "order", "artmuse-server",
		orderPlacedPayload{OrderID: "order-1", Total: 62000})
	require.NoError(t, err)

	event.WithCorrelationID("req-42").WithMetadata("attempt", "1")

	raw, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "req-42", decoded.CorrelationID)
	assert.Equal(t, "1", decoded.Metadata["attempt"])

	var payload orderPlacedPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "order-1", payload.OrderID)
	assert.Equal(t, int64(62000), payload.Total)
}

func TestUnmarshalEvent_InvalidJSON(t *testing.T) {
	_, err := UnmarshalEvent([]byte("{not json"))
	assert.Error(t, err)
}

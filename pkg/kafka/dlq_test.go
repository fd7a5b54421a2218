package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDLQTopic_PrefixesSourceTopic(t *testing.T) {
	assert.Equal(t, "artmuse.dlq.artmuse.order.created", DLQTopic(Topic("order", "created")))
	assert.Equal(t, "artmuse.dlq.artmuse.user.registered", DLQTopic("artmuse.user.registered"))
}

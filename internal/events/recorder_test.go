package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	require.NoError(t, r.Publish(context.Background(), TopicOrders, "o1", "order.created", map[string]string{"id": "o1"}))
	require.NoError(t, r.Publish(context.Background(), TopicOrders, "o1", "order.cancelled", nil))

	assert.Equal(t, []string{"order.created", "order.cancelled"}, r.Types())
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "o1", last.Key)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), TopicCart, "k", "cart.item_added", nil))
	assert.NoError(t, p.Close())
}

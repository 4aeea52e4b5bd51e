package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus(t *testing.T) {
	assert.True(t, StatusPending.Cancellable())
	assert.True(t, StatusProcessing.Cancellable())
	assert.False(t, StatusShipped.Cancellable())
	assert.False(t, StatusDelivered.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())

	assert.True(t, StatusShipped.Valid())
	assert.False(t, OrderStatus("LOST").Valid())
}

func TestStringList(t *testing.T) {
	v, err := StringList{"a.png", "b c.png"}.Value()
	require.NoError(t, err)

	var back StringList
	require.NoError(t, back.Scan(v))
	assert.Equal(t, StringList{"a.png", "b c.png"}, back)

	var empty StringList
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

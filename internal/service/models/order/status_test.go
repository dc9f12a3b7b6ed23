package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	valid := []string{
		"pending", "confirmed", "preparing", "ready",
		"picked_up", "delivering", "delivered", "cancelled",
	}
	for _, s := range valid {
		status, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, status.String())
	}

	for _, s := range []string{"", "PENDING", "shipped", "done"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, s)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())

	for _, s := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusPickedUp, StatusDelivering} {
		assert.False(t, s.Terminal(), s)
	}
}

func TestStatusCanTransition(t *testing.T) {
	// Non-terminal orders may move anywhere, including straight to cancelled.
	assert.True(t, StatusPending.CanTransition(StatusConfirmed))
	assert.True(t, StatusPending.CanTransition(StatusCancelled))
	assert.True(t, StatusDelivering.CanTransition(StatusDelivered))

	// Terminal orders are frozen.
	assert.False(t, StatusDelivered.CanTransition(StatusPending))
	assert.False(t, StatusCancelled.CanTransition(StatusConfirmed))
	assert.False(t, StatusDelivered.CanTransition(StatusDelivered))
}

package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	for _, m := range []string{"cash", "bank_transfer", "e_wallet", "credit_card"} {
		method, err := ParseMethod(m)
		require.NoError(t, err, m)
		assert.Equal(t, m, method.String())
	}

	for _, m := range []string{"", "bitcoin", "CASH"} {
		_, err := ParseMethod(m)
		assert.ErrorIs(t, err, ErrInvalidMethod, m)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "failed", "refunded"} {
		status, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, status.String())
	}

	_, err := ParseStatus("charged")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusCanTransition(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusProcessing))
	assert.True(t, StatusProcessing.CanTransition(StatusCompleted))
	assert.True(t, StatusPending.CanTransition(StatusFailed))

	// Completed, failed and refunded are final.
	assert.False(t, StatusCompleted.CanTransition(StatusRefunded))
	assert.False(t, StatusFailed.CanTransition(StatusPending))
	assert.False(t, StatusRefunded.CanTransition(StatusCompleted))
}

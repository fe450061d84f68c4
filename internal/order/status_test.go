package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_Forward(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusOrderConfirmed, true}, // skipping stages is fine
		{StatusPending, StatusDelivered, true},
		{StatusProcessing, StatusOrderConfirmed, true},
		{StatusOrderConfirmed, StatusOutForDelivery, true},
		{StatusOutForDelivery, StatusDelivered, true},

		{StatusProcessing, StatusPending, false}, // no going back
		{StatusDelivered, StatusOutForDelivery, false},
		{StatusDelivered, StatusDelivered, false}, // same status is not a move
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransition_Cancelled(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	for _, from := range []Status{StatusProcessing, StatusOrderConfirmed, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		assert.False(t, CanTransition(from, StatusCancelled), "from %s", from)
	}
	// Cancelled is absorbing.
	assert.False(t, CanTransition(StatusCancelled, StatusProcessing))
	assert.False(t, CanTransition(StatusCancelled, StatusDelivered))
}

func TestStatusValid(t *testing.T) {
	for _, st := range []Status{StatusPending, StatusProcessing, StatusOrderConfirmed, StatusOutForDelivery, StatusDelivered, StatusCancelled} {
		assert.True(t, st.Valid(), string(st))
	}
	assert.False(t, Status("Shipped").Valid())
	assert.False(t, Status("").Valid())
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusOutForDelivery.Terminal())
}

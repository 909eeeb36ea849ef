package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkout/flow"
)

func TestState_transitions(t *testing.T) {
	tests := []struct {
		name  string
		from  flow.State
		to    flow.State
		valid bool
	}{
		{"selection to contact", flow.StateSelectingTickets, flow.StateEnteringContactInfo, true},
		{"selection cannot skip to review", flow.StateSelectingTickets, flow.StateReviewingConfirmation, false},
		{"contact back to selection", flow.StateEnteringContactInfo, flow.StateSelectingTickets, true},
		{"review to submission", flow.StateReviewingConfirmation, flow.StateSubmittingBooking, true},
		{"review back to contact", flow.StateReviewingConfirmation, flow.StateEnteringContactInfo, true},
		{"submission to free confirmation", flow.StateSubmittingBooking, flow.StateBookingConfirmedFree, true},
		{"submission to awaiting payment", flow.StateSubmittingBooking, flow.StateAwaitingPayment, true},
		{"submission to failure", flow.StateSubmittingBooking, flow.StateBookingFailed, true},
		{"failed booking retried from review", flow.StateBookingFailed, flow.StateReviewingConfirmation, true},
		{"awaiting payment to success", flow.StateAwaitingPayment, flow.StatePaymentSucceeded, true},
		{"awaiting payment to expiry", flow.StateAwaitingPayment, flow.StatePaymentExpired, true},
		{"payment cancel returns to review", flow.StateAwaitingPayment, flow.StateReviewingConfirmation, true},
		{"declined payment retried from review", flow.StatePaymentFailed, flow.StateReviewingConfirmation, true},
		{"success is terminal", flow.StatePaymentSucceeded, flow.StateReviewingConfirmation, false},
		{"expiry is terminal", flow.StatePaymentExpired, flow.StateAwaitingPayment, false},
		{"free confirmation is terminal", flow.StateBookingConfirmedFree, flow.StateSelectingTickets, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestState_terminal(t *testing.T) {
	assert.True(t, flow.StateBookingConfirmedFree.IsTerminal())
	assert.True(t, flow.StatePaymentSucceeded.IsTerminal())
	assert.True(t, flow.StatePaymentExpired.IsTerminal())

	assert.False(t, flow.StatePaymentFailed.IsTerminal(), "a declined payment can be retried")
	assert.False(t, flow.StateAwaitingPayment.IsTerminal())
	assert.False(t, flow.StateBookingFailed.IsTerminal())
}

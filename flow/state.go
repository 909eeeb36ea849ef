package flow

// State is the position of one booking session in the checkout flow.
type State string

const (
	StateSelectingTickets      State = "selecting_tickets"
	StateEnteringContactInfo   State = "entering_contact_info"
	StateReviewingConfirmation State = "reviewing_confirmation"
	StateSubmittingBooking     State = "submitting_booking"
	StateBookingFailed         State = "booking_failed"
	StateBookingConfirmedFree  State = "booking_confirmed_free"
	StateAwaitingPayment       State = "awaiting_payment"
	StatePaymentSucceeded      State = "payment_succeeded"
	StatePaymentFailed         State = "payment_failed"
	StatePaymentExpired        State = "payment_expired"
)

// validTransitions maps each state to the states it may move to. Backward
// edges let the user adjust selection or retry after a failure; terminal
// payment states have no exits, a new session is required.
var validTransitions = map[State][]State{
	StateSelectingTickets:      {StateEnteringContactInfo},
	StateEnteringContactInfo:   {StateReviewingConfirmation, StateSelectingTickets},
	StateReviewingConfirmation: {StateSubmittingBooking, StateEnteringContactInfo, StateSelectingTickets},
	StateSubmittingBooking:     {StateBookingFailed, StateBookingConfirmedFree, StateAwaitingPayment, StateReviewingConfirmation},
	StateBookingFailed:         {StateReviewingConfirmation, StateSelectingTickets},
	StateAwaitingPayment:       {StatePaymentSucceeded, StatePaymentFailed, StatePaymentExpired, StateReviewingConfirmation},
	StateBookingConfirmedFree:  {},
	StatePaymentSucceeded:      {},
	StatePaymentFailed:         {StateReviewingConfirmation},
	StatePaymentExpired:        {},
}

func (s State) CanTransitionTo(target State) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s State) IsTerminal() bool {
	return s == StateBookingConfirmedFree || s == StatePaymentSucceeded || s == StatePaymentExpired
}

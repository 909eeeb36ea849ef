package flow

import (
	"time"

	"checkout/entity"
)

// Status is a point-in-time snapshot of the session for the UI.
type Status struct {
	SessionID string `json:"session_id"`
	EventID   string `json:"event_id"`
	State     State  `json:"state"`

	Summary entity.OrderSummary        `json:"summary"`
	Contact *entity.ContactInformation `json:"contact,omitempty"`
	Coupon  *entity.Coupon             `json:"coupon,omitempty"`

	Booking *entity.BookingConfirmation `json:"booking,omitempty"`
	Payment *entity.PaymentSession      `json:"payment,omitempty"`

	// SecondsToExpiry drives the countdown while payment is pending.
	SecondsToExpiry int `json:"seconds_to_expiry,omitempty"`

	// ManualVerifyOnly is set once automatic polling has been suspended
	// after repeated check failures.
	ManualVerifyOnly bool `json:"manual_verify_only,omitempty"`

	Message string `json:"message,omitempty"`
}

func (f *BookingFlow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	status := Status{
		SessionID:        f.id,
		EventID:          f.eventID,
		State:            f.state,
		Summary:          entity.ComputeSummary(f.selection, f.coupon, f.cfg.Policy),
		Coupon:           f.coupon,
		Booking:          f.confirmation,
		Payment:          f.session,
		ManualVerifyOnly: f.manualOnly,
		Message:          f.message,
	}

	if f.contact.Email != "" {
		contact := f.contact
		status.Contact = &contact
	}
	if f.session != nil && f.state == StateAwaitingPayment {
		remaining := int(time.Until(f.session.ExpiresAt).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		status.SecondsToExpiry = remaining
	}

	return status
}

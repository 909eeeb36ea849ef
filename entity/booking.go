package entity

import (
	"fmt"
	"strings"
)

type ContactInformation struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// Validate checks required-field presence and a plausible email shape.
// The booking service remains authoritative for anything deeper.
func (c ContactInformation) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return fmt.Errorf("first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("last name is required")
	}
	email := strings.TrimSpace(c.Email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("email %q does not look valid", c.Email)
	}
	return nil
}

type PaymentMethod string

const (
	PaymentMethodUpi              PaymentMethod = "upi"
	PaymentMethodCashfreeRedirect PaymentMethod = "cashfree_redirect"
	PaymentMethodCashfreeEmbedded PaymentMethod = "cashfree_embedded"
	PaymentMethodPhonePe          PaymentMethod = "phonepe"
)

// BookingRequest is the payload sent to the booking service. The
// idempotency key is generated client-side so a retried submission after a
// transient failure cannot double-book.
type BookingRequest struct {
	Selections     []SelectionItem    `json:"selections"`
	Contact        ContactInformation `json:"contact"`
	PaymentMethod  PaymentMethod      `json:"payment_method"`
	CouponCode     string             `json:"coupon_code,omitempty"`
	IdempotencyKey string             `json:"idempotency_key"`
}

func (r BookingRequest) Validate() error {
	if len(r.Selections) == 0 {
		return ErrEmptySelection
	}
	for _, item := range r.Selections {
		if item.Quantity <= 0 {
			return fmt.Errorf("quantity for ticket type %s must be positive", item.TicketTypeID)
		}
	}
	if r.IdempotencyKey == "" {
		return fmt.Errorf("idempotency key must be set")
	}
	return r.Contact.Validate()
}

type BookingConfirmation struct {
	BookingID       string `json:"booking_id"`
	TotalAmount     Money  `json:"total_amount"`
	PaymentRequired bool   `json:"payment_required"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type BookingConfirmed struct {
	Header        EventHeader `json:"header"`
	SessionID     string      `json:"session_id"`
	BookingID     string      `json:"booking_id"`
	EventID       string      `json:"event_id"`
	CustomerEmail string      `json:"customer_email"`
	Total         Money       `json:"total"`
	Free          bool        `json:"free"`
}

type PaymentSucceeded struct {
	Header    EventHeader `json:"header"`
	SessionID string      `json:"session_id"`
	BookingID string      `json:"booking_id"`
	OrderID   string      `json:"order_id"`
	Amount    Money       `json:"amount"`
}

type PaymentFailed struct {
	Header    EventHeader `json:"header"`
	SessionID string      `json:"session_id"`
	BookingID string      `json:"booking_id"`
	OrderID   string      `json:"order_id"`
	Reason    string      `json:"reason"`
}

type PaymentExpired struct {
	Header    EventHeader `json:"header"`
	SessionID string      `json:"session_id"`
	BookingID string      `json:"booking_id"`
	OrderID   string      `json:"order_id"`
}

type TicketCheckedIn struct {
	Header      EventHeader `json:"header"`
	TicketID    string      `json:"ticket_id"`
	EventID     string      `json:"event_id"`
	CheckedInAt time.Time   `json:"checked_in_at"`
}

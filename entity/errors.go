package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownTicketType = errors.New("unknown ticket type for this event")
	ErrOrderCapExceeded  = errors.New("order exceeds the per-order ticket cap")
	ErrEmptySelection    = errors.New("no tickets selected")

	ErrSubmissionInFlight = errors.New("a booking submission is already in progress")
	ErrSessionExpired     = errors.New("payment session has expired")
)

// AlreadyCheckedInError is reported when a check-in is attempted for a ticket
// that was already used. It carries the original check-in time so the gate
// staff can see when the ticket was first scanned.
type AlreadyCheckedInError struct {
	TicketID    string
	CheckedInAt time.Time
}

func (e AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("ticket %s already checked in at %s", e.TicketID, e.CheckedInAt.Format(time.RFC3339))
}

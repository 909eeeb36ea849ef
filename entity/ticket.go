package entity

import "time"

// Ticket is one purchased, checkable admission unit.
type Ticket struct {
	ID               string     `json:"ticket_id"`
	BookingID        string     `json:"booking_id"`
	TicketTypeName   string     `json:"ticket_type_name"`
	AttendeeName     string     `json:"attendee_name"`
	AttendeeEmail    string     `json:"attendee_email"`
	VerificationCode string     `json:"verification_code"`
	CheckedIn        bool       `json:"checked_in"`
	CheckedInAt      *time.Time `json:"checked_in_at,omitempty"`
}

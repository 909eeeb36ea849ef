package checkin

import (
	"context"
	"fmt"
	"time"

	"checkout/entity"
	"checkout/log"
)

type TicketService interface {
	VerifyTicketByCode(ctx context.Context, eventID, code string) (entity.Ticket, error)
	CheckInTicket(ctx context.Context, ticketID, verificationCode string) (entity.Ticket, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

// Service drives the gate check-in flow: verify a ticket by its code or QR
// payload, then mark it used. The backend owns the actual transition; this
// layer guards against duplicate submissions before they hit the network.
type Service struct {
	tickets   TicketService
	publisher EventPublisher
}

func NewService(tickets TicketService, publisher EventPublisher) Service {
	if tickets == nil {
		panic("missing tickets service")
	}
	if publisher == nil {
		panic("missing publisher")
	}
	return Service{tickets: tickets, publisher: publisher}
}

// VerifyByCode looks the ticket up. An already-used ticket is reported via
// AlreadyCheckedInError with the original check-in time, alongside the
// ticket itself so the gate staff can still see who it belongs to.
func (s Service) VerifyByCode(ctx context.Context, eventID, code string) (entity.Ticket, error) {
	ticket, err := s.tickets.VerifyTicketByCode(ctx, eventID, code)
	if err != nil {
		return entity.Ticket{}, err
	}

	if ticket.CheckedIn {
		checkedInAt := time.Time{}
		if ticket.CheckedInAt != nil {
			checkedInAt = *ticket.CheckedInAt
		}
		return ticket, entity.AlreadyCheckedInError{TicketID: ticket.ID, CheckedInAt: checkedInAt}
	}

	return ticket, nil
}

// CheckIn marks the ticket used. If the caller's copy of the ticket already
// shows checked-in the call is refused locally, without contacting the
// backend.
func (s Service) CheckIn(ctx context.Context, ticket entity.Ticket, eventID string) (entity.Ticket, error) {
	if ticket.CheckedIn {
		checkedInAt := time.Time{}
		if ticket.CheckedInAt != nil {
			checkedInAt = *ticket.CheckedInAt
		}
		return ticket, entity.AlreadyCheckedInError{TicketID: ticket.ID, CheckedInAt: checkedInAt}
	}

	checkedIn, err := s.tickets.CheckInTicket(ctx, ticket.ID, ticket.VerificationCode)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("could not check in ticket %s: %w", ticket.ID, err)
	}

	checkedInAt := time.Now().UTC()
	if checkedIn.CheckedInAt != nil {
		checkedInAt = *checkedIn.CheckedInAt
	}

	err = s.publisher.Publish(ctx, entity.TicketCheckedIn{
		Header:      entity.NewEventHeader(),
		TicketID:    checkedIn.ID,
		EventID:     eventID,
		CheckedInAt: checkedInAt,
	})
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("could not publish check-in event")
	}

	return checkedIn, nil
}

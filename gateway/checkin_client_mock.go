package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"checkout/entity"
)

type CheckInMock struct {
	mock sync.Mutex

	Tickets map[string]entity.Ticket // keyed by verification code

	CheckInCalls int
}

func (c *CheckInMock) VerifyTicketByCode(ctx context.Context, eventID, code string) (entity.Ticket, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	ticket, ok := c.Tickets[code]
	if !ok {
		return entity.Ticket{}, fmt.Errorf("no ticket found for code %q", code)
	}
	return ticket, nil
}

func (c *CheckInMock) CheckInTicket(ctx context.Context, ticketID, verificationCode string) (entity.Ticket, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	c.CheckInCalls++

	ticket, ok := c.Tickets[verificationCode]
	if !ok || ticket.ID != ticketID {
		return entity.Ticket{}, fmt.Errorf("no ticket found for code %q", verificationCode)
	}
	if ticket.CheckedIn {
		return entity.Ticket{}, fmt.Errorf("ticket %s is already checked in", ticketID)
	}

	now := time.Now()
	ticket.CheckedIn = true
	ticket.CheckedInAt = &now
	c.Tickets[verificationCode] = ticket

	return ticket, nil
}

func (c *CheckInMock) CheckInCallCount() int {
	c.mock.Lock()
	defer c.mock.Unlock()
	return c.CheckInCalls
}

package gateway

import (
	"context"
	"sync"

	"checkout/entity"
)

type BookingMock struct {
	mock sync.Mutex

	Requests     map[string]entity.BookingRequest
	Confirmation entity.BookingConfirmation
	Err          error
}

func (c *BookingMock) BookEventTickets(ctx context.Context, eventID string, request entity.BookingRequest) (entity.BookingConfirmation, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.Err != nil {
		return entity.BookingConfirmation{}, c.Err
	}

	if c.Requests == nil {
		c.Requests = make(map[string]entity.BookingRequest)
	}
	c.Requests[request.IdempotencyKey] = request

	return c.Confirmation, nil
}

func (c *BookingMock) RequestCount() int {
	c.mock.Lock()
	defer c.mock.Unlock()
	return len(c.Requests)
}

package gateway

import (
	"context"
	"sync"

	"checkout/entity"
)

type TicketTypesMock struct {
	mock sync.Mutex

	TicketTypes []entity.TicketType
	Err         error
}

func (c *TicketTypesMock) GetEventTicketTypes(ctx context.Context, eventID string) ([]entity.TicketType, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	return c.TicketTypes, nil
}

type EventsMock struct {
	mock sync.Mutex

	Event entity.Event
	Err   error
}

func (c *EventsMock) GetEvent(ctx context.Context, eventID string) (entity.Event, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.Err != nil {
		return entity.Event{}, c.Err
	}
	event := c.Event
	if event.ID == "" {
		event.ID = eventID
	}
	return event, nil
}

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"checkout/entity"
)

type EventsClient struct {
	client *Client
}

func NewEventsClient(client *Client) EventsClient {
	return EventsClient{client: client}
}

func (c EventsClient) GetEvent(ctx context.Context, eventID string) (entity.Event, error) {
	var event entity.Event
	err := c.client.doJSON(ctx, http.MethodGet, "/events/"+eventID, nil, &event, nil)
	if err != nil {
		return entity.Event{}, fmt.Errorf("could not get event %s: %w", eventID, err)
	}
	return event, nil
}

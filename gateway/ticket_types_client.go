package gateway

import (
	"context"
	"fmt"
	"net/http"

	"checkout/entity"
)

type TicketTypesClient struct {
	client *Client
}

func NewTicketTypesClient(client *Client) TicketTypesClient {
	return TicketTypesClient{client: client}
}

func (c TicketTypesClient) GetEventTicketTypes(ctx context.Context, eventID string) ([]entity.TicketType, error) {
	var response struct {
		TicketTypes []entity.TicketType `json:"ticket_types"`
	}
	err := c.client.doJSON(ctx, http.MethodGet, "/events/"+eventID+"/ticket-types", nil, &response, nil)
	if err != nil {
		return nil, fmt.Errorf("could not get ticket types for event %s: %w", eventID, err)
	}
	return response.TicketTypes, nil
}

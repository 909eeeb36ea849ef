package gateway

import (
	"context"
	"fmt"
	"net/http"

	"checkout/entity"
)

type BookingClient struct {
	client *Client
}

func NewBookingClient(client *Client) BookingClient {
	return BookingClient{client: client}
}

// BookEventTickets submits the booking. The idempotency key travels both in
// the payload and as a header so the backend can deduplicate retried
// submissions regardless of which one it honours.
func (c BookingClient) BookEventTickets(ctx context.Context, eventID string, request entity.BookingRequest) (entity.BookingConfirmation, error) {
	if err := request.Validate(); err != nil {
		return entity.BookingConfirmation{}, fmt.Errorf("invalid booking request: %w", err)
	}

	var confirmation entity.BookingConfirmation
	err := c.client.doJSON(ctx, http.MethodPost, "/events/"+eventID+"/book-tickets", request, &confirmation, map[string]string{
		"Idempotency-Key": request.IdempotencyKey,
	})
	if err != nil {
		return entity.BookingConfirmation{}, err
	}

	return confirmation, nil
}

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"checkout/entity"
)

type CheckInClient struct {
	client *Client
}

func NewCheckInClient(client *Client) CheckInClient {
	return CheckInClient{client: client}
}

func (c CheckInClient) VerifyTicketByCode(ctx context.Context, eventID, code string) (entity.Ticket, error) {
	var ticket entity.Ticket
	err := c.client.doJSON(ctx, http.MethodPost, "/events/"+eventID+"/tickets/verify", map[string]string{
		"verification_code": code,
	}, &ticket, nil)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("could not verify ticket code: %w", err)
	}
	return ticket, nil
}

func (c CheckInClient) CheckInTicket(ctx context.Context, ticketID, verificationCode string) (entity.Ticket, error) {
	var ticket entity.Ticket
	err := c.client.doJSON(ctx, http.MethodPost, "/tickets/"+ticketID+"/check-in", map[string]string{
		"verification_code": verificationCode,
	}, &ticket, nil)
	if err != nil {
		return entity.Ticket{}, err
	}
	return ticket, nil
}

package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"checkout/entity"
)

// CashfreeProvider covers both Cashfree integration modes. The redirect
// mode returns a hosted payment link, the embedded mode returns a session
// token the UI renders inline. Status handling is shared.
type CashfreeProvider struct {
	client     *Client
	sessionTTL time.Duration
	embedded   bool
}

func NewCashfreeRedirectProvider(client *Client, sessionTTL time.Duration) CashfreeProvider {
	return CashfreeProvider{client: client, sessionTTL: sessionTTL}
}

func NewCashfreeEmbeddedProvider(client *Client, sessionTTL time.Duration) CashfreeProvider {
	return CashfreeProvider{client: client, sessionTTL: sessionTTL, embedded: true}
}

func (p CashfreeProvider) Method() entity.PaymentMethod {
	if p.embedded {
		return entity.PaymentMethodCashfreeEmbedded
	}
	return entity.PaymentMethodCashfreeRedirect
}

type cashfreeInitiateResponse struct {
	OrderID      string `json:"cf_order_id"`
	PaymentLink  string `json:"payment_link"`
	SessionToken string `json:"payment_session_id"`
}

func (p CashfreeProvider) Initiate(ctx context.Context, bookingID string, amount entity.Money) (entity.PaymentSession, error) {
	mode := "redirect"
	if p.embedded {
		mode = "embedded"
	}

	var response cashfreeInitiateResponse
	err := p.client.doJSON(ctx, http.MethodPost, "/payments/cashfree/orders", map[string]any{
		"booking_id": bookingID,
		"amount":     amount.Amount,
		"currency":   amount.Currency,
		"mode":       mode,
	}, &response, nil)
	if err != nil {
		return entity.PaymentSession{}, fmt.Errorf("could not create cashfree order: %w", err)
	}

	return entity.PaymentSession{
		OrderID:     response.OrderID,
		BookingID:   bookingID,
		Method:      p.Method(),
		PaymentLink: response.PaymentLink,
		Token:       response.SessionToken,
		ExpiresAt:   time.Now().Add(p.sessionTTL),
	}, nil
}

func (p CashfreeProvider) CheckStatus(ctx context.Context, orderID string) (entity.PaymentStatus, error) {
	var response struct {
		OrderStatus string `json:"order_status"`
	}
	err := p.client.doJSON(ctx, http.MethodGet, "/payments/cashfree/orders/"+orderID, nil, &response, nil)
	if err != nil {
		return "", err
	}
	return mapCashfreeStatus(response.OrderStatus), nil
}

func (p CashfreeProvider) Verify(ctx context.Context, orderID, bookingID string) (entity.PaymentStatus, error) {
	var response struct {
		OrderStatus string `json:"order_status"`
	}
	err := p.client.doJSON(ctx, http.MethodPost, "/payments/cashfree/verify", map[string]string{
		"cf_order_id": orderID,
		"booking_id":  bookingID,
	}, &response, nil)
	if err != nil {
		return "", fmt.Errorf("could not verify cashfree payment: %w", err)
	}
	return mapCashfreeStatus(response.OrderStatus), nil
}

func mapCashfreeStatus(status string) entity.PaymentStatus {
	switch status {
	case "PAID":
		return entity.PaymentStatusSuccess
	case "EXPIRED", "TERMINATED":
		return entity.PaymentStatusFailed
	default:
		// ACTIVE and anything unrecognised count as not-yet-confirmed.
		return entity.PaymentStatusPending
	}
}

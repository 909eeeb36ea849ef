package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"checkout/entity"
)

type UpiProvider struct {
	client     *Client
	sessionTTL time.Duration
}

func NewUpiProvider(client *Client, sessionTTL time.Duration) UpiProvider {
	return UpiProvider{client: client, sessionTTL: sessionTTL}
}

func (p UpiProvider) Method() entity.PaymentMethod {
	return entity.PaymentMethodUpi
}

type upiInitiateResponse struct {
	OrderID   string `json:"order_id"`
	DeepLink  string `json:"upi_link"`
	QrPayload string `json:"qr_payload"`
}

func (p UpiProvider) Initiate(ctx context.Context, bookingID string, amount entity.Money) (entity.PaymentSession, error) {
	var response upiInitiateResponse
	err := p.client.doJSON(ctx, http.MethodPost, "/payments/upi/initiate", map[string]any{
		"booking_id": bookingID,
		"amount":     amount.Amount,
		"currency":   amount.Currency,
	}, &response, nil)
	if err != nil {
		return entity.PaymentSession{}, fmt.Errorf("could not initiate UPI payment: %w", err)
	}

	return entity.PaymentSession{
		OrderID:     response.OrderID,
		BookingID:   bookingID,
		Method:      p.Method(),
		UpiDeepLink: response.DeepLink,
		QrPayload:   response.QrPayload,
		ExpiresAt:   time.Now().Add(p.sessionTTL),
	}, nil
}

func (p UpiProvider) CheckStatus(ctx context.Context, orderID string) (entity.PaymentStatus, error) {
	var response struct {
		Status string `json:"status"`
	}
	err := p.client.doJSON(ctx, http.MethodGet, "/payments/upi/status/"+orderID, nil, &response, nil)
	if err != nil {
		return "", err
	}
	return mapUpiStatus(response.Status), nil
}

func (p UpiProvider) Verify(ctx context.Context, orderID, bookingID string) (entity.PaymentStatus, error) {
	var response struct {
		Status string `json:"status"`
	}
	err := p.client.doJSON(ctx, http.MethodPost, "/payments/upi/verify", map[string]string{
		"order_id":   orderID,
		"booking_id": bookingID,
	}, &response, nil)
	if err != nil {
		return "", fmt.Errorf("could not verify UPI payment: %w", err)
	}
	return mapUpiStatus(response.Status), nil
}

func mapUpiStatus(status string) entity.PaymentStatus {
	switch status {
	case "PAYMENT_SUCCESS", "completed":
		return entity.PaymentStatusSuccess
	case "PAYMENT_FAILED":
		return entity.PaymentStatusFailed
	default:
		return entity.PaymentStatusPending
	}
}

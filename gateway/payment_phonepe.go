package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"checkout/entity"
)

type PhonePeProvider struct {
	client     *Client
	sessionTTL time.Duration
}

func NewPhonePeProvider(client *Client, sessionTTL time.Duration) PhonePeProvider {
	return PhonePeProvider{client: client, sessionTTL: sessionTTL}
}

func (p PhonePeProvider) Method() entity.PaymentMethod {
	return entity.PaymentMethodPhonePe
}

func (p PhonePeProvider) Initiate(ctx context.Context, bookingID string, amount entity.Money) (entity.PaymentSession, error) {
	var response struct {
		MerchantTransactionID string `json:"merchant_transaction_id"`
		RedirectURL           string `json:"redirect_url"`
	}
	err := p.client.doJSON(ctx, http.MethodPost, "/payments/phonepe/pay", map[string]any{
		"booking_id": bookingID,
		"amount":     amount.Amount,
		"currency":   amount.Currency,
	}, &response, nil)
	if err != nil {
		return entity.PaymentSession{}, fmt.Errorf("could not initiate phonepe payment: %w", err)
	}

	return entity.PaymentSession{
		OrderID:     response.MerchantTransactionID,
		BookingID:   bookingID,
		Method:      p.Method(),
		PaymentLink: response.RedirectURL,
		ExpiresAt:   time.Now().Add(p.sessionTTL),
	}, nil
}

func (p PhonePeProvider) CheckStatus(ctx context.Context, orderID string) (entity.PaymentStatus, error) {
	var response struct {
		Code string `json:"code"`
	}
	err := p.client.doJSON(ctx, http.MethodGet, "/payments/phonepe/status/"+orderID, nil, &response, nil)
	if err != nil {
		return "", err
	}
	return mapPhonePeStatus(response.Code), nil
}

func (p PhonePeProvider) Verify(ctx context.Context, orderID, bookingID string) (entity.PaymentStatus, error) {
	var response struct {
		Code string `json:"code"`
	}
	err := p.client.doJSON(ctx, http.MethodPost, "/payments/phonepe/verify", map[string]string{
		"merchant_transaction_id": orderID,
		"booking_id":              bookingID,
	}, &response, nil)
	if err != nil {
		return "", fmt.Errorf("could not verify phonepe payment: %w", err)
	}
	return mapPhonePeStatus(response.Code), nil
}

func mapPhonePeStatus(code string) entity.PaymentStatus {
	switch code {
	case "PAYMENT_SUCCESS":
		return entity.PaymentStatusSuccess
	case "PAYMENT_ERROR", "PAYMENT_DECLINED", "TIMED_OUT":
		return entity.PaymentStatusFailed
	default:
		return entity.PaymentStatusPending
	}
}

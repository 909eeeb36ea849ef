package entity

import "time"

// PaymentSession is the provider-issued handle for completing and later
// verifying payment of one booking attempt. It is superseded if the user
// restarts the flow and becomes useless after ExpiresAt.
type PaymentSession struct {
	OrderID     string        `json:"order_id"`
	BookingID   string        `json:"booking_id"`
	Method      PaymentMethod `json:"method"`
	PaymentLink string        `json:"payment_link,omitempty"`
	UpiDeepLink string        `json:"upi_deep_link,omitempty"`
	QrPayload   string        `json:"qr_payload,omitempty"`
	Token       string        `json:"token,omitempty"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

func (s PaymentSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

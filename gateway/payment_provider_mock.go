package gateway

import (
	"context"
	"sync"
	"time"

	"checkout/entity"
)

type PaymentProviderMock struct {
	mock sync.Mutex

	ProviderMethod entity.PaymentMethod
	SessionTTL     time.Duration

	Status      entity.PaymentStatus
	StatusErr   error
	InitiateErr error

	InitiatedBookings []string
	StatusChecks      int
	VerifyCalls       int
}

func (m *PaymentProviderMock) Method() entity.PaymentMethod {
	if m.ProviderMethod == "" {
		return entity.PaymentMethodUpi
	}
	return m.ProviderMethod
}

func (m *PaymentProviderMock) Initiate(ctx context.Context, bookingID string, amount entity.Money) (entity.PaymentSession, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.InitiateErr != nil {
		return entity.PaymentSession{}, m.InitiateErr
	}

	m.InitiatedBookings = append(m.InitiatedBookings, bookingID)

	ttl := m.SessionTTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}

	return entity.PaymentSession{
		OrderID:     "mocked-order-" + bookingID,
		BookingID:   bookingID,
		Method:      m.Method(),
		UpiDeepLink: "upi://pay?tr=" + bookingID,
		ExpiresAt:   time.Now().Add(ttl),
	}, nil
}

func (m *PaymentProviderMock) CheckStatus(ctx context.Context, orderID string) (entity.PaymentStatus, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.StatusChecks++
	if m.StatusErr != nil {
		return "", m.StatusErr
	}
	if m.Status == "" {
		return entity.PaymentStatusPending, nil
	}
	return m.Status, nil
}

func (m *PaymentProviderMock) Verify(ctx context.Context, orderID, bookingID string) (entity.PaymentStatus, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.VerifyCalls++
	if m.StatusErr != nil {
		return "", m.StatusErr
	}
	if m.Status == "" {
		return entity.PaymentStatusPending, nil
	}
	return m.Status, nil
}

func (m *PaymentProviderMock) SetStatus(status entity.PaymentStatus) {
	m.mock.Lock()
	defer m.mock.Unlock()
	m.Status = status
}

func (m *PaymentProviderMock) SetStatusErr(err error) {
	m.mock.Lock()
	defer m.mock.Unlock()
	m.StatusErr = err
}

func (m *PaymentProviderMock) StatusCheckCount() int {
	m.mock.Lock()
	defer m.mock.Unlock()
	return m.StatusChecks
}

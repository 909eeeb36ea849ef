package flow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"checkout/entity"
	"checkout/flow"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// pricedFlow drives a session through a priced booking into AwaitingPayment,
// with the poller running against the mock provider.
func pricedFlow(t *testing.T, td testDeps) *flow.BookingFlow {
	t.Helper()

	td.bookings.Confirmation = entity.BookingConfirmation{
		BookingID:       "booking-1",
		TotalAmount:     entity.Money{Amount: 525, Currency: "INR"},
		PaymentRequired: true,
	}
	if td.provider.SessionTTL == 0 {
		td.provider.SessionTTL = time.Minute
	}

	f := newFlowAtReview(t, td)
	require.NoError(t, f.Confirm(context.Background(), entity.PaymentMethodUpi))
	require.Equal(t, flow.StateAwaitingPayment, f.State())

	return f
}

func TestPoller_success_completes_payment(t *testing.T) {
	td := newTestDeps()
	f := pricedFlow(t, td)
	defer f.Close()

	td.provider.SetStatus(entity.PaymentStatusSuccess)

	require.Eventually(t, func() bool {
		return f.State() == flow.StatePaymentSucceeded
	}, time.Second, time.Millisecond)

	assert.False(t, td.recovery.Has("session-1"), "recovery record cleared after success")

	events := td.publisher.Events()
	require.NotEmpty(t, events)
	succeeded, ok := events[len(events)-1].(entity.PaymentSucceeded)
	require.True(t, ok)
	assert.Equal(t, "booking-1", succeeded.BookingID)
	assert.Equal(t, entity.Money{Amount: 525, Currency: "INR"}, succeeded.Amount)
}

func TestPoller_declined_payment_allows_retry(t *testing.T) {
	td := newTestDeps()
	f := pricedFlow(t, td)
	defer f.Close()

	td.provider.SetStatus(entity.PaymentStatusFailed)

	require.Eventually(t, func() bool {
		return f.State() == flow.StatePaymentFailed
	}, time.Second, time.Millisecond)

	// back to the confirmation step for another attempt
	require.NoError(t, f.Back())
	assert.Equal(t, flow.StateReviewingConfirmation, f.State())
}

func TestPoller_expiry_stops_checks(t *testing.T) {
	td := newTestDeps()
	td.provider.SessionTTL = 60 * time.Millisecond

	f := pricedFlow(t, td)
	defer f.Close()

	require.Eventually(t, func() bool {
		return f.State() == flow.StatePaymentExpired
	}, time.Second, time.Millisecond)

	checksAtExpiry := td.provider.StatusCheckCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, checksAtExpiry, td.provider.StatusCheckCount(),
		"no status checks issued after expiry")

	events := td.publisher.Events()
	require.NotEmpty(t, events)
	_, ok := events[len(events)-1].(entity.PaymentExpired)
	assert.True(t, ok)
}

func TestPoller_failure_threshold_suspends_to_manual(t *testing.T) {
	td := newTestDeps()
	f := pricedFlow(t, td)
	defer f.Close()

	td.provider.SetStatusErr(errors.New("gateway timeout"))

	require.Eventually(t, func() bool {
		return f.Status().ManualVerifyOnly
	}, time.Second, time.Millisecond)

	checksAtSuspend := td.provider.StatusCheckCount()
	assert.Equal(t, 3, checksAtSuspend)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, checksAtSuspend, td.provider.StatusCheckCount(),
		"automatic polling stays suspended")
	assert.Equal(t, flow.StateAwaitingPayment, f.State())

	// manual verification still works
	td.provider.SetStatusErr(nil)
	td.provider.SetStatus(entity.PaymentStatusSuccess)

	status, err := f.VerifyPayment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, status)
	assert.Equal(t, flow.StatePaymentSucceeded, f.State())
}

func TestPoller_countdown_survives_manual_fallback(t *testing.T) {
	td := newTestDeps()
	td.provider.SetStatusErr(errors.New("gateway timeout"))

	f := pricedFlowWithInterval(t, td, 10*time.Millisecond, 150*time.Millisecond)
	defer f.Close()

	require.Eventually(t, func() bool {
		return f.Status().ManualVerifyOnly
	}, time.Second, time.Millisecond)
	require.Equal(t, flow.StateAwaitingPayment, f.State())

	// automatic checks are gone, but the session still expires on time
	require.Eventually(t, func() bool {
		return f.State() == flow.StatePaymentExpired
	}, time.Second, time.Millisecond)

	events := td.publisher.Events()
	require.NotEmpty(t, events)
	expired, ok := events[len(events)-1].(entity.PaymentExpired)
	require.True(t, ok)
	assert.Equal(t, "booking-1", expired.BookingID)
}

func TestPoller_offline_skips_checks(t *testing.T) {
	td := newTestDeps()
	td.probe.SetOnline(false)

	f := pricedFlow(t, td)
	defer f.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, td.provider.StatusCheckCount(), "no checks while offline")
	assert.Equal(t, flow.StateAwaitingPayment, f.State())

	// connectivity returns, polling resumes within one interval
	td.probe.SetOnline(true)
	td.provider.SetStatus(entity.PaymentStatusSuccess)

	require.Eventually(t, func() bool {
		return f.State() == flow.StatePaymentSucceeded
	}, time.Second, time.Millisecond)
}

func TestPoller_manual_verify_pending_changes_nothing(t *testing.T) {
	td := newTestDeps()
	f := pricedFlow(t, td)
	defer f.Close()

	status, err := f.VerifyPayment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, status)
	assert.Equal(t, flow.StateAwaitingPayment, f.State())
}

func TestPoller_manual_verify_after_expiry(t *testing.T) {
	td := newTestDeps()
	// long interval so the verify call, not the poller, observes expiry
	f := pricedFlowWithInterval(t, td, time.Hour, 30*time.Millisecond)
	defer f.Close()

	time.Sleep(40 * time.Millisecond)

	_, err := f.VerifyPayment(context.Background())
	require.ErrorIs(t, err, entity.ErrSessionExpired)
	assert.Equal(t, flow.StatePaymentExpired, f.State())
}

func pricedFlowWithInterval(t *testing.T, td testDeps, interval, ttl time.Duration) *flow.BookingFlow {
	t.Helper()

	td.bookings.Confirmation = entity.BookingConfirmation{
		BookingID:       "booking-1",
		TotalAmount:     entity.Money{Amount: 525, Currency: "INR"},
		PaymentRequired: true,
	}
	td.provider.SessionTTL = ttl

	cfg := testConfig()
	cfg.PollInterval = interval

	f := flow.NewBookingFlow("session-1", "event-1", testTicketTypes(), cfg, td.deps)
	require.NoError(t, f.ChangeQuantity("general", 1))
	require.NoError(t, f.ProceedToContact())
	require.NoError(t, f.SubmitContact(entity.ContactInformation{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
	}))
	require.NoError(t, f.Confirm(context.Background(), entity.PaymentMethodUpi))

	return f
}

func TestPoller_cancel_stops_polling(t *testing.T) {
	td := newTestDeps()
	f := pricedFlow(t, td)
	defer f.Close()

	require.NoError(t, f.CancelPayment(context.Background()))
	assert.Equal(t, flow.StateReviewingConfirmation, f.State())
	assert.False(t, td.recovery.Has("session-1"))

	checksAtCancel := td.provider.StatusCheckCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, checksAtCancel, td.provider.StatusCheckCount(),
		"no status checks issued after cancel")
}

package flow

import (
	"context"
	"time"

	"checkout/entity"
	"checkout/gateway"
	"checkout/log"
	"checkout/metrics"
)

// startPollingLocked launches the status poller for the given session.
// Caller must hold f.mu. The loop is a single goroutine issuing one check
// at a time, so status checks never overlap.
func (f *BookingFlow) startPollingLocked(session entity.PaymentSession, provider gateway.PaymentProvider) {
	ctx, cancel := context.WithCancel(context.Background())
	f.pollCancel = cancel
	f.pollDone = make(chan struct{})

	go f.pollLoop(ctx, session, provider, f.pollDone)
}

// stopPolling cancels the poller and waits for it to finish. Must be
// called without holding f.mu. Safe when no poller is running.
func (f *BookingFlow) stopPolling() {
	f.mu.Lock()
	cancel := f.pollCancel
	done := f.pollDone
	f.pollCancel = nil
	f.pollDone = nil
	f.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (f *BookingFlow) pollLoop(ctx context.Context, session entity.PaymentSession, provider gateway.PaymentProvider, done chan struct{}) {
	defer close(done)

	expiry := time.NewTimer(time.Until(session.ExpiresAt))
	defer expiry.Stop()

	logger := log.FromContext(ctx).WithField("session_id", f.id).WithField("order_id", session.OrderID)

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-expiry.C:
			f.expire(session)
			return
		case <-time.After(f.cfg.PollInterval):
		}

		// While offline, skip the check entirely; the next tick retries,
		// so polling resumes within one interval of connectivity returning.
		if !f.deps.Probe.Online(ctx) {
			logger.Debug("offline, skipping payment status check")
			continue
		}

		metrics.StatusChecksIssued.Inc()
		status, err := provider.CheckStatus(ctx, session.OrderID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			logger.WithError(err).WithField("consecutive_failures", failures).
				Warn("payment status check failed")
			if failures >= f.cfg.PollFailureThreshold {
				// stop hammering a failing endpoint; the user can still
				// verify manually. The countdown keeps running so the
				// session still expires on time.
				f.suspendToManual()
				metrics.PollFallbacks.Inc()
				select {
				case <-ctx.Done():
				case <-expiry.C:
					f.expire(session)
				}
				return
			}
			continue
		}
		failures = 0

		switch status {
		case entity.PaymentStatusSuccess:
			f.completePayment(session)
			return
		case entity.PaymentStatusFailed:
			f.failPayment(session, "payment was declined by the provider")
			return
		}
	}
}

// completePayment moves the session to PaymentSucceeded. One-way and
// idempotent: the poller and the manual verify path may race here.
func (f *BookingFlow) completePayment(session entity.PaymentSession) {
	f.mu.Lock()
	if f.state != StateAwaitingPayment {
		f.mu.Unlock()
		return
	}
	_ = f.transitionLocked(StatePaymentSucceeded)
	f.message = ""
	var amount entity.Money
	if f.confirmation != nil {
		amount = f.confirmation.TotalAmount
	}
	f.mu.Unlock()

	metrics.PaymentOutcomes.WithLabelValues("succeeded").Inc()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.deps.Recovery.Clear(ctx, f.id); err != nil {
		log.FromContext(ctx).WithError(err).Warn("could not clear recovery record")
	}

	f.publish(entity.PaymentSucceeded{
		Header:    entity.NewEventHeader(),
		SessionID: f.id,
		BookingID: session.BookingID,
		OrderID:   session.OrderID,
		Amount:    amount,
	})
}

func (f *BookingFlow) failPayment(session entity.PaymentSession, reason string) {
	f.mu.Lock()
	if f.state != StateAwaitingPayment {
		f.mu.Unlock()
		return
	}
	_ = f.transitionLocked(StatePaymentFailed)
	f.message = reason + "; you can retry from the confirmation step or cancel"
	f.mu.Unlock()

	metrics.PaymentOutcomes.WithLabelValues("failed").Inc()

	f.publish(entity.PaymentFailed{
		Header:    entity.NewEventHeader(),
		SessionID: f.id,
		BookingID: session.BookingID,
		OrderID:   session.OrderID,
		Reason:    reason,
	})
}

// expire marks the session expired. The payment session is no longer valid,
// so the whole booking flow must be restarted; the recovery record is left
// to lapse with its own TTL.
func (f *BookingFlow) expire(session entity.PaymentSession) {
	f.mu.Lock()
	if f.state != StateAwaitingPayment {
		f.mu.Unlock()
		return
	}
	_ = f.transitionLocked(StatePaymentExpired)
	f.message = "payment session expired, start a new booking"
	f.mu.Unlock()

	metrics.PaymentOutcomes.WithLabelValues("expired").Inc()

	f.publish(entity.PaymentExpired{
		Header:    entity.NewEventHeader(),
		SessionID: f.id,
		BookingID: session.BookingID,
		OrderID:   session.OrderID,
	})
}

func (f *BookingFlow) suspendToManual() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateAwaitingPayment {
		return
	}
	f.manualOnly = true
	f.message = "automatic status checks are paused, use manual verification"
}

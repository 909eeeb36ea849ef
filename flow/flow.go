package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v3"

	"checkout/db"
	"checkout/entity"
	"checkout/gateway"
	"checkout/log"
	"checkout/metrics"
)

const genericBookingError = "could not complete the booking, please try again"

// BookingFlow drives one attendee through ticket selection, contact info,
// booking submission and payment reconciliation. All state is scoped to the
// session; once a terminal state is reached a new session must be started.
type BookingFlow struct {
	id      string
	eventID string
	cfg     Config
	deps    Deps

	mu             sync.Mutex
	state          State
	selection      *entity.Selection
	coupon         *entity.Coupon
	contact        entity.ContactInformation
	idempotencyKey string
	confirmation   *entity.BookingConfirmation
	session        *entity.PaymentSession
	provider       gateway.PaymentProvider
	message        string
	manualOnly     bool
	submitting     bool

	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

func NewBookingFlow(id, eventID string, ticketTypes []entity.TicketType, cfg Config, deps Deps) *BookingFlow {
	return &BookingFlow{
		id:             id,
		eventID:        eventID,
		cfg:            cfg,
		deps:           deps,
		state:          StateSelectingTickets,
		selection:      entity.NewSelection(ticketTypes, cfg.Policy, time.Now()),
		idempotencyKey: shortuuid.New(),
	}
}

func (f *BookingFlow) ID() string { return f.id }

func (f *BookingFlow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ChangeQuantity mutates the selection. A rejected mutation leaves the
// selection untouched; a successful one rotates the idempotency key since
// the order content changed.
func (f *BookingFlow) ChangeQuantity(ticketTypeID string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelectingTickets {
		return fmt.Errorf("tickets can only be changed while selecting, current state is %s", f.state)
	}

	if err := f.selection.ChangeQuantity(ticketTypeID, delta); err != nil {
		return err
	}

	f.idempotencyKey = shortuuid.New()
	return nil
}

func (f *BookingFlow) Summary() entity.OrderSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return entity.ComputeSummary(f.selection, f.coupon, f.cfg.Policy)
}

// ApplyCoupon validates the code against the coupon service and stores the
// discount. A valid coupon with a zero discount is still a success. On
// failure the previously applied coupon, if any, is kept.
func (f *BookingFlow) ApplyCoupon(ctx context.Context, code string) error {
	f.mu.Lock()
	state := f.state
	f.mu.Unlock()

	switch state {
	case StateSelectingTickets, StateEnteringContactInfo, StateReviewingConfirmation:
	default:
		return fmt.Errorf("coupons cannot be applied in state %s", state)
	}

	coupon, err := f.deps.Coupons.ValidateCoupon(ctx, f.eventID, code)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.coupon = &coupon
	f.mu.Unlock()
	return nil
}

// ProceedToContact moves past selection. Refused while the order is empty.
func (f *BookingFlow) ProceedToContact() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.selection.TicketCount() == 0 {
		return entity.ErrEmptySelection
	}
	return f.transitionLocked(StateEnteringContactInfo)
}

func (f *BookingFlow) SubmitContact(contact entity.ContactInformation) error {
	if err := contact.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.transitionLocked(StateReviewingConfirmation); err != nil {
		return err
	}
	f.contact = contact
	f.idempotencyKey = shortuuid.New()
	return nil
}

// Back moves one step backwards so the user can adjust earlier input.
func (f *BookingFlow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateEnteringContactInfo:
		return f.transitionLocked(StateSelectingTickets)
	case StateReviewingConfirmation:
		return f.transitionLocked(StateEnteringContactInfo)
	case StateBookingFailed:
		f.message = ""
		return f.transitionLocked(StateSelectingTickets)
	case StatePaymentFailed:
		f.message = ""
		return f.transitionLocked(StateReviewingConfirmation)
	default:
		return fmt.Errorf("cannot go back from state %s", f.state)
	}
}

// Confirm submits the booking and, for priced orders, initiates payment and
// starts the reconciliation poller. Only one submission may be in flight;
// concurrent calls are refused without contacting the booking service.
func (f *BookingFlow) Confirm(ctx context.Context, method entity.PaymentMethod) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return entity.ErrSubmissionInFlight
	}
	if f.state == StateBookingFailed {
		// retry after a rejected submission
		if err := f.transitionLocked(StateReviewingConfirmation); err != nil {
			f.mu.Unlock()
			return err
		}
	}
	if err := f.transitionLocked(StateSubmittingBooking); err != nil {
		f.mu.Unlock()
		return err
	}

	f.submitting = true
	f.message = ""
	request := entity.BookingRequest{
		Selections:     f.selection.Items(),
		Contact:        f.contact,
		PaymentMethod:  method,
		IdempotencyKey: f.idempotencyKey,
	}
	if f.coupon != nil {
		request.CouponCode = f.coupon.Code
	}
	f.mu.Unlock()

	metrics.BookingsSubmitted.Inc()
	confirmation, err := f.deps.Bookings.BookEventTickets(ctx, f.eventID, request)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		metrics.BookingsFailed.Inc()
		f.message = genericBookingError
		var apiErr gateway.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			f.message = apiErr.Message
		}
		_ = f.transitionLocked(StateBookingFailed)
		return fmt.Errorf("booking submission failed: %w", err)
	}

	f.confirmation = &confirmation

	if !confirmation.PaymentRequired || confirmation.TotalAmount.IsZero() {
		_ = f.transitionLocked(StateBookingConfirmedFree)
		metrics.BookingsConfirmed.WithLabelValues("free").Inc()
		f.publish(entity.BookingConfirmed{
			Header:        entity.NewEventHeaderWithIdempotencyKey(request.IdempotencyKey),
			SessionID:     f.id,
			BookingID:     confirmation.BookingID,
			EventID:       f.eventID,
			CustomerEmail: f.contact.Email,
			Total:         confirmation.TotalAmount,
			Free:          true,
		})
		return nil
	}

	provider, err := f.deps.Providers.Provider(method)
	if err != nil {
		f.message = err.Error()
		_ = f.transitionLocked(StateReviewingConfirmation)
		return err
	}

	session, err := provider.Initiate(ctx, confirmation.BookingID, confirmation.TotalAmount)
	if err != nil {
		// the booking stands; user may pick another payment method
		f.message = "payment could not be started, choose a payment method to try again"
		_ = f.transitionLocked(StateReviewingConfirmation)
		return fmt.Errorf("payment initiation failed: %w", err)
	}

	f.session = &session
	f.provider = provider
	f.manualOnly = false
	_ = f.transitionLocked(StateAwaitingPayment)
	metrics.BookingsConfirmed.WithLabelValues("paid").Inc()

	f.saveRecovery(session)
	f.startPollingLocked(session, provider)

	return nil
}

// VerifyPayment is the manual "I've completed payment" fallback. A pending
// result changes nothing; success and definitive failure are terminal.
func (f *BookingFlow) VerifyPayment(ctx context.Context) (entity.PaymentStatus, error) {
	f.mu.Lock()
	if f.state != StateAwaitingPayment || f.session == nil {
		state := f.state
		f.mu.Unlock()
		return "", fmt.Errorf("no payment awaiting verification in state %s", state)
	}
	session := *f.session
	provider := f.provider
	f.mu.Unlock()

	if session.Expired(time.Now()) {
		f.expire(session)
		f.stopPolling()
		return "", entity.ErrSessionExpired
	}

	status, err := provider.Verify(ctx, session.OrderID, session.BookingID)
	if err != nil {
		return "", fmt.Errorf("payment verification failed: %w", err)
	}

	switch status {
	case entity.PaymentStatusSuccess:
		f.completePayment(session)
		f.stopPolling()
	case entity.PaymentStatusFailed:
		f.failPayment(session, "payment was declined by the provider")
		f.stopPolling()
	}

	return status, nil
}

// CancelPayment stops reconciliation and discards the payment session. The
// booking itself is not retracted; the user lands back on the confirmation
// step and may start payment again.
func (f *BookingFlow) CancelPayment(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateAwaitingPayment {
		state := f.state
		f.mu.Unlock()
		return fmt.Errorf("no payment to cancel in state %s", state)
	}
	f.session = nil
	f.provider = nil
	f.manualOnly = false
	f.message = "payment cancelled"
	_ = f.transitionLocked(StateReviewingConfirmation)
	f.mu.Unlock()

	f.stopPolling()

	if err := f.deps.Recovery.Clear(ctx, f.id); err != nil {
		log.FromContext(ctx).WithError(err).Warn("could not clear recovery record")
	}
	return nil
}

// Close tears the session down: polling is stopped synchronously and no
// further status checks are issued. Safe to call more than once.
func (f *BookingFlow) Close() {
	f.stopPolling()
}

func (f *BookingFlow) transitionLocked(target State) error {
	if !f.state.CanTransitionTo(target) {
		return fmt.Errorf("cannot move from %s to %s", f.state, target)
	}
	f.state = target
	return nil
}

func (f *BookingFlow) saveRecovery(session entity.PaymentSession) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := f.deps.Recovery.Save(ctx, db.RecoveryRecord{
		SessionID: f.id,
		BookingID: session.BookingID,
		OrderID:   session.OrderID,
		Method:    session.Method,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		// best-effort resume aid, the flow continues without it
		log.FromContext(ctx).WithError(err).Warn("could not store recovery record")
	}
}

func (f *BookingFlow) publish(event any) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := f.deps.Publisher.Publish(ctx, event); err != nil {
		log.FromContext(ctx).WithError(err).Error("could not publish flow event")
	}
}

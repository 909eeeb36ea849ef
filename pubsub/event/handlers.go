package event

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"checkout/db"
	"checkout/entity"
	"checkout/log"
)

type RecoveryStore interface {
	Clear(ctx context.Context, sessionID string) error
}

type AuditTrail interface {
	Append(ctx context.Context, entry db.AuditEntry) error
}

type Handler struct {
	recovery RecoveryStore
	audit    AuditTrail
}

func NewHandler(recovery RecoveryStore, audit AuditTrail) Handler {
	if recovery == nil {
		panic("missing recovery store")
	}
	if audit == nil {
		panic("missing audit trail")
	}
	return Handler{recovery: recovery, audit: audit}
}

// ClearRecoveryHandler drops the pending-payment record once payment is
// confirmed. The flow clears it inline too; this consumer covers the case
// where the process died between confirmation and cleanup.
func (h Handler) ClearRecoveryHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"ClearRecoveryHandler",
		func(ctx context.Context, event *entity.PaymentSucceeded) error {
			log.FromContext(ctx).WithField("session_id", event.SessionID).Info("Clearing recovery record")
			return h.recovery.Clear(ctx, event.SessionID)
		},
	)
}

func (h Handler) AuditPaymentSucceededHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"AuditPaymentSucceededHandler",
		func(ctx context.Context, event *entity.PaymentSucceeded) error {
			return h.audit.Append(ctx, db.AuditEntry{
				SessionID: event.SessionID,
				BookingID: event.BookingID,
				Outcome:   "payment_succeeded",
			})
		},
	)
}

func (h Handler) AuditPaymentFailedHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"AuditPaymentFailedHandler",
		func(ctx context.Context, event *entity.PaymentFailed) error {
			return h.audit.Append(ctx, db.AuditEntry{
				SessionID: event.SessionID,
				BookingID: event.BookingID,
				Outcome:   "payment_failed",
				Detail:    event.Reason,
			})
		},
	)
}

func (h Handler) AuditPaymentExpiredHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"AuditPaymentExpiredHandler",
		func(ctx context.Context, event *entity.PaymentExpired) error {
			return h.audit.Append(ctx, db.AuditEntry{
				SessionID: event.SessionID,
				BookingID: event.BookingID,
				Outcome:   "payment_expired",
			})
		},
	)
}

func (h Handler) AuditFreeBookingHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"AuditFreeBookingHandler",
		func(ctx context.Context, event *entity.BookingConfirmed) error {
			if !event.Free {
				return nil
			}
			return h.audit.Append(ctx, db.AuditEntry{
				SessionID: event.SessionID,
				BookingID: event.BookingID,
				Outcome:   "booking_confirmed_free",
			})
		},
	)
}

func (h Handler) AuditCheckInHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"AuditCheckInHandler",
		func(ctx context.Context, event *entity.TicketCheckedIn) error {
			return h.audit.Append(ctx, db.AuditEntry{
				TicketID: event.TicketID,
				Outcome:  "ticket_checked_in",
				Detail:   "event " + event.EventID,
			})
		},
	)
}

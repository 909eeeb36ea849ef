package flow

import (
	"context"
	"time"

	"checkout/db"
	"checkout/entity"
	"checkout/gateway"
)

type EventsService interface {
	GetEvent(ctx context.Context, eventID string) (entity.Event, error)
}

type TicketTypesService interface {
	GetEventTicketTypes(ctx context.Context, eventID string) ([]entity.TicketType, error)
}

type CouponService interface {
	ValidateCoupon(ctx context.Context, eventID, code string) (entity.Coupon, error)
}

type BookingService interface {
	BookEventTickets(ctx context.Context, eventID string, request entity.BookingRequest) (entity.BookingConfirmation, error)
}

type RecoveryStore interface {
	Save(ctx context.Context, record db.RecoveryRecord) error
	Clear(ctx context.Context, sessionID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type Deps struct {
	Events      EventsService
	TicketTypes TicketTypesService
	Coupons     CouponService
	Bookings    BookingService
	Providers   gateway.ProviderRegistry
	Recovery    RecoveryStore
	Probe       gateway.ConnectivityProbe
	Publisher   EventPublisher
}

type Config struct {
	Policy               entity.SummaryPolicy
	PollInterval         time.Duration
	PollFailureThreshold int
}

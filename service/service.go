package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"checkout/checkin"
	"checkout/config"
	"checkout/db"
	"checkout/entity"
	"checkout/flow"
	"checkout/gateway"
	httpServer "checkout/http"
	"checkout/log"
	"checkout/pubsub"
	"checkout/pubsub/event"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *message.Router
	httpServer      *httpServer.Server
	flowManager     *flow.Manager
}

func New(
	cfg config.Config,
	redisClient *redis.Client,
	events flow.EventsService,
	ticketTypes flow.TicketTypesService,
	coupons flow.CouponService,
	bookings flow.BookingService,
	providers gateway.ProviderRegistry,
	probe gateway.ConnectivityProbe,
	checkInTickets checkin.TicketService,
) Service {
	watermillLogger := log.NewWatermill(logrus.NewEntry(logrus.StandardLogger()))

	redisPublisher := pubsub.NewRedisPublisher(redisClient, watermillLogger)

	eventBus, err := pubsub.NewEventBus(redisPublisher)
	if err != nil {
		panic(fmt.Errorf("failed to create event bus: %w", err))
	}

	recoveryStore := db.NewRecoveryRedisStore(redisClient)
	auditTrail := db.NewAuditTrail(redisClient)

	eventHandler := event.NewHandler(recoveryStore, auditTrail)
	eventProcessorConfig := pubsub.NewEventProcessorConfig(redisClient, watermillLogger)

	watermillRouter, err := pubsub.NewWatermillRouter(eventProcessorConfig, eventHandler, watermillLogger)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	flowManager := flow.NewManager(
		flow.Config{
			Policy: entity.SummaryPolicy{
				ServiceFeePercent:  cfg.Pricing.ServiceFeePercent,
				MaxTicketsPerOrder: cfg.Pricing.MaxTicketsPerOrder,
			},
			PollInterval:         cfg.Payment.PollInterval,
			PollFailureThreshold: cfg.Payment.PollFailureThreshold,
		},
		flow.Deps{
			Events:      events,
			TicketTypes: ticketTypes,
			Coupons:     coupons,
			Bookings:    bookings,
			Providers:   providers,
			Recovery:    recoveryStore,
			Probe:       probe,
			Publisher:   eventBus,
		},
	)

	checkInService := checkin.NewService(checkInTickets, eventBus)

	server := httpServer.NewServer(cfg.HTTP.Addr, flowManager, checkInService, auditTrail)

	return Service{
		watermillRouter: watermillRouter,
		httpServer:      server,
		flowManager:     flowManager,
	}
}

func (s Service) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// the router owns the subscriptions the handlers depend on
		<-s.watermillRouter.Running()
		return s.httpServer.Run(ctx)
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		s.flowManager.Close()
		return nil
	})

	return errgrp.Wait()
}

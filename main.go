package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"checkout/config"
	"checkout/gateway"
	"checkout/log"
	"checkout/service"
	"checkout/tracing"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(os.Getenv("CHECKOUT_CONFIG"))
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}

	if cfg.Tracing.Enabled {
		tp := tracing.ConfigureTraceProvider(cfg.Tracing.JaegerEndpoint)
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	apiClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout)

	providers := gateway.NewProviderRegistry(
		gateway.NewUpiProvider(apiClient, cfg.Payment.SessionTTL),
		gateway.NewCashfreeRedirectProvider(apiClient, cfg.Payment.SessionTTL),
		gateway.NewCashfreeEmbeddedProvider(apiClient, cfg.Payment.SessionTTL),
		gateway.NewPhonePeProvider(apiClient, cfg.Payment.SessionTTL),
	)

	svc := service.New(
		cfg,
		redisClient,
		gateway.NewEventsClient(apiClient),
		gateway.NewTicketTypesClient(apiClient),
		gateway.NewCouponClient(apiClient),
		gateway.NewBookingClient(apiClient),
		providers,
		gateway.NewHealthProbe(apiClient),
		gateway.NewCheckInClient(apiClient),
	)

	if err := svc.Run(ctx); err != nil {
		log.FromContext(ctx).WithError(err).Fatal("service stopped with error")
	}
}

package gateway

import (
	"context"
	"fmt"

	"checkout/entity"
)

// PaymentProvider is the one surface the reconciliation flow depends on.
// Each provider hides its own request/response shapes and status sentinels.
type PaymentProvider interface {
	Method() entity.PaymentMethod
	Initiate(ctx context.Context, bookingID string, amount entity.Money) (entity.PaymentSession, error)
	CheckStatus(ctx context.Context, orderID string) (entity.PaymentStatus, error)
	Verify(ctx context.Context, orderID, bookingID string) (entity.PaymentStatus, error)
}

type ProviderRegistry struct {
	providers map[entity.PaymentMethod]PaymentProvider
}

func NewProviderRegistry(providers ...PaymentProvider) ProviderRegistry {
	r := ProviderRegistry{providers: make(map[entity.PaymentMethod]PaymentProvider, len(providers))}
	for _, p := range providers {
		r.providers[p.Method()] = p
	}
	return r
}

func (r ProviderRegistry) Provider(method entity.PaymentMethod) (PaymentProvider, error) {
	p, ok := r.providers[method]
	if !ok {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}
	return p, nil
}

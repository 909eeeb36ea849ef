package gateway

import (
	"context"
	"net/http"
	"time"
)

// ConnectivityProbe answers whether the backend is reachable at all. The
// payment poller skips ticks while offline instead of counting them as
// check failures.
type ConnectivityProbe interface {
	Online(ctx context.Context) bool
}

// HealthProbe probes the gateway health endpoint with a short timeout.
type HealthProbe struct {
	client  *Client
	timeout time.Duration
}

func NewHealthProbe(client *Client) HealthProbe {
	return HealthProbe{client: client, timeout: 2 * time.Second}
}

func (p HealthProbe) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.client.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

// AlwaysOnline is the probe used where connectivity tracking is not wired.
type AlwaysOnline struct{}

func (AlwaysOnline) Online(context.Context) bool { return true }

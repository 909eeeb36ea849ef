package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"checkout/entity"
)

var ErrSessionNotFound = errors.New("booking session not found")

// Manager owns the live booking sessions. Sessions are in-memory only;
// a closed session leaves nothing behind except its recovery record.
type Manager struct {
	cfg  Config
	deps Deps

	mu    sync.Mutex
	flows map[string]*BookingFlow
}

func NewManager(cfg Config, deps Deps) *Manager {
	return &Manager{
		cfg:   cfg,
		deps:  deps,
		flows: make(map[string]*BookingFlow),
	}
}

// StartSession fetches the event and its ticket types and opens a fresh
// flow in the selection step.
func (m *Manager) StartSession(ctx context.Context, eventID string) (*BookingFlow, entity.Event, error) {
	event, err := m.deps.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, entity.Event{}, fmt.Errorf("could not load event: %w", err)
	}

	ticketTypes, err := m.deps.TicketTypes.GetEventTicketTypes(ctx, eventID)
	if err != nil {
		return nil, entity.Event{}, fmt.Errorf("could not load ticket types: %w", err)
	}

	f := NewBookingFlow(uuid.NewString(), eventID, ticketTypes, m.cfg, m.deps)

	m.mu.Lock()
	m.flows[f.ID()] = f
	m.mu.Unlock()

	return f, event, nil
}

func (m *Manager) Get(sessionID string) (*BookingFlow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.flows[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return f, nil
}

// Remove closes the session and forgets it. Polling stops synchronously;
// an already-submitted booking is not retracted.
func (m *Manager) Remove(sessionID string) error {
	m.mu.Lock()
	f, ok := m.flows[sessionID]
	delete(m.flows, sessionID)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	f.Close()
	return nil
}

// Close tears down every live session, used on service shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	flows := make([]*BookingFlow, 0, len(m.flows))
	for _, f := range m.flows {
		flows = append(flows, f)
	}
	m.flows = make(map[string]*BookingFlow)
	m.mu.Unlock()

	for _, f := range flows {
		f.Close()
	}
}

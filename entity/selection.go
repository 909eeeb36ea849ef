package entity

import (
	"time"

	"github.com/samber/lo"
)

// SummaryPolicy carries the pricing knobs that differ between deployments.
// Both values showed up hard-coded in older clients with conflicting
// literals, so they are injected here instead.
type SummaryPolicy struct {
	ServiceFeePercent  int
	MaxTicketsPerOrder int
}

// Selection holds the quantities an attendee picked per ticket type.
// All mutation goes through ChangeQuantity so the invariants hold after
// every call, including rejected ones.
type Selection struct {
	types      map[string]TicketType
	quantities map[string]int
	policy     SummaryPolicy
}

// NewSelection seeds a zeroed selection for every type currently on sale.
// Sold-out and inactive types are excluded up front.
func NewSelection(types []TicketType, policy SummaryPolicy, now time.Time) *Selection {
	offered := lo.Filter(types, func(t TicketType, _ int) bool {
		return t.OnSale(now)
	})

	s := &Selection{
		types:      make(map[string]TicketType, len(offered)),
		quantities: make(map[string]int, len(offered)),
		policy:     policy,
	}
	for _, t := range offered {
		s.types[t.ID] = t
		s.quantities[t.ID] = 0
	}
	return s
}

// ChangeQuantity applies delta to the given type's quantity, clamped to
// [0, min(maxPerOrder, remaining)]. If the clamped result would push the
// whole order over the per-order cap the mutation is rejected and the
// previous state is kept.
func (s *Selection) ChangeQuantity(ticketTypeID string, delta int) error {
	t, ok := s.types[ticketTypeID]
	if !ok {
		return ErrUnknownTicketType
	}

	qty := s.quantities[ticketTypeID] + delta
	if qty < 0 {
		qty = 0
	}
	if cap := t.QuantityCap(); qty > cap {
		qty = cap
	}

	if s.TicketCount()-s.quantities[ticketTypeID]+qty > s.policy.MaxTicketsPerOrder {
		return ErrOrderCapExceeded
	}

	s.quantities[ticketTypeID] = qty
	return nil
}

func (s *Selection) Quantity(ticketTypeID string) int {
	return s.quantities[ticketTypeID]
}

func (s *Selection) TicketCount() int {
	return lo.Sum(lo.Values(s.quantities))
}

// Items returns the non-zero selections in BookingRequest form.
func (s *Selection) Items() []SelectionItem {
	items := make([]SelectionItem, 0, len(s.quantities))
	for id, qty := range s.quantities {
		if qty > 0 {
			items = append(items, SelectionItem{TicketTypeID: id, Quantity: qty})
		}
	}
	return items
}

func (s *Selection) TicketType(id string) (TicketType, bool) {
	t, ok := s.types[id]
	return t, ok
}

type SelectionItem struct {
	TicketTypeID string `json:"ticket_type_id"`
	Quantity     int    `json:"quantity"`
}

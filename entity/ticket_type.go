package entity

import "time"

type TicketType struct {
	ID          string `json:"ticket_type_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`

	// Remaining is advisory only, the booking service enforces the truth.
	// nil means unlimited.
	Remaining *int `json:"remaining,omitempty"`

	Active      bool       `json:"active"`
	SaleStartAt *time.Time `json:"sale_start_at,omitempty"`
	SaleEndAt   *time.Time `json:"sale_end_at,omitempty"`

	MaxPerOrder int `json:"max_per_order"`
}

// OnSale reports whether the type can be offered at the given moment.
func (t TicketType) OnSale(now time.Time) bool {
	if !t.Active {
		return false
	}
	if t.Remaining != nil && *t.Remaining == 0 {
		return false
	}
	if t.SaleStartAt != nil && now.Before(*t.SaleStartAt) {
		return false
	}
	if t.SaleEndAt != nil && now.After(*t.SaleEndAt) {
		return false
	}
	return true
}

// QuantityCap returns the largest quantity of this type a single order may
// hold, before the global per-order cap is applied.
func (t TicketType) QuantityCap() int {
	cap := t.MaxPerOrder
	if cap <= 0 {
		cap = int(^uint(0) >> 1)
	}
	if t.Remaining != nil && *t.Remaining < cap {
		cap = *t.Remaining
	}
	return cap
}

type Event struct {
	ID       string    `json:"event_id"`
	Name     string    `json:"name"`
	Venue    string    `json:"venue"`
	StartsAt time.Time `json:"starts_at"`
}

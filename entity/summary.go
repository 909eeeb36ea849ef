package entity

import "sort"

type LineItem struct {
	TicketTypeID string `json:"ticket_type_id"`
	Name         string `json:"name"`
	UnitPrice    Money  `json:"unit_price"`
	Quantity     int    `json:"quantity"`
	LineTotal    Money  `json:"line_total"`
}

type OrderSummary struct {
	Lines       []LineItem `json:"lines"`
	Subtotal    Money      `json:"subtotal"`
	ServiceFee  Money      `json:"service_fee"`
	Discount    Money      `json:"discount"`
	Total       Money      `json:"total"`
	TicketCount int        `json:"ticket_count"`
}

// Coupon is a validated discount, stored after the coupon service accepted
// the code. A zero-percent coupon is valid and simply changes nothing.
type Coupon struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}

// ComputeSummary derives the priced breakdown for the current selection.
// It is pure: same inputs, same output, no side effects, so callers may
// recompute it on every mutation.
func ComputeSummary(s *Selection, coupon *Coupon, policy SummaryPolicy) OrderSummary {
	summary := OrderSummary{}

	for _, item := range s.Items() {
		t, ok := s.TicketType(item.TicketTypeID)
		if !ok {
			continue
		}
		line := LineItem{
			TicketTypeID: t.ID,
			Name:         t.Name,
			UnitPrice:    t.Price,
			Quantity:     item.Quantity,
			LineTotal:    t.Price.Mul(item.Quantity),
		}
		summary.Lines = append(summary.Lines, line)
		summary.TicketCount += item.Quantity

		if summary.Subtotal.Currency == "" {
			summary.Subtotal = Money{Currency: line.LineTotal.Currency}
		}
		summary.Subtotal.Amount += line.LineTotal.Amount
	}

	sort.Slice(summary.Lines, func(i, j int) bool {
		return summary.Lines[i].TicketTypeID < summary.Lines[j].TicketTypeID
	})

	currency := summary.Subtotal.Currency
	summary.ServiceFee = summary.Subtotal.Percent(policy.ServiceFeePercent)
	summary.Discount = Money{Currency: currency}
	if coupon != nil {
		summary.Discount = summary.Subtotal.Percent(coupon.DiscountPercent)
	}

	total := summary.Subtotal.Amount + summary.ServiceFee.Amount - summary.Discount.Amount
	if total < 0 {
		total = 0
	}
	summary.Total = Money{Amount: total, Currency: currency}

	return summary
}

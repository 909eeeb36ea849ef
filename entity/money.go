package entity

import "fmt"

// Money is an amount in the currency's minor unit (paise, cents).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount * int64(qty), Currency: m.Currency}
}

// Percent computes p percent of the amount, truncating fractions of a minor unit.
func (m Money) Percent(p int) Money {
	return Money{Amount: m.Amount * int64(p) / 100, Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}

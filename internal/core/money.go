// Package core provides the budget ledger domain types and money handling.
//
// Monetary amounts are stored as integer cents. Parsing accepts any decimal
// text; serialization always emits exactly two fractional digits so that
// exported rows round-trip through the interchange format.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in integer cents.
type Money struct {
	Cents int64
}

// ParseAmount converts decimal text into Money, rounding half-up on the third
// fractional digit. It accepts both dot (12.34) and comma (12,34) separators.
// Negative or non-numeric input is rejected with ErrInvalidAmount; zero is a
// valid amount.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: d.Shift(2).Round(0).IntPart()}, nil
}

// Decimal returns the amount as a decimal value for arithmetic or display.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with exactly two fractional digits, e.g. "150.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m minus o. The result may be negative; an overspent project
// simply has a remaining balance below zero.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Cents < 0
}

// Package core provides money parsing and handling utilities.
//
// Amounts are exact decimals. All arithmetic goes through
// shopspring/decimal; float64 conversions exist only for display and
// chart series.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// largeAmountThreshold is the value above which an amount needs
// explicit confirmation before the ledger accepts it.
var largeAmountThreshold = decimal.NewFromInt(1_000_000)

// Money is an exact decimal amount.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal value.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromFloat builds a Money from a float64. Intended for tests and
// chart consumers; parse user input with ParseMoney instead.
func MoneyFromFloat(f float64) Money {
	return Money{Decimal: decimal.NewFromFloat(f)}
}

// ParseMoney converts a decimal string to a positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for malformed input, negative values or zero.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	m := Money{Decimal: d}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

func (m Money) Validate() error {
	if m.Decimal.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// RequiresConfirmation reports whether the amount exceeds the
// large-amount threshold.
func (m Money) RequiresConfirmation() bool {
	return m.Decimal.GreaterThan(largeAmountThreshold)
}

// Plus returns m + o.
func (m Money) Plus(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

// Minus returns m - o. The result may be negative (budget overruns).
func (m Money) Minus(o Money) Money {
	return Money{Decimal: m.Decimal.Sub(o.Decimal)}
}

// Equal reports exact decimal equality, ignoring exponent representation.
func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// Float64 returns the amount as a float64 for display and chart series.
// Use decimal arithmetic for anything that accumulates.
func (m Money) Float64() float64 {
	return m.Decimal.InexactFloat64()
}

// Display renders the amount with a currency symbol and two decimals.
func (m Money) Display(symbol string) string {
	return symbol + m.Decimal.StringFixed(2)
}

// MarshalJSON renders the amount as a bare JSON number so persisted
// config and record exports carry plain decimals, not quoted strings.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts both bare numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, s)
	}
	m.Decimal = d
	return nil
}

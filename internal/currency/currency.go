// Package currency provides ISO 4217 code validation, display formatting and
// presentation-time conversion. Converted amounts are never written back to
// stored state; each stored balance stays in its own currency.
package currency

import (
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrUnknownRate is returned when no exchange rate covers a currency pair.
var ErrUnknownRate = errors.New("no exchange rate available")

// Valid reports whether code names a known ISO 4217 currency.
func Valid(code string) bool {
	return money.GetCurrency(code) != nil
}

// Format renders an amount in the currency's conventional notation, with the
// grapheme and decimal places the currency defines.
func Format(amount decimal.Decimal, code string) string {
	// the Money constructor is the one way to get a never-nil currency
	cur := money.New(0, code).Currency()
	return cur.Formatter().Format(amount.Shift(int32(cur.Fraction)).IntPart())
}

// RateSource supplies exchange rates. Rate returns how many units of to equal
// one unit of from. Implementations must be safe for concurrent use.
type RateSource interface {
	Rate(from, to string) (decimal.Decimal, error)
}

// Converter converts amounts between currencies for reporting. A Converter
// with no rate source still handles same-currency conversion.
type Converter struct {
	rates RateSource
}

func NewConverter(rates RateSource) *Converter {
	return &Converter{rates: rates}
}

func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if !Valid(from) {
		return decimal.Zero, fmt.Errorf("unknown currency %q", from)
	}
	if !Valid(to) {
		return decimal.Zero, fmt.Errorf("unknown currency %q", to)
	}
	if from == to {
		return amount, nil
	}
	if c.rates == nil {
		return decimal.Zero, fmt.Errorf("%w: %s/%s", ErrUnknownRate, from, to)
	}
	rate, err := c.rates.Rate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

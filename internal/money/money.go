// Package money handles amounts and the fixed conversion into the base
// currency (GBP). Amounts are decimals, never floats.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code.
type Currency string

const (
	GBP Currency = "GBP"
	EUR Currency = "EUR"
	USD Currency = "USD"
)

// ErrUnsupportedCurrency is returned by Convert for any currency missing from
// the static rate table. Unknown currencies are never silently passed through
// at rate 1.0; callers decide what a rejection means.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// rates is the static conversion table into GBP.
var rates = map[Currency]decimal.Decimal{
	GBP: decimal.NewFromInt(1),
	EUR: decimal.RequireFromString("0.88"),
	USD: decimal.RequireFromString("0.80"),
}

// Convert converts amount in the given currency to GBP, rounded to 2 decimal
// places.
func Convert(amount decimal.Decimal, currency Currency) (decimal.Decimal, error) {
	rate, ok := rates[currency]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}

	return Round2(amount.Mul(rate)), nil
}

// Supported reports whether the currency has a conversion rate.
func Supported(currency Currency) bool {
	_, ok := rates[currency]
	return ok
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

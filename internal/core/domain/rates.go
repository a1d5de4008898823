package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSet holds the exchange rates fetched for one base currency.
// All rates are relative to Base; the base itself is implicitly 1.0 and may
// be absent from the map. A RateSet lives for at most one request scope and
// is never persisted.
type RateSet struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"-"`
}

// Rate returns the rate for the given currency code. The base currency
// always reports 1.0 even when the service omits it from the map.
func (r *RateSet) Rate(code string) (decimal.Decimal, bool) {
	if code == r.Base {
		return decimal.NewFromInt(1), true
	}
	rate, ok := r.Rates[code]
	return rate, ok
}

// Conversion is the result of converting a value into a target currency.
// Unconverted is set when the rate lookup failed and the original value was
// passed through formatted but not converted.
type Conversion struct {
	Formatted   string   `json:"formatted"`
	Currency    Currency `json:"currency"`
	Unconverted bool     `json:"unconverted"`
}

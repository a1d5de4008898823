package sources

import (
	"context"

	"github.com/mresults/fxconvert/internal/core/domain"
)

// RateSource fetches live exchange rates from the external rate service.
type RateSource interface {
	// FetchRates performs one rate lookup for the given base currency,
	// restricted to the given symbol set.
	FetchRates(ctx context.Context, base string, symbols []string) (*domain.RateSet, error)

	// ListCodes enumerates every currency code the rate service supports.
	ListCodes(ctx context.Context) ([]string, error)
}

// MetadataSource fetches reference currency metadata (name, symbol per code)
// from the external reference listing.
type MetadataSource interface {
	FetchCurrencyMeta(ctx context.Context) (map[string]domain.Currency, error)
}

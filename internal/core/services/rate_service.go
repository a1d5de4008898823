package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	"github.com/mresults/fxconvert/internal/core/ports/sources"
)

// RateService fetches live exchange rates through the configured rate
// source. Results are only ever cached inside a request scope; rates are
// treated as always-fresh-on-demand and never persisted.
type RateService struct {
	BaseService
	rateSource sources.RateSource
}

// NewRateService creates a new RateService.
func NewRateService(rateSource sources.RateSource) *RateService {
	return &RateService{rateSource: rateSource}
}

// GetRates performs one rate lookup for the given base currency restricted
// to the given symbol set.
func (s *RateService) GetRates(ctx context.Context, base string, symbols []string) (*domain.RateSet, error) {
	if base == "" {
		return nil, fmt.Errorf("%w: base currency must not be empty", apperrors.ErrValidation)
	}

	rates, err := s.rateSource.FetchRates(ctx, base, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates for base %s: %w", base, err)
	}
	if rates.Base != base {
		// The service answered for a different base than requested; treat
		// the response as unusable rather than converting with wrong rates.
		return nil, fmt.Errorf("%w: rate service answered for base %s, requested %s", apperrors.ErrParse, rates.Base, base)
	}

	s.LogDebug(ctx, "Fetched exchange rates",
		slog.String("base", base),
		slog.Int("symbols", len(rates.Rates)))
	return rates, nil
}

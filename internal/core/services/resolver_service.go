package services

import (
	"context"
	"log/slog"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	portssvc "github.com/mresults/fxconvert/internal/core/ports/services"
)

// ResolverService determines the visitor's selected currency from the
// ordered precedence chain: explicit request override, stored session value,
// configured default. The resolver itself never writes the session; it
// signals the caller when the resolved code differs from the stored one.
type ResolverService struct {
	BaseService
	catalogSvc portssvc.CatalogSvcFacade
	settings   domain.Settings
}

// NewResolverService creates a new ResolverService.
func NewResolverService(catalogSvc portssvc.CatalogSvcFacade, settings domain.Settings) *ResolverService {
	return &ResolverService{catalogSvc: catalogSvc, settings: settings}
}

// Resolve walks the precedence chain and returns the selected currency plus
// a flag asking the caller to persist the resolved code to the session.
// An unknown code at any level falls through to the next; an override is
// additionally checked against the allow-list so a visitor cannot select a
// currency the operator does not offer. An empty catalog fails with
// ErrNoCurrencyAvailable.
func (s *ResolverService) Resolve(ctx context.Context, override string, sessionCode string) (domain.SelectedCurrency, bool, error) {
	currencies, err := s.catalogSvc.GetCurrencies(ctx)
	if err != nil {
		return domain.SelectedCurrency{}, false, err
	}

	candidates := []struct {
		code          string
		source        domain.Source
		mustBeAllowed bool
	}{
		{override, domain.SourceOverride, true},
		{sessionCode, domain.SourceSession, false},
		{s.settings.DefaultCurrency, domain.SourceDefault, false},
	}

	for _, candidate := range candidates {
		if candidate.code == "" {
			continue
		}
		currency, ok := currencies[candidate.code]
		if !ok {
			s.LogDebug(ctx, "Currency candidate not in catalog, falling through",
				slog.String("code", candidate.code),
				slog.String("source", string(candidate.source)))
			continue
		}
		if candidate.mustBeAllowed && !s.settings.IsAllowed(candidate.code) {
			s.LogDebug(ctx, "Override currency not on allow-list, falling through",
				slog.String("code", candidate.code))
			continue
		}

		selected := domain.SelectedCurrency{Currency: currency, Source: candidate.source}
		shouldPersist := selected.Currency.Code != sessionCode
		return selected, shouldPersist, nil
	}

	// Nothing resolved at any level. With a populated catalog this means the
	// configured default is bad; with an empty catalog the whole install is
	// unusable. Either way the operator has to act.
	return domain.SelectedCurrency{}, false, apperrors.ErrNoCurrencyAvailable
}

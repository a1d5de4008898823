package services

import (
	"context"

	"github.com/mresults/fxconvert/internal/core/domain"
	portssvc "github.com/mresults/fxconvert/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// requestScope is the per-request memoization context behind the
// render-facing API. Every result is cached after first access, including a
// failed rate fetch, so each external collaborator is consulted at most once
// per request. Scopes are not safe for concurrent use; each request gets its
// own.
type requestScope struct {
	catalogSvc    portssvc.CatalogSvcFacade
	rateSvc       portssvc.RateSvcFacade
	resolverSvc   portssvc.ResolverSvcFacade
	conversionSvc portssvc.ConversionSvcFacade
	settings      domain.Settings

	allowed       []domain.Currency
	allowedLoaded bool

	rates        *domain.RateSet
	ratesErr     error
	ratesFetched bool

	selected        *domain.SelectedCurrency
	selectedPersist bool
}

var _ portssvc.RenderScope = (*requestScope)(nil)
var _ portssvc.RateProvider = (*requestScope)(nil)

// AllowedCurrencies lists the currencies offered to the visitor.
func (sc *requestScope) AllowedCurrencies(ctx context.Context) ([]domain.Currency, error) {
	if sc.allowedLoaded {
		return sc.allowed, nil
	}
	allowed, err := sc.catalogSvc.GetAllowedCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	sc.allowed = allowed
	sc.allowedLoaded = true
	return allowed, nil
}

// Selected resolves the visitor's currency, memoizing the first resolution
// for the lifetime of the request.
func (sc *requestScope) Selected(ctx context.Context, override string, sessionCode string) (domain.SelectedCurrency, bool, error) {
	if sc.selected != nil {
		return *sc.selected, sc.selectedPersist, nil
	}
	selected, shouldPersist, err := sc.resolverSvc.Resolve(ctx, override, sessionCode)
	if err != nil {
		return domain.SelectedCurrency{}, false, err
	}
	sc.selected = &selected
	sc.selectedPersist = shouldPersist
	return selected, shouldPersist, nil
}

// Convert converts value from the base currency into target.
func (sc *requestScope) Convert(ctx context.Context, value decimal.Decimal, target domain.Currency) (domain.Conversion, error) {
	return sc.conversionSvc.Convert(ctx, sc, value, target)
}

// Rates implements ports/services.RateProvider. The fetch outcome is
// memoized either way: a request that already failed to reach the rate
// service does not retry within its own lifetime.
func (sc *requestScope) Rates(ctx context.Context) (*domain.RateSet, error) {
	if sc.ratesFetched {
		return sc.rates, sc.ratesErr
	}

	allowed, err := sc.AllowedCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(allowed))
	for _, currency := range allowed {
		symbols = append(symbols, currency.Code)
	}

	sc.rates, sc.ratesErr = sc.rateSvc.GetRates(ctx, sc.settings.BaseCurrency, symbols)
	sc.ratesFetched = true
	return sc.rates, sc.ratesErr
}

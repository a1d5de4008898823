package services

import (
	"context"

	"github.com/mresults/fxconvert/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CatalogReaderSvc defines read operations over the merged currency catalog.
type CatalogReaderSvc interface {
	// GetCurrencies returns every currency known to the catalog, keyed by
	// code, refreshing the cached catalog first when it has gone stale.
	GetCurrencies(ctx context.Context) (map[string]domain.Currency, error)

	// GetAllowedCurrencies returns the operator-configured subset of the
	// catalog, preserving the configured order.
	GetAllowedCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CatalogSvcFacade combines all catalog-related service interfaces.
type CatalogSvcFacade interface {
	CatalogReaderSvc
}

// RateSvcFacade defines the live exchange-rate lookup.
type RateSvcFacade interface {
	// GetRates fetches rates for base restricted to the given symbols.
	GetRates(ctx context.Context, base string, symbols []string) (*domain.RateSet, error)
}

// RateProvider supplies the rate set for the current request. Implementations
// memoize so that at most one remote fetch happens per request scope.
type RateProvider interface {
	Rates(ctx context.Context) (*domain.RateSet, error)
}

// ResolverSvcFacade resolves the visitor's selected currency.
type ResolverSvcFacade interface {
	// Resolve walks the precedence chain (request override, stored session
	// value, configured default) and returns the selected currency plus a
	// flag telling the caller to persist the new value to the session.
	// Resolution itself performs no session writes.
	Resolve(ctx context.Context, override string, sessionCode string) (domain.SelectedCurrency, bool, error)
}

// ConversionSvcFacade converts values from the base currency into a target
// currency and applies the display formatting rules.
type ConversionSvcFacade interface {
	Convert(ctx context.Context, rates RateProvider, value decimal.Decimal, target domain.Currency) (domain.Conversion, error)
}

// SettingsSvcFacade loads operator settings from the options store.
type SettingsSvcFacade interface {
	// Load reads the operator settings, substituting built-in defaults for
	// any key that has never been configured.
	Load(ctx context.Context) (domain.Settings, error)

	// EnsureDefaults seeds the options store with the built-in defaults for
	// any missing operator key. Called once at startup.
	EnsureDefaults(ctx context.Context) error
}

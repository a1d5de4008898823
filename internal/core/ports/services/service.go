package services

import (
	"context"

	"github.com/mresults/fxconvert/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Settings   SettingsSvcFacade
	Catalog    CatalogSvcFacade
	Rates      RateSvcFacade
	Resolver   ResolverSvcFacade
	Conversion ConversionSvcFacade
	Scopes     ScopeFactory
}

// RenderScope is the render-facing API consumed by the web layer. One scope
// is created per inbound request; catalog, rate and resolution results are
// memoized inside it so each remote collaborator is hit at most once per
// request.
type RenderScope interface {
	// AllowedCurrencies lists the currencies offered to the visitor.
	AllowedCurrencies(ctx context.Context) ([]domain.Currency, error)

	// Selected resolves the visitor's currency from the request override and
	// the stored session value. The bool return asks the caller to persist
	// the resolved code back to the session.
	Selected(ctx context.Context, override string, sessionCode string) (domain.SelectedCurrency, bool, error)

	// Convert converts value from the configured base currency into target
	// and formats it for display.
	Convert(ctx context.Context, value decimal.Decimal, target domain.Currency) (domain.Conversion, error)
}

// ScopeFactory creates a fresh RenderScope for an inbound request.
type ScopeFactory interface {
	NewScope() RenderScope
}

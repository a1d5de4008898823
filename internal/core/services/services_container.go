package services

import (
	"github.com/mresults/fxconvert/internal/core/domain"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
	portssvc "github.com/mresults/fxconvert/internal/core/ports/services"
	"github.com/mresults/fxconvert/internal/core/ports/sources"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. Settings are loaded once by the caller and
// shared by every service for the life of the process.
func NewServiceContainer(
	settings domain.Settings,
	repos portsrepo.RepositoryProvider,
	rateSource sources.RateSource,
	metaSource sources.MetadataSource,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Settings = NewSettingsService(repos.OptionRepo)
	container.Catalog = NewCatalogService(repos.OptionRepo, rateSource, metaSource, settings)
	container.Rates = NewRateService(rateSource)
	container.Resolver = NewResolverService(container.Catalog, settings)
	container.Conversion = NewConversionService(settings)
	container.Scopes = &scopeFactory{
		catalogSvc:    container.Catalog,
		rateSvc:       container.Rates,
		resolverSvc:   container.Resolver,
		conversionSvc: container.Conversion,
		settings:      settings,
	}

	return container
}

// scopeFactory builds a fresh request scope per inbound request.
type scopeFactory struct {
	catalogSvc    portssvc.CatalogSvcFacade
	rateSvc       portssvc.RateSvcFacade
	resolverSvc   portssvc.ResolverSvcFacade
	conversionSvc portssvc.ConversionSvcFacade
	settings      domain.Settings
}

func (f *scopeFactory) NewScope() portssvc.RenderScope {
	return &requestScope{
		catalogSvc:    f.catalogSvc,
		rateSvc:       f.rateSvc,
		resolverSvc:   f.resolverSvc,
		conversionSvc: f.conversionSvc,
		settings:      f.settings,
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SettingsSvcFacade   = (*SettingsService)(nil)
	_ portssvc.CatalogSvcFacade    = (*CatalogService)(nil)
	_ portssvc.RateSvcFacade       = (*RateService)(nil)
	_ portssvc.ResolverSvcFacade   = (*ResolverService)(nil)
	_ portssvc.ConversionSvcFacade = (*ConversionService)(nil)
	_ portssvc.ScopeFactory        = (*scopeFactory)(nil)
)

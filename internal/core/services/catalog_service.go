package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
	"github.com/mresults/fxconvert/internal/core/ports/sources"
)

// CatalogService builds the merged view of all known currencies by crossing
// the reference metadata listing with the set of codes the rate service
// actually quotes. The merged catalog is cached in the options store and
// lazily refreshed once it is older than domain.CatalogTTL; the visitor who
// triggers the refresh bears the fetch latency.
type CatalogService struct {
	BaseService
	optionRepo portsrepo.OptionRepository
	rateSource sources.RateSource
	metaSource sources.MetadataSource
	settings   domain.Settings
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	optionRepo portsrepo.OptionRepository,
	rateSource sources.RateSource,
	metaSource sources.MetadataSource,
	settings domain.Settings,
) *CatalogService {
	return &CatalogService{
		optionRepo: optionRepo,
		rateSource: rateSource,
		metaSource: metaSource,
		settings:   settings,
	}
}

// GetCurrencies returns every currency known to the catalog, keyed by code.
// A stale or empty cache triggers a synchronous refetch; if the refetch
// fails the stale cache (possibly empty on a cold start) is returned instead
// of an error, and the condition is logged for operators.
func (s *CatalogService) GetCurrencies(ctx context.Context) (map[string]domain.Currency, error) {
	cached, fetchedAt, err := s.readCached(ctx)
	if err != nil {
		return nil, err
	}

	if len(cached) > 0 && time.Since(fetchedAt) <= domain.CatalogTTL {
		return cached, nil
	}

	refreshed, err := s.refresh(ctx)
	if err != nil {
		// Degrade to whatever we have; a cold start with no cache yields an
		// empty catalog, which the resolver surfaces as a config error.
		s.LogWarn(ctx, "Catalog refresh failed, serving cached catalog",
			slog.String("error", err.Error()),
			slog.Int("cached_size", len(cached)))
		return cached, nil
	}
	return refreshed, nil
}

// GetAllowedCurrencies filters the catalog down to the configured allow-list,
// preserving the configured order. Codes configured but absent from the
// catalog are omitted.
func (s *CatalogService) GetAllowedCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.GetCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	allowed := make([]domain.Currency, 0, len(s.settings.AllowedCurrencies))
	for _, code := range s.settings.AllowedCurrencies {
		if currency, ok := currencies[code]; ok {
			allowed = append(allowed, currency)
		}
	}
	return allowed, nil
}

// readCached loads the cached catalog and its fetch timestamp from the
// options store. An unset or unparseable cache reads as empty.
func (s *CatalogService) readCached(ctx context.Context) (map[string]domain.Currency, time.Time, error) {
	raw, err := s.optionRepo.GetOption(ctx, portsrepo.OptKeyCurrencies)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to read cached catalog: %w", err)
	}

	var cached map[string]domain.Currency
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.LogWarn(ctx, "Cached catalog is unparseable, treating as empty", slog.String("error", err.Error()))
		return nil, time.Time{}, nil
	}

	rawTS, err := s.optionRepo.GetOption(ctx, portsrepo.OptKeyCurrenciesFetched)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return cached, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to read catalog timestamp: %w", err)
	}
	epoch, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		s.LogWarn(ctx, "Catalog timestamp is unparseable, forcing refresh", slog.String("value", rawTS))
		return cached, time.Time{}, nil
	}

	return cached, time.Unix(epoch, 0), nil
}

// refresh fetches the reference metadata and the rate service's supported
// code listing, merges them, and writes the result back to the options
// store. Codes the rate service quotes but the reference listing does not
// know are silently skipped.
func (s *CatalogService) refresh(ctx context.Context) (map[string]domain.Currency, error) {
	meta, err := s.metaSource.FetchCurrencyMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch currency metadata: %w", err)
	}

	codes, err := s.rateSource.ListCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate service currencies: %w", err)
	}

	merged := make(map[string]domain.Currency, len(codes))
	for _, code := range codes {
		if currency, ok := meta[code]; ok {
			merged[code] = currency
		}
	}

	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := s.optionRepo.SetOption(ctx, portsrepo.OptKeyCurrencies, string(payload)); err != nil {
		// The merged catalog is still good for this request even when the
		// write fails; the next request retries the write.
		s.LogError(ctx, err, "Failed to persist refreshed catalog")
		return merged, nil
	}
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.optionRepo.SetOption(ctx, portsrepo.OptKeyCurrenciesFetched, ts); err != nil {
		s.LogError(ctx, err, "Failed to persist catalog timestamp")
		return merged, nil
	}

	s.LogInfo(ctx, "Currency catalog refreshed", slog.Int("currencies", len(merged)))
	return merged, nil
}

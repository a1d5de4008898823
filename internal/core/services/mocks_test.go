package services_test

import (
	"context"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock OptionRepository ---
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) GetOption(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockOptionRepository) SetOption(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// fakeOptionRepo is a map-backed option store for round-trip tests.
type fakeOptionRepo struct {
	options map[string]string
}

func newFakeOptionRepo() *fakeOptionRepo {
	return &fakeOptionRepo{options: make(map[string]string)}
}

func (f *fakeOptionRepo) GetOption(_ context.Context, key string) (string, error) {
	value, ok := f.options[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

func (f *fakeOptionRepo) SetOption(_ context.Context, key string, value string) error {
	f.options[key] = value
	return nil
}

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRates(ctx context.Context, base string, symbols []string) (*domain.RateSet, error) {
	args := m.Called(ctx, base, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSet), args.Error(1)
}

func (m *MockRateSource) ListCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock MetadataSource ---
type MockMetadataSource struct {
	mock.Mock
}

func (m *MockMetadataSource) FetchCurrencyMeta(ctx context.Context) (map[string]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Currency), args.Error(1)
}

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetCurrencies(ctx context.Context) (map[string]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Currency), args.Error(1)
}

func (m *MockCatalogService) GetAllowedCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRates(ctx context.Context, base string, symbols []string) (*domain.RateSet, error) {
	args := m.Called(ctx, base, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSet), args.Error(1)
}

// --- Mock ResolverService ---
type MockResolverService struct {
	mock.Mock
}

func (m *MockResolverService) Resolve(ctx context.Context, override string, sessionCode string) (domain.SelectedCurrency, bool, error) {
	args := m.Called(ctx, override, sessionCode)
	return args.Get(0).(domain.SelectedCurrency), args.Bool(1), args.Error(2)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Rates(ctx context.Context) (*domain.RateSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSet), args.Error(1)
}

// ratesFor builds a RateSet for tests.
func ratesFor(base string, rates map[string]string) *domain.RateSet {
	parsed := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		parsed[code] = decimal.RequireFromString(rate)
	}
	return &domain.RateSet{Base: base, Rates: parsed}
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
	portssvc "github.com/mresults/fxconvert/internal/core/ports/services"
	"github.com/mresults/fxconvert/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// Exercises the request scope through a real service container, with only
// the stores and remote sources mocked.
type RequestScopeTestSuite struct {
	suite.Suite
	mockRepo *MockOptionRepository
	mockRate *MockRateSource
	mockMeta *MockMetadataSource
	settings domain.Settings
}

func (suite *RequestScopeTestSuite) SetupTest() {
	suite.mockRepo = new(MockOptionRepository)
	suite.mockRate = new(MockRateSource)
	suite.mockMeta = new(MockMetadataSource)
	suite.settings = domain.Settings{
		AllowedCurrencies: []string{"AUD", "USD", "GBP"},
		DefaultCurrency:   "AUD",
		BaseCurrency:      "AUD",
		ShowCurrencyCode:  domain.ShowCodeNever,
	}
}

func (suite *RequestScopeTestSuite) newScope() portssvc.RenderScope {
	repos := portsrepo.RepositoryProvider{OptionRepo: suite.mockRepo}
	container := services.NewServiceContainer(suite.settings, repos, suite.mockRate, suite.mockMeta)
	return container.Scopes.NewScope()
}

// expectFreshCatalog arranges exactly one cached-catalog read.
func (suite *RequestScopeTestSuite) expectFreshCatalog() {
	suite.mockRepo.On("GetOption", mock.Anything, portsrepo.OptKeyCurrencies).
		Return(marshalCatalog(suite.T(), testCatalog()), nil).Once()
	suite.mockRepo.On("GetOption", mock.Anything, portsrepo.OptKeyCurrenciesFetched).
		Return(epochString(time.Now().Add(-time.Hour)), nil).Once()
}

// --- Test Cases ---

func (suite *RequestScopeTestSuite) TestAllowedCurrencies_MemoizedWithinScope() {
	ctx := context.Background()
	suite.expectFreshCatalog()

	scope := suite.newScope()

	first, err := scope.AllowedCurrencies(ctx)
	suite.Require().NoError(err)
	second, err := scope.AllowedCurrencies(ctx)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	// .Once() on the option reads proves the second call hit the memo.
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RequestScopeTestSuite) TestConvert_OneRateFetchPerScope() {
	ctx := context.Background()
	suite.expectFreshCatalog()
	suite.mockRate.On("FetchRates", mock.Anything, "AUD", []string{"AUD", "USD", "GBP"}).
		Return(ratesFor("AUD", map[string]string{"USD": "0.70", "GBP": "0.55"}), nil).Once()

	scope := suite.newScope()

	first, err := scope.Convert(ctx, decimal.RequireFromString("1234.5"), usd)
	suite.Require().NoError(err)
	suite.Equal("$864.15", first.Formatted)

	second, err := scope.Convert(ctx, decimal.NewFromInt(100), gbp)
	suite.Require().NoError(err)
	suite.Equal("£55.00", second.Formatted)

	suite.mockRate.AssertExpectations(suite.T())
}

func (suite *RequestScopeTestSuite) TestConvert_FailedFetchNotRetriedWithinScope() {
	ctx := context.Background()
	suite.expectFreshCatalog()
	suite.mockRate.On("FetchRates", mock.Anything, "AUD", mock.Anything).
		Return(nil, apperrors.ErrRemoteFetch).Once()

	scope := suite.newScope()

	first, err := scope.Convert(ctx, decimal.RequireFromString("1234.5"), usd)
	suite.Require().NoError(err)
	suite.True(first.Unconverted)
	suite.Equal("1,234.50", first.Formatted)

	second, err := scope.Convert(ctx, decimal.NewFromInt(5), gbp)
	suite.Require().NoError(err)
	suite.True(second.Unconverted)

	suite.mockRate.AssertExpectations(suite.T())
}

func (suite *RequestScopeTestSuite) TestSelected_MemoizedWithinScope() {
	ctx := context.Background()
	suite.expectFreshCatalog()

	scope := suite.newScope()

	first, persist, err := scope.Selected(ctx, "USD", "GBP")
	suite.Require().NoError(err)
	suite.Equal("USD", first.Currency.Code)
	suite.True(persist)

	second, persist, err := scope.Selected(ctx, "USD", "GBP")
	suite.Require().NoError(err)
	suite.Equal(first, second)
	suite.True(persist)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestRequestScopeTestSuite(t *testing.T) {
	suite.Run(t, new(RequestScopeTestSuite))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	portssvc "github.com/mresults/fxconvert/internal/core/ports/services"
	"github.com/mresults/fxconvert/internal/utils"
	"github.com/shopspring/decimal"
)

// ConversionService converts values from the configured base currency into
// a target currency and applies the display formatting rules. All arithmetic
// stays in decimal; two decimal places are canonical on output.
type ConversionService struct {
	BaseService
	settings domain.Settings
}

// NewConversionService creates a new ConversionService.
func NewConversionService(settings domain.Settings) *ConversionService {
	return &ConversionService{settings: settings}
}

// Convert converts value into target using the rates supplied by the
// provider. When target is the base currency no rate lookup happens at all.
// When the rate fetch fails the original value is passed through formatted
// (plain number, no symbol) with Unconverted set, so a page render degrades
// instead of breaking.
func (s *ConversionService) Convert(ctx context.Context, rates portssvc.RateProvider, value decimal.Decimal, target domain.Currency) (domain.Conversion, error) {
	if target.Code == s.settings.BaseCurrency {
		return domain.Conversion{
			Formatted: utils.ComposeDisplay(target, s.settings.ShowCurrencyCode, value),
			Currency:  target,
		}, nil
	}

	rateSet, err := rates.Rates(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrRemoteFetch) || errors.Is(err, apperrors.ErrParse) {
			s.LogWarn(ctx, "Rate lookup failed, passing value through unconverted",
				slog.String("target", target.Code),
				slog.String("error", err.Error()))
			return domain.Conversion{
				Formatted:   utils.FormatAmount(value),
				Currency:    target,
				Unconverted: true,
			}, nil
		}
		return domain.Conversion{}, err
	}

	rate, ok := rateSet.Rate(target.Code)
	if !ok {
		return domain.Conversion{}, fmt.Errorf("%w: no rate for %s with base %s", apperrors.ErrUnknownCurrency, target.Code, rateSet.Base)
	}

	converted := value.Mul(rate)
	return domain.Conversion{
		Formatted: utils.ComposeDisplay(target, s.settings.ShowCurrencyCode, converted),
		Currency:  target,
	}, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	portsrepo "github.com/mresults/fxconvert/internal/core/ports/repositories"
)

// SettingsService loads operator settings from the external options store.
// Missing keys fall back per-key to the built-in defaults; settings are read
// once per process at startup.
type SettingsService struct {
	BaseService
	optionRepo portsrepo.OptionRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(optionRepo portsrepo.OptionRepository) *SettingsService {
	return &SettingsService{optionRepo: optionRepo}
}

// Load reads the operator settings from the options store.
func (s *SettingsService) Load(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if raw, err := s.getOptional(ctx, portsrepo.OptKeyAllowedCurrencies); err != nil {
		return domain.Settings{}, err
	} else if raw != "" {
		var allowed []string
		if err := json.Unmarshal([]byte(raw), &allowed); err != nil {
			return domain.Settings{}, fmt.Errorf("%w: allowed_currencies option: %v", apperrors.ErrParse, err)
		}
		if len(allowed) > 0 {
			settings.AllowedCurrencies = allowed
		}
	}

	if raw, err := s.getOptional(ctx, portsrepo.OptKeyDefaultCurrency); err != nil {
		return domain.Settings{}, err
	} else if raw != "" {
		settings.DefaultCurrency = raw
	}

	if raw, err := s.getOptional(ctx, portsrepo.OptKeyBaseCurrency); err != nil {
		return domain.Settings{}, err
	} else if raw != "" {
		settings.BaseCurrency = raw
	}

	if raw, err := s.getOptional(ctx, portsrepo.OptKeyShowCurrencyCode); err != nil {
		return domain.Settings{}, err
	} else if raw != "" {
		switch mode := domain.ShowCodeMode(raw); mode {
		case domain.ShowCodeNever, domain.ShowCodeNoSymbol, domain.ShowCodeAlways:
			settings.ShowCurrencyCode = mode
		default:
			s.LogWarn(ctx, "Ignoring unrecognised show_currency_code option", slog.String("value", raw))
		}
	}

	return settings, nil
}

// EnsureDefaults seeds every missing operator key with its built-in default.
// Run once at startup so a fresh deployment is usable before the operator
// configures anything.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	defaults := domain.DefaultSettings()

	allowedJSON, err := json.Marshal(defaults.AllowedCurrencies)
	if err != nil {
		return fmt.Errorf("failed to marshal default allowed currencies: %w", err)
	}

	seed := map[string]string{
		portsrepo.OptKeyAllowedCurrencies: string(allowedJSON),
		portsrepo.OptKeyDefaultCurrency:   defaults.DefaultCurrency,
		portsrepo.OptKeyBaseCurrency:      defaults.BaseCurrency,
		portsrepo.OptKeyShowCurrencyCode:  string(defaults.ShowCurrencyCode),
	}

	for key, value := range seed {
		_, err := s.optionRepo.GetOption(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to read option %s: %w", key, err)
		}
		if err := s.optionRepo.SetOption(ctx, key, value); err != nil {
			return fmt.Errorf("failed to seed option %s: %w", key, err)
		}
		s.LogInfo(ctx, "Seeded default option", slog.String("key", key))
	}
	return nil
}

// getOptional reads an option, translating an unset key into "".
func (s *SettingsService) getOptional(ctx context.Context, key string) (string, error) {
	value, err := s.optionRepo.GetOption(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read option %s: %w", key, err)
	}
	return value, nil
}

package repositories

import "context"

// Option keys recognised by the core. The catalog cache and the operator
// settings share one key-value options store, mirroring how the settings
// backend exposes them.
const (
	OptKeyAllowedCurrencies = "allowed_currencies"
	OptKeyDefaultCurrency   = "default_currency"
	OptKeyBaseCurrency      = "base_currency"
	OptKeyShowCurrencyCode  = "show_currency_code"
	OptKeyCurrencies        = "currencies"
	OptKeyCurrenciesFetched = "currencies_timestamp"
)

// OptionRepository defines the key-value persistence contract for operator
// settings and the cached currency catalog.
type OptionRepository interface {
	// GetOption returns the stored value for key, or apperrors.ErrNotFound
	// when the key has never been written.
	GetOption(ctx context.Context, key string) (string, error)

	// SetOption inserts or overwrites the value for key.
	SetOption(ctx context.Context, key string, value string) error
}

package domain

import "time"

// ShowCodeMode controls when the currency code is rendered alongside a
// converted value.
type ShowCodeMode string

const (
	ShowCodeNever    ShowCodeMode = "never"
	ShowCodeNoSymbol ShowCodeMode = "nosymbol" // only when the currency has no symbol
	ShowCodeAlways   ShowCodeMode = "always"
)

// CatalogTTL is how long the cached currency catalog stays fresh before the
// next access triggers a refetch.
const CatalogTTL = 30 * 24 * time.Hour

// Settings are the operator-configured knobs, loaded from the options store
// once per process.
type Settings struct {
	AllowedCurrencies []string     `json:"allowedCurrencies"` // ordered allow-list of codes
	DefaultCurrency   string       `json:"defaultCurrency"`
	BaseCurrency      string       `json:"baseCurrency"`
	ShowCurrencyCode  ShowCodeMode `json:"showCurrencyCode"`
}

// DefaultSettings are used for any key missing from the options store.
func DefaultSettings() Settings {
	return Settings{
		AllowedCurrencies: []string{"AUD", "USD", "GBP", "PHP"},
		DefaultCurrency:   "AUD",
		BaseCurrency:      "AUD",
		ShowCurrencyCode:  ShowCodeNever,
	}
}

// IsAllowed reports whether the given code is on the configured allow-list.
func (s Settings) IsAllowed(code string) bool {
	for _, allowed := range s.AllowedCurrencies {
		if allowed == code {
			return true
		}
	}
	return false
}

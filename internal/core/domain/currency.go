package domain

// Currency represents a single currency known to the catalog.
// This is the primary representation used by services; internal APIs pass
// Currency values around, never bare code strings.
type Currency struct {
	Code   string `json:"code"`   // ISO 4217 code (e.g. "USD")
	Name   string `json:"name"`   // e.g. "US Dollar"
	Symbol string `json:"symbol"` // e.g. "$", may be empty
}

// Source records which precedence level produced a selected currency.
type Source string

const (
	SourceOverride Source = "override" // explicit request parameter
	SourceSession  Source = "session"  // previously stored visitor choice
	SourceDefault  Source = "default"  // operator-configured default
)

// SelectedCurrency is the currency resolved for the current visitor,
// together with the precedence level that produced it.
type SelectedCurrency struct {
	Currency Currency `json:"currency"`
	Source   Source   `json:"source"`
}

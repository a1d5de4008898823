package utils

import (
	"strings"

	"github.com/mresults/fxconvert/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount formats a monetary amount to two decimal places with comma
// thousands separators, rounding half away from zero.
// Example: 1234.5 returns "1,234.50"; -1234567.891 returns "-1,234,567.89".
// Two places are canonical for display regardless of the currency's natural
// precision.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// ComposeDisplay renders the final display string for a converted amount:
// the currency symbol, then the currency code when the show-code mode asks
// for it, then the formatted number.
func ComposeDisplay(currency domain.Currency, mode domain.ShowCodeMode, amount decimal.Decimal) string {
	showCode := false
	switch mode {
	case domain.ShowCodeAlways:
		showCode = true
	case domain.ShowCodeNoSymbol:
		showCode = currency.Symbol == ""
	}

	var b strings.Builder
	b.WriteString(currency.Symbol)
	if showCode {
		b.WriteString(currency.Code)
	}
	b.WriteString(FormatAmount(amount))
	return b.String()
}

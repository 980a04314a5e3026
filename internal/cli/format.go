// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"sente/internal/money"
)

// currencyLabel prefixes every rendered money value.
var currencyLabel = "UGX"

// SetCurrency overrides the currency label, usually from config.
func SetCurrency(label string) {
	label = strings.TrimSpace(label)
	if label != "" {
		currencyLabel = label
	}
}

// Currency returns the active currency label.
func Currency() string {
	return currencyLabel
}

// FormatMoney renders an amount with the currency label,
// e.g. "UGX 40,000.00".
func FormatMoney(a money.Amount) string {
	return currencyLabel + " " + a.String()
}

// FormatUnits renders a kWh reading without trailing zeros.
// e.g., 185 -> "185 kWh", 12.5 -> "12.5 kWh"
func FormatUnits(units float64) string {
	return strconv.FormatFloat(units, 'f', -1, 64) + " kWh"
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ParseAmount parses a non-negative money amount from untrusted input.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative")
	}
	return amount, nil
}

// CoercePercent parses a percentage from untrusted input. Non-numeric
// and negative values coerce to zero; values above 100 clamp to 100.
func CoercePercent(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero
	}
	percent, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return ClampPercent(percent)
}

// ClampPercent bounds an already-parsed percentage to [0, 100].
func ClampPercent(percent decimal.Decimal) decimal.Decimal {
	if percent.IsNegative() {
		return decimal.Zero
	}
	if percent.GreaterThan(oneHundred) {
		return oneHundred
	}
	return percent
}

// Round2 applies the single authoritative rounding to two decimal places.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Format renders an amount with exactly two fractional digits for display.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

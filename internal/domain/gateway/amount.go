package gateway

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CentsToAmount renders integer cents as a dollar amount with two fraction digits.
func CentsToAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// AmountToCents parses a dollar amount into integer cents. Amounts with more
// than two fraction digits are rejected rather than rounded.
func AmountToCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two fraction digits", amount)
	}
	return cents.IntPart(), nil
}

// Package core holds the contract ledger domain model: record and settings
// types, the normalization rules applied to form and seed input, and the
// monthly summary computation.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary amount that may use either a dot or a comma
// as the decimal separator (seed data mixes both conventions). The first
// comma is rewritten to a dot, then the string is parsed as an exact
// decimal. Empty, unparseable, or negative input yields ErrInvalidAmount.
// Thousands separators are not handled.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Package money converts between user-facing decimal amount strings and the
// cent values stored in the database. All arithmetic elsewhere is done on
// cents; decimals exist only at the edges.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a string is not a positive decimal amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseCents parses a decimal amount string ("12.34") into cents, rounding
// half-up past two decimal places. The amount must be strictly positive.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	cents := d.Round(2).Shift(2).IntPart()
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// FormatCents renders cents as a decimal string with exactly two places.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// Package money normalizes locale formatted currency tokens.
//
// The format is fixed to a single locale: comma as a thousands separator,
// dot as a decimal separator, "R"/"ZAR" currency markers.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberFormatError indicates a token that is not a valid currency amount
type NumberFormatError struct {
	Token string
	cause error
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("invalid currency token: %q", e.Token)
}

// Cause returns an underlying parse error
func (e *NumberFormatError) Cause() error {
	return e.cause
}

var tokenCleaner = strings.NewReplacer(
	" ", "",
	" ", "",
	",", "",
	"ZAR", "",
	"R", "",
)

// ParseAmount converts a currency token to a decimal value.
// Empty or missing token yields zero
func ParseAmount(token string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	// A marker with no digits left is not an amount
	value, err := decimal.NewFromString(tokenCleaner.Replace(trimmed))
	if err != nil {
		return decimal.Zero, &NumberFormatError{Token: token, cause: err}
	}
	return value, nil
}

// FormatAmount renders a value as a plain token with two decimal places
func FormatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

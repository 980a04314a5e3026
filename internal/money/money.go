// Package money represents currency amounts as integer cents.
//
// Budget comparisons need exact equality (spent == budget is a distinct
// state from over or under), so amounts are never held as floats.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformed is returned by Parse for input that is not a number.
var ErrMalformed = errors.New("malformed amount")

// Amount is a currency value in cents.
type Amount int64

// maxParseWhole guards the whole-part multiplication in Parse.
const maxParseWhole = (1<<63 - 1) / 100

// Parse converts user-typed text to an Amount.
//
// Thousands-separator commas are accepted ("40,000" and "40000" parse the
// same), a single leading minus is allowed, and at most two decimal places
// are kept with half-up rounding applied to a third. Range validation
// (non-negative budgets, positive transaction values) is the caller's rule
// to enforce; Parse only rejects text that is not a number.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if whole == "" {
		whole = "0"
	}
	for _, r := range whole {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
	}
	for _, r := range frac {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
	}

	wv, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if wv > maxParseWhole {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformed, s)
	}

	// First two fractional digits are kept; a third rounds half-up.
	var fracCents int64
	if len(frac) > 0 {
		fracCents = int64(frac[0]-'0') * 10
		if len(frac) > 1 {
			fracCents += int64(frac[1] - '0')
			if len(frac) > 2 && frac[2] >= '5' {
				fracCents++
			}
		}
	}

	// wv*100 cannot overflow here, but adding the cents still can when
	// the whole part sits exactly at the guard boundary.
	if fracCents > math.MaxInt64-wv*100 {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformed, s)
	}

	cents := wv*100 + fracCents
	if neg {
		cents = -cents
	}
	return Amount(cents), nil
}

// FromShillings converts a float shilling value to an Amount,
// rounding to the nearest cent.
func FromShillings(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// Shillings returns the amount as a float for display-side math.
// Keep calculations in cents; this is a boundary conversion only.
func (a Amount) Shillings() float64 {
	return float64(a) / 100.0
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount { return a + b }

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount { return a - b }

// Abs returns the absolute value.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool { return a < 0 }

// IsPositive reports whether the amount is above zero.
func (a Amount) IsPositive() bool { return a > 0 }

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool { return a == 0 }

// String renders the amount with comma-grouped whole shillings and two
// decimal places, e.g. 123456789 cents -> "1,234,567.89".
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, groupDigits(cents/100), cents%100)
}

// groupDigits adds comma separators to a non-negative integer.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

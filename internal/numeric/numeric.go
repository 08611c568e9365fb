package numeric

import (
	"connector/pkg/exception"

	"github.com/shopspring/decimal"
)

// DefaultScale is the number of fractional digits kept by Div when the caller has no better scale.
const DefaultScale int32 = 18

// Decimal values are carried as plain strings. The empty string is the undefined value: every
// operation that receives an undefined (or unparsable) operand returns the undefined value.

func parse(s string) (decimal.Decimal, bool) {
	if len(s) == 0 {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

func parse2(a, b string) (decimal.Decimal, decimal.Decimal, bool) {
	x, ok := parse(a)
	if !ok {
		return x, decimal.Zero, false
	}

	y, ok := parse(b)
	if !ok {
		return x, y, false
	}

	return x, y, true
}

// Valid reports whether s is a defined decimal string.
func Valid(s string) bool {
	_, ok := parse(s)
	return ok
}

// Normalize returns the canonical form of s ("1.500" -> "1.5", "1e3" -> "1000").
func Normalize(s string) string {
	d, ok := parse(s)
	if !ok {
		return ""
	}

	return d.String()
}

// FromInt converts an integer into a decimal string.
func FromInt(n int64) string {
	return decimal.NewFromInt(n).String()
}

func Add(a, b string) string {
	x, y, ok := parse2(a, b)
	if !ok {
		return ""
	}

	return x.Add(y).String()
}

func Sub(a, b string) string {
	x, y, ok := parse2(a, b)
	if !ok {
		return ""
	}

	return x.Sub(y).String()
}

func Mul(a, b string) string {
	x, y, ok := parse2(a, b)
	if !ok {
		return ""
	}

	return x.Mul(y).String()
}

// Div divides a by b keeping scale fractional digits. Extra digits are truncated toward zero,
// never rounded. A zero divisor returns exception.ErrDivisionByZero.
func Div(a, b string, scale int32) (string, error) {
	x, y, ok := parse2(a, b)
	if !ok {
		return "", nil
	}

	if y.IsZero() {
		return "", exception.ErrDivisionByZero
	}

	if scale < 0 {
		scale = 0
	}

	q, _ := x.QuoRem(y, scale)
	return q.String(), nil
}

func Abs(a string) string {
	x, ok := parse(a)
	if !ok {
		return ""
	}

	return x.Abs().String()
}

func Neg(a string) string {
	x, ok := parse(a)
	if !ok {
		return ""
	}

	return x.Neg().String()
}

// Compare returns -1, 0 or 1. ok is false when either operand is undefined.
func Compare(a, b string) (cmp int, ok bool) {
	x, y, ok := parse2(a, b)
	if !ok {
		return 0, false
	}

	return x.Cmp(y), true
}

// Equal reports numeric equality of two defined values.
func Equal(a, b string) bool {
	cmp, ok := Compare(a, b)
	return ok && cmp == 0
}

// Min returns the smaller operand. An undefined operand yields the other one.
func Min(a, b string) string {
	cmp, ok := Compare(a, b)
	if !ok {
		return pickDefined(a, b)
	}

	if cmp <= 0 {
		return Normalize(a)
	}

	return Normalize(b)
}

// Max returns the larger operand. An undefined operand yields the other one.
func Max(a, b string) string {
	cmp, ok := Compare(a, b)
	if !ok {
		return pickDefined(a, b)
	}

	if cmp >= 0 {
		return Normalize(a)
	}

	return Normalize(b)
}

func pickDefined(a, b string) string {
	if Valid(a) {
		return Normalize(a)
	}

	return Normalize(b)
}

// Sign returns -1, 0 or 1; undefined values have sign 0.
func Sign(a string) int {
	x, ok := parse(a)
	if !ok {
		return 0
	}

	return x.Sign()
}

func IsZero(a string) bool {
	x, ok := parse(a)
	return ok && x.IsZero()
}

func IsPositive(a string) bool {
	return Sign(a) > 0
}

// OmitZero maps a defined zero to the undefined value. Venues use "0" as "not set" in many fields.
func OmitZero(a string) string {
	x, ok := parse(a)
	if !ok || x.IsZero() {
		return ""
	}

	return x.String()
}

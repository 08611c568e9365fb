package numeric

import "github.com/shopspring/decimal"

// StepFromDigits converts a digit count into a step value: 4 -> "0.0001", 0 -> "1".
func StepFromDigits(digits int) string {
	return decimal.New(1, -int32(digits)).String()
}

// ToStep truncates value toward zero to a multiple of step. Quantities are always truncated so
// they never exceed what the caller asked for.
func ToStep(value, step string) string {
	v, s, ok := parse2(value, step)
	if !ok {
		return Normalize(value)
	}

	if s.Sign() <= 0 {
		return v.String()
	}

	q, _ := v.QuoRem(s, 0)
	return q.Mul(s).String()
}

// RoundToStep rounds value half away from zero to a multiple of step.
func RoundToStep(value, step string) string {
	v, s, ok := parse2(value, step)
	if !ok {
		return Normalize(value)
	}

	if s.Sign() <= 0 {
		return v.String()
	}

	return v.DivRound(s, 0).Mul(s).String()
}

package extract

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"connector/internal/numeric"
)

// Record is a decoded JSON object whose shape is only partially known.
type Record = map[string]any

// missing reports whether a value should be treated as "try the next key": JSON null and the
// empty string.
func missing(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return len(val) == 0
	case json.Number:
		return len(val) == 0
	default:
		return false
	}
}

// Extract returns the coerced value of the first key in keys that is present in rec, not null,
// not empty and coercible. The order of keys is the priority order. def is returned when no key
// qualifies. coerce reports false when a value cannot represent a T; such a value is skipped like
// a missing one.
func Extract[T any](rec Record, keys []string, coerce func(any) (T, bool), def T) T {
	if rec == nil {
		return def
	}

	for _, key := range keys {
		raw, ok := rec[key]
		if !ok || missing(raw) {
			continue
		}

		if val, ok := coerce(raw); ok {
			return val
		}
	}

	return def
}

// Has reports whether any key holds a non-missing value.
func Has(rec Record, keys ...string) bool {
	for _, key := range keys {
		if raw, ok := rec[key]; ok && !missing(raw) {
			return true
		}
	}

	return false
}

func String(rec Record, keys ...string) string {
	return Extract(rec, keys, AsString, "")
}

func StringOr(rec Record, def string, keys ...string) string {
	return Extract(rec, keys, AsString, def)
}

// Decimal returns a canonical decimal string, or "" when no key holds a number.
func Decimal(rec Record, keys ...string) string {
	return Extract(rec, keys, AsDecimal, "")
}

func DecimalOr(rec Record, def string, keys ...string) string {
	return Extract(rec, keys, AsDecimal, def)
}

func Int64(rec Record, keys ...string) int64 {
	return Extract(rec, keys, AsInt64, 0)
}

func Int64Or(rec Record, def int64, keys ...string) int64 {
	return Extract(rec, keys, AsInt64, def)
}

func Bool(rec Record, keys ...string) bool {
	return Extract(rec, keys, AsBool, false)
}

func BoolOr(rec Record, def bool, keys ...string) bool {
	return Extract(rec, keys, AsBool, def)
}

// Object returns the first nested object among keys, or nil.
func Object(rec Record, keys ...string) Record {
	return Extract[Record](rec, keys, AsRecord, nil)
}

// List returns the first array among keys, or nil.
func List(rec Record, keys ...string) []any {
	return Extract[[]any](rec, keys, AsList, nil)
}

// Path walks nested objects and returns the value at the end of path, or nil.
func Path(rec Record, path ...string) any {
	var cur any = rec
	for _, key := range path {
		obj, ok := cur.(Record)
		if !ok {
			return nil
		}

		cur = obj[key]
	}

	return cur
}

func AsString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}

// AsDecimal never routes through float arithmetic for strings and json.Number values. A float64
// only appears when a payload was decoded without UseNumber; it is formatted with the shortest
// exact representation before parsing.
func AsDecimal(v any) (string, bool) {
	var text string
	switch val := v.(type) {
	case string:
		text = strings.TrimSpace(val)
	case json.Number:
		text = val.String()
	case int:
		text = strconv.Itoa(val)
	case int64:
		text = strconv.FormatInt(val, 10)
	case float64:
		text = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return "", false
	}

	normalized := numeric.Normalize(text)
	return normalized, len(normalized) != 0
}

func AsInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, true
		}
		return parseIntegral(val.String())
	case string:
		return parseIntegral(strings.TrimSpace(val))
	case int:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		// 2^63 itself is not an int64; NaN fails both bounds
		if !(val >= math.MinInt64 && val < -math.MinInt64) || val != math.Trunc(val) {
			return 0, false
		}
		return int64(val), true
	default:
		return 0, false
	}
}

func parseIntegral(text string) (int64, bool) {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, true
	}

	// "1700000000000.0" and similar
	normalized := numeric.Normalize(text)
	if len(normalized) == 0 || strings.Contains(normalized, ".") {
		return 0, false
	}

	n, err := strconv.ParseInt(normalized, 10, 64)
	return n, err == nil
}

func AsBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
		return false, false
	case json.Number:
		n, ok := AsInt64(val)
		return n != 0, ok
	case int, int64, float64:
		n, ok := AsInt64(val)
		return n != 0, ok
	default:
		return false, false
	}
}

func AsRecord(v any) (Record, bool) {
	rec, ok := v.(Record)
	return rec, ok
}

func AsList(v any) ([]any, bool) {
	list, ok := v.([]any)
	return list, ok
}

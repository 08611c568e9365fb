package catalog

import (
	"strconv"
	"strings"
	"time"

	"connector/internal/errors"
	"connector/pkg/exception"
)

var months = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

func monthIndex(abbr string) (int, bool) {
	for i, m := range months {
		if m == abbr {
			return i + 1, true
		}
	}
	return 0, false
}

// EncodeDate converts a YYMMDD date into the compact option code: "231229" -> "29DEC23",
// "240105" -> "5JAN24". Days carry no zero padding.
func EncodeDate(yymmdd string) (string, error) {
	yy, mm, dd, err := splitYYMMDD(yymmdd)
	if err != nil {
		return "", err
	}

	return strconv.Itoa(dd) + months[mm-1] + yy, nil
}

// DecodeDate converts a compact option code into YYMMDD. Both "5JAN24" and "05JAN24" decode to
// "240105".
func DecodeDate(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 6 || len(code) > 7 {
		return "", errors.Wrapf(exception.ErrInvalidDateCode, "code: %q", code)
	}

	split := len(code) - 5
	day, err := strconv.Atoi(code[:split])
	if err != nil || day < 1 || day > 31 {
		return "", errors.Wrapf(exception.ErrInvalidDateCode, "day of code: %q", code)
	}

	month, ok := monthIndex(code[split : split+3])
	if !ok {
		return "", errors.Wrapf(exception.ErrInvalidDateCode, "month of code: %q", code)
	}

	yy := code[split+3:]
	if _, err := strconv.Atoi(yy); err != nil {
		return "", errors.Wrapf(exception.ErrInvalidDateCode, "year of code: %q", code)
	}

	yymmdd := yy + twoDigits(month) + twoDigits(day)
	if _, err := parseYYMMDD(yymmdd, 0); err != nil {
		return "", err
	}

	return yymmdd, nil
}

// ExpiryTime is the instant an instrument with the YYMMDD date expires, hour is UTC.
func ExpiryTime(yymmdd string, hour int) (time.Time, error) {
	return parseYYMMDD(yymmdd, hour)
}

// YYMMDD formats a millisecond timestamp as the date suffix used in derivative symbols.
func YYMMDD(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("060102")
}

// ISO8601 formats a millisecond timestamp the way canonical records carry datetimes.
func ISO8601(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}

func splitYYMMDD(yymmdd string) (yy string, mm, dd int, err error) {
	t, err := parseYYMMDD(yymmdd, 0)
	if err != nil {
		return "", 0, 0, err
	}

	return yymmdd[:2], int(t.Month()), t.Day(), nil
}

func parseYYMMDD(yymmdd string, hour int) (time.Time, error) {
	if len(yymmdd) != 6 {
		return time.Time{}, errors.Wrapf(exception.ErrInvalidDateCode, "date: %q", yymmdd)
	}

	t, err := time.Parse("060102", yymmdd)
	if err != nil {
		return time.Time{}, errors.Wrapf(exception.ErrInvalidDateCode, "date: %q", yymmdd)
	}

	return t.Add(time.Duration(hour) * time.Hour), nil
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

package catalog

import (
	"testing"
	"time"

	"connector/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateCodec(t *testing.T) {
	testCases := []struct {
		desc   string
		yymmdd string
		code   string
	}{
		{"december", "231229", "29DEC23"},
		{"single digit day", "240105", "5JAN24"},
		{"leap day", "240229", "29FEB24"},
		{"september", "250926", "26SEP25"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			code, err := EncodeDate(tc.yymmdd)
			require.NoError(t, err)
			assert.Equal(t, tc.code, code)

			yymmdd, err := DecodeDate(code)
			require.NoError(t, err)
			assert.Equal(t, tc.yymmdd, yymmdd)

			again, err := EncodeDate(yymmdd)
			require.NoError(t, err)
			assert.Equal(t, code, again)
		})
	}
}

func TestDecodeNonCanonicalCode(t *testing.T) {
	testCases := []struct {
		code      string
		yymmdd    string
		canonical string
	}{
		{"05JAN24", "240105", "5JAN24"},
		{"29dec23", "231229", "29DEC23"},
		{"09Sep25", "250909", "9SEP25"},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			yymmdd, err := DecodeDate(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.yymmdd, yymmdd)

			code, err := EncodeDate(yymmdd)
			require.NoError(t, err)
			assert.Equal(t, tc.canonical, code)
		})
	}
}

func TestDateCodecRejects(t *testing.T) {
	for _, code := range []string{"", "29XYZ23", "32DEC23", "30FEB24", "DEC23", "29DEC2023"} {
		_, err := DecodeDate(code)
		assert.ErrorIsf(t, err, exception.ErrInvalidDateCode, "code %q", code)
	}

	for _, date := range []string{"", "2312", "231332", "abcdef"} {
		_, err := EncodeDate(date)
		assert.ErrorIsf(t, err, exception.ErrInvalidDateCode, "date %q", date)
	}
}

func TestExpiryTime(t *testing.T) {
	expiry, err := ExpiryTime("231229", 8)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 29, 8, 0, 0, 0, time.UTC), expiry)
	assert.Equal(t, "231229", YYMMDD(expiry.UnixMilli()))
	assert.Equal(t, "2023-12-29T08:00:00.000Z", ISO8601(expiry.UnixMilli()))
}

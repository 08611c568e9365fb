package catalog

import (
	"strings"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/numeric"
	"connector/internal/ops"
	"connector/pkg/exception"
)

const optionQuoteID = "USD"

// optionID is the decoded form of BASE-DDMMMYY-STRIKE-C|P[-SETTLE].
type optionID struct {
	BaseID     string
	QuoteID    string
	SettleID   string
	ExpiryCode string
	Expiry     int64
	Strike     string
	OptionType enum.OptionType
}

// IsOptionID reports whether id has the dash-delimited option shape with a call/put marker.
func IsOptionID(id string) bool {
	parts := strings.Split(id, "-")
	if len(parts) != 4 && len(parts) != 5 {
		return false
	}

	return parts[3] == "C" || parts[3] == "P"
}

func parseOptionID(id string, opts ops.Options) (optionID, error) {
	if !IsOptionID(id) {
		return optionID{}, errors.Wrapf(exception.ErrInvalidOptionID, "id: %q", id)
	}

	parts := strings.Split(id, "-")
	yymmdd, err := DecodeDate(parts[1])
	if err != nil {
		return optionID{}, errors.Wrapf(err, "option id: %q", id)
	}

	expiry, err := ExpiryTime(yymmdd, opts.OptionExpiryHourUTC)
	if err != nil {
		return optionID{}, err
	}

	// "05JAN24" and "5jan24" name the same expiry as "5JAN24"
	code, err := EncodeDate(yymmdd)
	if err != nil {
		return optionID{}, err
	}

	strike := numeric.Normalize(parts[2])
	if len(strike) == 0 || len(parts[0]) == 0 {
		return optionID{}, errors.Wrapf(exception.ErrInvalidOptionID, "id: %q", id)
	}

	optionType, _ := enum.ParseOptionType(parts[3])
	parsed := optionID{
		BaseID:     parts[0],
		QuoteID:    optionQuoteID,
		SettleID:   opts.Stablecoin,
		ExpiryCode: code,
		Expiry:     expiry.UnixMilli(),
		Strike:     strike,
		OptionType: optionType,
	}

	if len(parts) == 5 {
		parsed.QuoteID = parts[4]
		parsed.SettleID = parts[4]
	}

	return parsed, nil
}

// Synthesize builds an inactive option market from its id alone. Precision and limits stay
// undefined. Equal ids always produce equal markets.
func Synthesize(id string, opts ops.Options) (adapter.Market, error) {
	parsed, err := parseOptionID(id, opts)
	if err != nil {
		return adapter.Market{}, err
	}

	base, quote, settle := CurrencyCode(parsed.BaseID), CurrencyCode(parsed.QuoteID), CurrencyCode(parsed.SettleID)
	return adapter.Market{
		ID:             id,
		Symbol:         optionSymbol(base, quote, settle, YYMMDD(parsed.Expiry), parsed.Strike, parsed.OptionType),
		Base:           base,
		Quote:          quote,
		Settle:         settle,
		BaseID:         parsed.BaseID,
		QuoteID:        parsed.QuoteID,
		SettleID:       parsed.SettleID,
		Kind:           enum.MarketKindOption,
		Active:         false,
		ContractSize:   "1",
		Expiry:         parsed.Expiry,
		ExpiryDatetime: ISO8601(parsed.Expiry),
		ExpiryCode:     parsed.ExpiryCode,
		Strike:         parsed.Strike,
		OptionType:     parsed.OptionType,
	}, nil
}

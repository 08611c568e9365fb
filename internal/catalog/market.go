package catalog

import (
	"strings"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/internal/ops"
	"connector/pkg/exception"
)

const statusTrading = "Trading"

// settleRule selects instruments whose wire settle coin does not name the real settlement asset.
type settleRule struct {
	kind      enum.MarketKind
	perpetual bool
	settleID  string
}

// settleRemap maps a rule to a config resolver for the real settle code.
var settleRemap = map[settleRule]func(ops.Options) string{
	{kind: enum.MarketKindLinear, perpetual: true, settleID: "USD"}: func(o ops.Options) string { return o.Stablecoin },
}

// MarketParser converts one instruments-info record into a market.
type MarketParser func(rec extract.Record, opts ops.Options) (adapter.Market, error)

var parsers = map[enum.MarketKind]MarketParser{
	enum.MarketKindSpot:    ParseSpot,
	enum.MarketKindLinear:  ParseLinear,
	enum.MarketKindInverse: ParseInverse,
	enum.MarketKindOption:  ParseOption,
}

// Parser returns the parser registered for kind.
func Parser(kind enum.MarketKind) (MarketParser, error) {
	parse, ok := parsers[kind]
	if !ok {
		return nil, errors.Wrapf(exception.ErrUnsupportedMarketKind, "kind: %d", kind)
	}
	return parse, nil
}

// ParseMarkets normalizes a list of instruments of one kind. Records that fail are reported and
// skipped.
func ParseMarkets(kind enum.MarketKind, items []any, opts ops.Options) ([]adapter.Market, []errors.RecordError, error) {
	parse, err := Parser(kind)
	if err != nil {
		return nil, nil, err
	}

	markets, failed := extract.Each(kind.String()+" market", items, func(rec extract.Record) (adapter.Market, error) {
		return parse(rec, opts)
	})
	return markets, failed, nil
}

func ParseSpot(rec extract.Record, opts ops.Options) (adapter.Market, error) {
	id := extract.String(rec, "symbol", "name")
	baseID := extract.String(rec, "baseCoin", "base_currency")
	quoteID := extract.String(rec, "quoteCoin", "quote_currency")
	if len(id) == 0 || len(baseID) == 0 || len(quoteID) == 0 {
		return adapter.Market{}, errors.Wrapf(exception.ErrMalformedResponse, "spot instrument %q", id)
	}

	lot := extract.Object(rec, "lotSizeFilter", "lot_size_filter")
	price := extract.Object(rec, "priceFilter", "price_filter")
	base, quote := CurrencyCode(baseID), CurrencyCode(quoteID)

	m := adapter.Market{
		ID:      id,
		Symbol:  adapter.SymbolParts{Base: base, Quote: quote}.String(),
		Base:    base,
		Quote:   quote,
		BaseID:  baseID,
		QuoteID: quoteID,
		Kind:    enum.MarketKindSpot,
		Active:  isTrading(rec),
		Precision: adapter.MarketPrecision{
			Amount: extract.Decimal(lot, "basePrecision", "qty_step", "qtyStep"),
			Price:  extract.Decimal(price, "tickSize", "tick_size"),
			Cost:   extract.Decimal(lot, "quotePrecision"),
		},
		Limits: adapter.MarketLimits{
			Amount: adapter.MinMax{
				Min: extract.Decimal(lot, "minOrderQty", "min_trading_qty"),
				Max: extract.Decimal(lot, "maxOrderQty", "max_trading_qty"),
			},
			Cost: adapter.MinMax{
				Min: extract.Decimal(lot, "minOrderAmt", "minNotionalValue"),
				Max: extract.Decimal(lot, "maxOrderAmt"),
			},
		},
	}
	applyFees(&m, rec, opts)

	return m, nil
}

func ParseLinear(rec extract.Record, opts ops.Options) (adapter.Market, error) {
	return parseContract(rec, enum.MarketKindLinear, opts)
}

func ParseInverse(rec extract.Record, opts ops.Options) (adapter.Market, error) {
	return parseContract(rec, enum.MarketKindInverse, opts)
}

func parseContract(rec extract.Record, kind enum.MarketKind, opts ops.Options) (adapter.Market, error) {
	id := extract.String(rec, "symbol", "name")
	baseID := extract.String(rec, "baseCoin", "base_currency")
	quoteID := extract.String(rec, "quoteCoin", "quote_currency")
	if len(id) == 0 || len(baseID) == 0 || len(quoteID) == 0 {
		return adapter.Market{}, errors.Wrapf(exception.ErrMalformedResponse, "%s instrument %q", kind, id)
	}

	base, quote := CurrencyCode(baseID), CurrencyCode(quoteID)
	lot := extract.Object(rec, "lotSizeFilter", "lot_size_filter")
	price := extract.Object(rec, "priceFilter", "price_filter")
	leverage := extract.Object(rec, "leverageFilter", "leverage_filter")

	expiry := extract.Int64(rec, "deliveryTime", "delivery_time")
	contractType := extract.String(rec, "contractType")
	perpetual := expiry == 0 || strings.HasSuffix(contractType, "Perpetual")
	if perpetual {
		expiry = 0
	}

	var settleID, settle, contractSize string
	switch kind {
	case enum.MarketKindInverse:
		settleID = extract.StringOr(rec, baseID, "settleCoin")
		settle = base
		contractSize = extract.Decimal(lot, "minOrderQty", "min_trading_qty")
	default:
		settleID = extract.StringOr(rec, quoteID, "settleCoin")
		settle = CurrencyCode(settleID)
		contractSize = "1"
	}

	if remap, ok := settleRemap[settleRule{kind: kind, perpetual: perpetual, settleID: settleID}]; ok {
		settle = remap(opts)
	}

	parts := adapter.SymbolParts{Base: base, Quote: quote, Settle: settle}
	m := adapter.Market{
		ID:           id,
		Base:         base,
		Quote:        quote,
		Settle:       settle,
		BaseID:       baseID,
		QuoteID:      quoteID,
		SettleID:     settleID,
		Kind:         kind,
		Active:       isTrading(rec),
		ContractSize: contractSize,
		Precision: adapter.MarketPrecision{
			Amount: extract.Decimal(lot, "qtyStep", "qty_step"),
			Price:  extract.Decimal(price, "tickSize", "tick_size"),
		},
		Limits: adapter.MarketLimits{
			Amount: adapter.MinMax{
				Min: extract.Decimal(lot, "minOrderQty", "min_trading_qty"),
				Max: extract.Decimal(lot, "maxOrderQty", "max_trading_qty"),
			},
			Price: adapter.MinMax{
				Min: extract.Decimal(price, "minPrice", "min_price"),
				Max: extract.Decimal(price, "maxPrice", "max_price"),
			},
			Cost: adapter.MinMax{
				Min: extract.Decimal(lot, "minNotionalValue"),
			},
			Leverage: adapter.MinMax{
				Min: extract.Decimal(leverage, "minLeverage", "min_leverage"),
				Max: extract.Decimal(leverage, "maxLeverage", "max_leverage"),
			},
		},
	}

	if expiry > 0 {
		parts.Expiry = YYMMDD(expiry)
		m.Expiry = expiry
		m.ExpiryDatetime = ISO8601(expiry)
	}
	m.Symbol = parts.String()
	applyFees(&m, rec, opts)

	return m, nil
}

// ParseOption reads option instruments. Strike and option type come from the dash-delimited id
// when the record does not carry them.
func ParseOption(rec extract.Record, opts ops.Options) (adapter.Market, error) {
	id := extract.String(rec, "symbol", "name")
	parsed, err := parseOptionID(id, opts)
	if err != nil {
		return adapter.Market{}, errors.Wrapf(exception.ErrMalformedResponse, "option instrument %q, err: %+v", id, err)
	}

	baseID := extract.StringOr(rec, parsed.BaseID, "baseCoin")
	quoteID := extract.StringOr(rec, parsed.QuoteID, "quoteCoin")
	settleID := extract.StringOr(rec, parsed.SettleID, "settleCoin")
	base, quote, settle := CurrencyCode(baseID), CurrencyCode(quoteID), CurrencyCode(settleID)

	optionType := parsed.OptionType
	if t, ok := enum.ParseOptionType(extract.String(rec, "optionsType")); ok {
		optionType = t
	}

	expiry := extract.Int64(rec, "deliveryTime")
	if expiry <= 0 {
		expiry = parsed.Expiry
	}

	lot := extract.Object(rec, "lotSizeFilter")
	price := extract.Object(rec, "priceFilter")

	m := adapter.Market{
		ID:             id,
		Symbol:         optionSymbol(base, quote, settle, YYMMDD(expiry), parsed.Strike, optionType),
		Base:           base,
		Quote:          quote,
		Settle:         settle,
		BaseID:         baseID,
		QuoteID:        quoteID,
		SettleID:       settleID,
		Kind:           enum.MarketKindOption,
		Active:         isTrading(rec),
		ContractSize:   "1",
		Expiry:         expiry,
		ExpiryDatetime: ISO8601(expiry),
		ExpiryCode:     parsed.ExpiryCode,
		Strike:         parsed.Strike,
		OptionType:     optionType,
		Precision: adapter.MarketPrecision{
			Amount: extract.Decimal(lot, "qtyStep"),
			Price:  extract.Decimal(price, "tickSize"),
		},
		Limits: adapter.MarketLimits{
			Amount: adapter.MinMax{
				Min: extract.Decimal(lot, "minOrderQty"),
				Max: extract.Decimal(lot, "maxOrderQty"),
			},
			Price: adapter.MinMax{
				Min: extract.Decimal(price, "minPrice"),
				Max: extract.Decimal(price, "maxPrice"),
			},
		},
	}
	applyFees(&m, rec, opts)

	return m, nil
}

func optionSymbol(base, quote, settle, yymmdd, strike string, t enum.OptionType) string {
	return adapter.SymbolParts{
		Base:       base,
		Quote:      quote,
		Settle:     settle,
		Expiry:     yymmdd,
		Strike:     strike,
		OptionType: t,
	}.String()
}

func isTrading(rec extract.Record) bool {
	return extract.String(rec, "status") == statusTrading
}

// applyFees keeps per-market fees when the venue reports them, else the configured defaults.
func applyFees(m *adapter.Market, rec extract.Record, opts ops.Options) {
	fee := opts.Fee(m.Kind)
	m.Taker = extract.DecimalOr(rec, numeric.Normalize(fee.Taker), "takerFee", "taker_fee")
	m.Maker = extract.DecimalOr(rec, numeric.Normalize(fee.Maker), "makerFee", "maker_fee")
}

// CurrencyCode maps venue coin ids to common codes.
func CurrencyCode(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	if code, ok := commonCurrencies[id]; ok {
		return code
	}
	return id
}

var commonCurrencies = map[string]string{
	"XBT": "BTC",
}

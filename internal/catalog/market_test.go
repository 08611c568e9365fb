package catalog

import (
	"testing"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/extract"
	"connector/internal/ops"
	"connector/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T) ops.Options {
	t.Helper()
	opts, err := ops.New(nil)
	require.NoError(t, err)
	return opts
}

func record(t *testing.T, payload string) extract.Record {
	t.Helper()
	rec, err := extract.DecodeRecord([]byte(payload))
	require.NoError(t, err)
	return rec
}

func TestParseSpot(t *testing.T) {
	rec := record(t, `{
		"symbol": "BTCUSDT", "baseCoin": "BTC", "quoteCoin": "USDT", "status": "Trading",
		"lotSizeFilter": {"basePrecision": "0.000001", "quotePrecision": "0.00000001", "minOrderQty": "0.000048", "maxOrderQty": "71.73956243", "minOrderAmt": "1", "maxOrderAmt": "2000000"},
		"priceFilter": {"tickSize": "0.01"}
	}`)

	m, err := ParseSpot(rec, testOptions(t))
	require.NoError(t, err)

	assert.Equal(t, "BTC/USDT", m.Symbol)
	assert.Equal(t, enum.MarketKindSpot, m.Kind)
	assert.Empty(t, m.Settle)
	assert.Empty(t, m.ContractSize)
	assert.True(t, m.Active)
	assert.Equal(t, "0.01", m.Precision.Price)
	assert.Equal(t, "0.000001", m.Precision.Amount)
	assert.Equal(t, "0.000048", m.Limits.Amount.Min)
	assert.Equal(t, "2000000", m.Limits.Cost.Max)
	assert.Equal(t, "0.001", m.Taker, "default fee when the venue omits it")
}

func TestParseSpotClassic(t *testing.T) {
	rec := record(t, `{
		"name": "ETHUSDT", "base_currency": "ETH", "quote_currency": "USDT", "status": "Trading",
		"taker_fee": "0.0012", "maker_fee": "0.0008",
		"lot_size_filter": {"qty_step": "0.0001", "min_trading_qty": "0.001"},
		"price_filter": {"tick_size": "0.05"}
	}`)

	m, err := ParseSpot(rec, testOptions(t))
	require.NoError(t, err)
	assert.Equal(t, "ETH/USDT", m.Symbol)
	assert.Equal(t, "0.05", m.Precision.Price)
	assert.Equal(t, "0.0001", m.Precision.Amount)
	assert.Equal(t, "0.0012", m.Taker)
	assert.Equal(t, "0.0008", m.Maker)
}

func TestMarketKeyPriority(t *testing.T) {
	testCases := []struct {
		desc     string
		parse    MarketParser
		payload  string
		field    func(adapter.Market) string
		expected string
	}{
		{
			desc:  "symbol before name",
			parse: ParseSpot,
			payload: `{"symbol": "BTCUSDT", "name": "ETHUSDT", "baseCoin": "BTC", "quoteCoin": "USDT",
				"priceFilter": {"tickSize": "0.01"}}`,
			field:    func(m adapter.Market) string { return m.ID },
			expected: "BTCUSDT",
		},
		{
			desc:  "tickSize before tick_size",
			parse: ParseSpot,
			payload: `{"symbol": "BTCUSDT", "baseCoin": "BTC", "quoteCoin": "USDT",
				"priceFilter": {"tickSize": "0.01", "tick_size": "0.5"}}`,
			field:    func(m adapter.Market) string { return m.Precision.Price },
			expected: "0.01",
		},
		{
			desc:  "baseCoin before base_currency",
			parse: ParseLinear,
			payload: `{"symbol": "BTCUSDT", "baseCoin": "BTC", "base_currency": "ETH", "quoteCoin": "USDT",
				"priceFilter": {"tickSize": "0.1"}}`,
			field:    func(m adapter.Market) string { return m.Base },
			expected: "BTC",
		},
		{
			desc:  "qtyStep before qty_step",
			parse: ParseLinear,
			payload: `{"symbol": "BTCUSDT", "baseCoin": "BTC", "quoteCoin": "USDT",
				"lotSizeFilter": {"qtyStep": "0.001", "qty_step": "1"}}`,
			field:    func(m adapter.Market) string { return m.Precision.Amount },
			expected: "0.001",
		},
		{
			desc:  "empty first spelling falls through",
			parse: ParseLinear,
			payload: `{"symbol": "BTCUSDT", "baseCoin": "BTC", "quoteCoin": "USDT",
				"priceFilter": {"tickSize": "", "tick_size": "0.5"}}`,
			field:    func(m adapter.Market) string { return m.Precision.Price },
			expected: "0.5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			m, err := tc.parse(record(t, tc.payload), testOptions(t))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tc.field(m))
		})
	}
}

func TestParseLinear(t *testing.T) {
	testCases := []struct {
		desc     string
		payload  string
		symbol   string
		settle   string
		expiry   int64
		settleID string
	}{
		{
			desc:     "usdt perpetual",
			payload:  `{"symbol": "BTCUSDT", "contractType": "LinearPerpetual", "status": "Trading", "baseCoin": "BTC", "quoteCoin": "USDT", "settleCoin": "USDT", "deliveryTime": "0"}`,
			symbol:   "BTC/USDT:USDT",
			settle:   "USDT",
			settleID: "USDT",
		},
		{
			desc:     "stable margined perpetual is remapped",
			payload:  `{"symbol": "BTCPERP", "contractType": "LinearPerpetual", "status": "Trading", "baseCoin": "BTC", "quoteCoin": "USD", "settleCoin": "USD", "deliveryTime": "0"}`,
			symbol:   "BTC/USD:USDC",
			settle:   "USDC",
			settleID: "USD",
		},
		{
			desc:     "dated future",
			payload:  `{"symbol": "BTC-29DEC23", "contractType": "LinearFutures", "status": "Trading", "baseCoin": "BTC", "quoteCoin": "USDC", "settleCoin": "USDC", "deliveryTime": "1703836800000"}`,
			symbol:   "BTC/USDC:USDC-231229",
			settle:   "USDC",
			expiry:   1703836800000,
			settleID: "USDC",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			m, err := ParseLinear(record(t, tc.payload), testOptions(t))
			require.NoError(t, err)
			assert.Equal(t, tc.symbol, m.Symbol)
			assert.Equal(t, tc.settle, m.Settle)
			assert.Equal(t, tc.settleID, m.SettleID)
			assert.Equal(t, tc.expiry, m.Expiry)
			assert.Equal(t, "1", m.ContractSize)
			assert.Equal(t, enum.MarketKindLinear, m.Kind)
		})
	}
}

func TestStableRemapFollowsConfig(t *testing.T) {
	opts, err := ops.New(map[string]any{ops.KeyStablecoin: "usdt"})
	require.NoError(t, err)

	rec := record(t, `{"symbol": "BTCPERP", "contractType": "LinearPerpetual", "baseCoin": "BTC", "quoteCoin": "USD", "settleCoin": "USD"}`)
	m, err := ParseLinear(rec, opts)
	require.NoError(t, err)
	assert.Equal(t, "USDT", m.Settle)
}

func TestParseInverse(t *testing.T) {
	rec := record(t, `{
		"symbol": "BTCUSD", "contractType": "InversePerpetual", "status": "Trading", "baseCoin": "BTC", "quoteCoin": "USD", "settleCoin": "BTC", "deliveryTime": "0",
		"lotSizeFilter": {"maxOrderQty": "1000000", "minOrderQty": "1", "qtyStep": "1"},
		"priceFilter": {"minPrice": "0.50", "maxPrice": "999999.00", "tickSize": "0.50"},
		"leverageFilter": {"minLeverage": "1", "maxLeverage": "100.00", "leverageStep": "0.01"}
	}`)

	m, err := ParseInverse(rec, testOptions(t))
	require.NoError(t, err)
	assert.Equal(t, "BTC/USD:BTC", m.Symbol)
	assert.Equal(t, "BTC", m.Settle)
	assert.Equal(t, "1", m.ContractSize)
	assert.Equal(t, "0.5", m.Precision.Price)
	assert.Equal(t, "100", m.Limits.Leverage.Max)
	assert.True(t, m.IsInverse())
}

func TestParseOption(t *testing.T) {
	rec := record(t, `{
		"symbol": "BTC-29DEC23-80000-C", "optionsType": "Call", "status": "Trading", "baseCoin": "BTC", "quoteCoin": "USD", "settleCoin": "USDC",
		"deliveryTime": "1703836800000",
		"priceFilter": {"minPrice": "5", "maxPrice": "10000000", "tickSize": "5"},
		"lotSizeFilter": {"maxOrderQty": "500", "minOrderQty": "0.01", "qtyStep": "0.01"}
	}`)

	m, err := ParseOption(rec, testOptions(t))
	require.NoError(t, err)
	assert.Equal(t, "BTC/USD:USDC-231229-80000-C", m.Symbol)
	assert.Equal(t, "80000", m.Strike)
	assert.Equal(t, enum.OptionTypeCall, m.OptionType)
	assert.Equal(t, "29DEC23", m.ExpiryCode)
	assert.Equal(t, int64(1703836800000), m.Expiry)
	assert.Equal(t, "5", m.Precision.Price)
	assert.True(t, m.Active)
}

func TestParseMarketsKeepsSiblings(t *testing.T) {
	items := []any{
		record(t, `{"symbol": "BTCUSDT", "baseCoin": "BTC", "quoteCoin": "USDT"}`),
		record(t, `{"symbol": "", "baseCoin": "ETH", "quoteCoin": "USDT"}`),
		record(t, `{"symbol": "ETHUSDT", "baseCoin": "ETH", "quoteCoin": "USDT"}`),
	}

	markets, failed, err := ParseMarkets(enum.MarketKindSpot, items, testOptions(t))
	require.NoError(t, err)
	assert.Len(t, markets, 2)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0], exception.ErrMalformedResponse)

	_, _, err = ParseMarkets(enum.MarketKind(0), items, testOptions(t))
	assert.ErrorIs(t, err, exception.ErrUnsupportedMarketKind)
}

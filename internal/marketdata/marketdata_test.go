package marketdata

import (
	"testing"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/extract"
	"connector/internal/ops"
	"connector/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	btcSpot = adapter.Market{ID: "BTCUSDT", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT", Kind: enum.MarketKindSpot}
	btcPerp = adapter.Market{ID: "BTCUSDT", Symbol: "BTC/USDT:USDT", Base: "BTC", Quote: "USDT", Settle: "USDT", Kind: enum.MarketKindLinear, ContractSize: "1"}
	btcInv  = adapter.Market{ID: "BTCUSD", Symbol: "BTC/USD:BTC", Base: "BTC", Quote: "USD", Settle: "BTC", Kind: enum.MarketKindInverse, ContractSize: "1"}
)

func newNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	opts, err := ops.New(nil)
	require.NoError(t, err)
	return New(catalog.New([]adapter.Market{btcSpot, btcPerp, btcInv}, opts, nil))
}

func list(t *testing.T, payload string) []any {
	t.Helper()
	root, err := extract.DecodeRecord([]byte(payload))
	require.NoError(t, err)
	items, err := extract.ResultList(root)
	require.NoError(t, err)
	return items
}

func TestTickers(t *testing.T) {
	n := newNormalizer(t)
	items := list(t, `{"retCode": 0, "result": {"list": [
		{"symbol": "BTCUSDT", "bid1Price": "26000", "bid1Size": "1.5", "ask1Price": "26000.5", "ask1Size": "2", "lastPrice": "26000.5", "prevPrice24h": "25000", "price24hPcnt": "0.04002", "highPrice24h": "26500", "lowPrice24h": "24900", "turnover24h": "1000000", "volume24h": "40"},
		{"lastPrice": "1"},
		{"symbol": "ETHUSDT", "lastPrice": "1650", "prevPrice24h": "1500"}
	]}}`)

	tickers, failed := n.Tickers(enum.MarketKindSpot, items, 1700000000000)
	require.Len(t, tickers, 2)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0], exception.ErrMalformedResponse)

	btc := tickers[0]
	assert.Equal(t, "BTC/USDT", btc.Symbol)
	assert.Equal(t, int64(1700000000000), btc.Timestamp)
	assert.Equal(t, "1000.5", btc.Change)
	assert.Equal(t, "4.002", btc.Percentage)
	assert.Equal(t, "40", btc.BaseVolume)
	assert.Equal(t, "1000000", btc.QuoteVolume)

	eth := tickers[1]
	assert.Equal(t, "ETHUSDT", eth.Symbol, "unknown ids keep the venue id")
	assert.Equal(t, "10", eth.Percentage)
}

func TestInverseTickerVolumes(t *testing.T) {
	n := newNormalizer(t)
	items := list(t, `{"retCode": 0, "result": {"list": [{"symbol": "BTCUSD", "lastPrice": "26000", "turnover24h": "12.5", "volume24h": "325000", "markPrice": "26001", "indexPrice": "26002"}]}}`)

	tickers, failed := n.Tickers(enum.MarketKindInverse, items, 0)
	require.Empty(t, failed)
	assert.Equal(t, "12.5", tickers[0].BaseVolume)
	assert.Equal(t, "325000", tickers[0].QuoteVolume)
	assert.Equal(t, "26001", tickers[0].MarkPrice)
}

func TestTrades(t *testing.T) {
	n := newNormalizer(t)

	testCases := []struct {
		desc        string
		kind        enum.MarketKind
		payload     string
		feeCurrency string
		cost        string
		maker       enum.TakerOrMaker
	}{
		{
			desc:        "spot buy pays fee in base",
			kind:        enum.MarketKindSpot,
			payload:     `{"symbol": "BTCUSDT", "execId": "e1", "orderId": "o1", "side": "Buy", "execPrice": "26000", "execQty": "0.1", "execFee": "0.0001", "feeRate": "0.001", "isMaker": false, "execTime": "1700000000000"}`,
			feeCurrency: "BTC",
			cost:        "2600",
			maker:       enum.TakerOrMakerTaker,
		},
		{
			desc:        "spot buy rebate in quote",
			kind:        enum.MarketKindSpot,
			payload:     `{"symbol": "BTCUSDT", "execId": "e2", "side": "Buy", "execPrice": "26000", "execQty": "0.1", "execFee": "-0.5", "isMaker": true}`,
			feeCurrency: "USDT",
			cost:        "2600",
			maker:       enum.TakerOrMakerMaker,
		},
		{
			desc:        "spot sell pays fee in quote",
			kind:        enum.MarketKindSpot,
			payload:     `{"symbol": "BTCUSDT", "execId": "e3", "side": "Sell", "execPrice": "26000", "execQty": "0.1", "execFee": "2.6"}`,
			feeCurrency: "USDT",
			cost:        "2600",
		},
		{
			desc:        "linear pays in settle",
			kind:        enum.MarketKindLinear,
			payload:     `{"symbol": "BTCUSDT", "execId": "e4", "side": "Sell", "execPrice": "26000", "execQty": "0.1", "execValue": "2600", "execFee": "1.43"}`,
			feeCurrency: "USDT",
			cost:        "2600",
		},
		{
			desc:        "inverse pays in base",
			kind:        enum.MarketKindInverse,
			payload:     `{"symbol": "BTCUSD", "execId": "e5", "side": "Buy", "execPrice": "26000", "execQty": "100", "execValue": "0.00384615", "execFee": "0.0000021"}`,
			feeCurrency: "BTC",
			cost:        "0.00384615",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			rec, err := extract.DecodeRecord([]byte(tc.payload))
			require.NoError(t, err)

			tr, err := n.Trade(tc.kind, rec)
			require.NoError(t, err)
			assert.Equal(t, tc.feeCurrency, tr.Fee.Currency)
			assert.Equal(t, tc.cost, tr.Cost)
			assert.Equal(t, tc.maker, tr.TakerOrMaker)
		})
	}
}

func TestPublicTradeWithoutFee(t *testing.T) {
	n := newNormalizer(t)
	items := list(t, `{"retCode": 0, "result": {"list": [
		{"execId": "1", "symbol": "BTCUSDT", "price": "26000", "size": "0.002", "side": "Sell", "time": "1700000000001"},
		{"execId": "2", "symbol": "BTCUSDT", "price": "26000", "size": "0.002", "side": "Hold"}
	]}}`)

	trades, failed := n.Trades(enum.MarketKindSpot, items)
	require.Len(t, trades, 1)
	require.Len(t, failed, 1)
	assert.Equal(t, adapter.Fee{}, trades[0].Fee)
	assert.Equal(t, "52", trades[0].Cost)
	assert.Equal(t, int64(1700000000001), trades[0].Timestamp)
}

func TestOHLCV(t *testing.T) {
	n := newNormalizer(t)
	rows := list(t, `{"retCode": 0, "result": {"list": [
		["1700000060000", "2", "3", "1", "2.5", "10", "25"],
		["1700000000000", "1", "2", "0.5", "2", "20", "30"],
		["broken"]
	]}}`)

	candles, failed := n.OHLCVs(btcPerp, rows)
	require.Len(t, candles, 2)
	require.Len(t, failed, 1)
	assert.Equal(t, int64(1700000000000), candles[0].Timestamp, "oldest first")
	assert.Equal(t, "20", candles[0].Volume)

	inverse, _ := n.OHLCVs(btcInv, rows)
	assert.Equal(t, "30", inverse[0].Volume, "inverse volume is turnover")
}

func TestOpenInterest(t *testing.T) {
	n := newNormalizer(t)
	items := list(t, `{"retCode": 0, "result": {"list": [{"openInterest": "461134384.00", "timestamp": "1669571400000"}]}}`)

	linear, _ := n.OpenInterests(btcPerp, items)
	require.Len(t, linear, 1)
	assert.Equal(t, "461134384", linear[0].Amount)
	assert.Empty(t, linear[0].Value)

	inverse, _ := n.OpenInterests(btcInv, items)
	assert.Equal(t, "461134384", inverse[0].Value)
	assert.Empty(t, inverse[0].Amount)
}

func TestGreeksOfExpiredOption(t *testing.T) {
	n := newNormalizer(t)
	items := list(t, `{"retCode": 0, "result": {"list": [{"symbol": "BTC-29DEC23-80000-C", "delta": "0.01", "gamma": "0.00001", "vega": "1.2", "theta": "-3.4", "markIv": "0.55", "underlyingPrice": "42000"}]}}`)

	greeks, failed := n.Greeks(items, 1700000000000)
	require.Empty(t, failed)
	assert.Equal(t, "BTC/USD:USDC-231229-80000-C", greeks[0].Symbol)
	assert.Equal(t, "-3.4", greeks[0].Theta)
	assert.Equal(t, "0.55", greeks[0].MarkImpliedVolatility)
}

func TestFundingRates(t *testing.T) {
	n := newNormalizer(t)
	current := list(t, `{"retCode": 0, "result": {"list": [{"symbol": "BTCUSDT", "fundingRate": "0.0001", "nextFundingTime": "1700006400000", "markPrice": "26000"}]}}`)

	rates, failed := n.FundingRates(enum.MarketKindLinear, current, 1700000000000)
	require.Empty(t, failed)
	assert.Equal(t, "BTC/USDT:USDT", rates[0].Symbol)
	assert.Equal(t, int64(1700006400000), rates[0].NextFundingTimestamp)

	history := list(t, `{"retCode": 0, "result": {"list": [{"symbol": "BTCUSDT", "fundingRate": "-0.00005", "fundingRateTimestamp": "1700000000000"}, {"symbol": "BTCUSDT"}]}}`)
	past, failed := n.FundingRateHistory(enum.MarketKindLinear, history)
	require.Len(t, past, 1)
	require.Len(t, failed, 1)
	assert.Equal(t, "-0.00005", past[0].FundingRate)
}

package position

import (
	"testing"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/internal/ops"
	"connector/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	linearUSDT = adapter.Market{
		ID: "BTCUSDT", Symbol: "BTC/USDT:USDT", Base: "BTC", Quote: "USDT", Settle: "USDT", Kind: enum.MarketKindLinear, ContractSize: "1",
		Precision: adapter.MarketPrecision{Amount: "0.001", Price: "0.1"},
		Limits:    adapter.MarketLimits{Leverage: adapter.MinMax{Min: "1", Max: "100"}},
	}
	linearUSDC = adapter.Market{
		ID: "BTCPERP", Symbol: "BTC/USD:USDC", Base: "BTC", Quote: "USD", Settle: "USDC", Kind: enum.MarketKindLinear, ContractSize: "1",
	}
	inverseBTC = adapter.Market{
		ID: "BTCUSD", Symbol: "BTC/USD:BTC", Base: "BTC", Quote: "USD", Settle: "BTC", Kind: enum.MarketKindInverse, ContractSize: "1",
	}
	optionUSDC = adapter.Market{
		ID: "BTC-29DEC23-80000-C", Symbol: "BTC/USD:USDC-231229-80000-C", Base: "BTC", Quote: "USD", Settle: "USDC",
		Kind: enum.MarketKindOption, ContractSize: "1", OptionType: enum.OptionTypeCall, Strike: "80000",
	}
	optionUSDT = adapter.Market{
		ID: "BTC-29DEC23-80000-C-USDT", Symbol: "BTC/USDT:USDT-231229-80000-C", Base: "BTC", Quote: "USDT", Settle: "USDT",
		Kind: enum.MarketKindOption, ContractSize: "1", OptionType: enum.OptionTypeCall, Strike: "80000",
	}
	spotBTC = adapter.Market{ID: "BTCUSDT", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT", Kind: enum.MarketKindSpot}
)

func testOptions(t *testing.T, caller map[string]any) ops.Options {
	t.Helper()
	opts, err := ops.New(caller)
	require.NoError(t, err)
	return opts
}

func TestLinearReconstruction(t *testing.T) {
	opts := testOptions(t, nil)
	g, err := Reconstruct(SettlementLinear, MarginInputs{
		EntryPrice:       "1000",
		LiquidationPrice: "900",
		BustPrice:        "890",
		Size:             "10",
		Leverage:         "10",
	}, opts)
	require.NoError(t, err)

	assert.True(t, numeric.Equal("100", g.MaintenanceMargin), g.MaintenanceMargin)
	assert.True(t, numeric.Equal("1000", g.InitialMargin), g.InitialMargin)
	assert.Equal(t, "1100", g.Collateral)
	assert.Equal(t, "0.0909", g.MarginRatio)
}

func TestInverseReconstruction(t *testing.T) {
	opts := testOptions(t, nil)
	g, err := Reconstruct(SettlementInverse, MarginInputs{
		EntryPrice:       "20000",
		LiquidationPrice: "19000",
		BustPrice:        "18900",
		Size:             "1",
		Leverage:         "20",
	}, opts)
	require.NoError(t, err)

	reference, err := numeric.Div(numeric.Mul("1", numeric.Abs(numeric.Sub("18900", "19000"))), numeric.Mul("18900", "19000"), opts.DivisionScale)
	require.NoError(t, err)
	assert.Equal(t, reference, g.MaintenanceMargin)
	assert.Equal(t, "0.000000278473962684", g.MaintenanceMargin)
	assert.Equal(t, "0.0000025", g.InitialMargin)
	assert.Equal(t, "0.000002910052910052", g.Collateral)
	assert.Equal(t, "0.0956", g.MarginRatio)
}

func TestStableReconstruction(t *testing.T) {
	opts := testOptions(t, nil)
	g, err := Reconstruct(SettlementStable, MarginInputs{
		EntryPrice:        "30000",
		LiquidationPrice:  "27000",
		Size:              "0.5",
		Leverage:          "10",
		MaintenanceMargin: "75",
		UnrealizedPnl:     "-20",
	}, opts)
	require.NoError(t, err)

	assert.Equal(t, "1555", g.Collateral)
	assert.Equal(t, "1500", g.InitialMargin)
	assert.Equal(t, "75", g.MaintenanceMargin)
	assert.Equal(t, "0.0482", g.MarginRatio)
}

func TestReportedMarginsAreKept(t *testing.T) {
	opts := testOptions(t, nil)
	g, err := Reconstruct(SettlementLinear, MarginInputs{
		EntryPrice:        "1000",
		BustPrice:         "890",
		Size:              "10",
		InitialMargin:     "1001.5",
		MaintenanceMargin: "55",
	}, opts)
	require.NoError(t, err)
	assert.Equal(t, Margins{InitialMargin: "1001.5", MaintenanceMargin: "55", Collateral: "1100", MarginRatio: "0.05"}, g)
}

func TestNoPartialDerivation(t *testing.T) {
	full := MarginInputs{EntryPrice: "1000", LiquidationPrice: "900", BustPrice: "890", Size: "10", Leverage: "10"}

	testCases := []struct {
		desc       string
		settlement Settlement
		mutate     func(*MarginInputs)
	}{
		{"linear without bust", SettlementLinear, func(in *MarginInputs) { in.BustPrice = "" }},
		{"linear without leverage", SettlementLinear, func(in *MarginInputs) { in.Leverage = "" }},
		{"linear zero leverage", SettlementLinear, func(in *MarginInputs) { in.Leverage = "0" }},
		{"inverse without liquidation", SettlementInverse, func(in *MarginInputs) { in.LiquidationPrice = "" }},
		{"inverse without leverage", SettlementInverse, func(in *MarginInputs) { in.Leverage = "" }},
		{"stable without reported maintenance", SettlementStable, func(in *MarginInputs) { in.UnrealizedPnl = "0" }},
		{"stable without pnl", SettlementStable, func(in *MarginInputs) { in.MaintenanceMargin = "1" }},
		{"empty position", SettlementLinear, func(in *MarginInputs) { in.Size = "0" }},
		{"reported margins without collateral inputs", SettlementLinear, func(in *MarginInputs) {
			in.InitialMargin, in.MaintenanceMargin, in.BustPrice = "1", "1", ""
		}},
		{"unknown settlement", 0, func(in *MarginInputs) {}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			in := full
			tc.mutate(&in)

			g, err := Reconstruct(tc.settlement, in, testOptions(t, nil))
			assert.ErrorIs(t, err, exception.ErrAmbiguousDerivation)
			assert.Equal(t, Margins{}, g)
		})
	}
}

func TestSettlementOf(t *testing.T) {
	opts := testOptions(t, nil)
	assert.Equal(t, SettlementLinear, SettlementOf(linearUSDT, opts))
	assert.Equal(t, SettlementStable, SettlementOf(linearUSDC, opts))
	assert.Equal(t, SettlementInverse, SettlementOf(inverseBTC, opts))
	assert.False(t, SettlementOf(spotBTC, opts).IsAvailable())
	assert.Equal(t, SettlementStable, SettlementOf(optionUSDC, opts))
	assert.Equal(t, SettlementLinear, SettlementOf(optionUSDT, opts))

	usdt := testOptions(t, map[string]any{ops.KeyStablecoin: "USDT"})
	assert.Equal(t, SettlementStable, SettlementOf(linearUSDT, usdt))
}

func newNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return NewNormalizer(catalog.New([]adapter.Market{spotBTC, linearUSDT, linearUSDC, inverseBTC, optionUSDC}, testOptions(t, nil), nil))
}

func TestParsePositions(t *testing.T) {
	n := newNormalizer(t)
	root, err := extract.DecodeRecord([]byte(`{"retCode": 0, "result": {"list": [
		{"positionIdx": 0, "symbol": "BTCUSDT", "side": "Buy", "size": "10", "avgPrice": "1000", "positionValue": "10000", "tradeMode": 0,
		 "leverage": "10", "markPrice": "1010", "liqPrice": "900", "bustPrice": "890", "positionIM": "", "positionMM": "",
		 "takeProfit": "1200", "stopLoss": "0.00", "unrealisedPnl": "100", "cumRealisedPnl": "-5", "updatedTime": "1700000000000"},
		{"positionIdx": 2, "symbol": "BTCUSDT", "side": "Sell", "size": "1", "avgPrice": "1000", "leverage": "10", "tradeMode": 1, "unrealisedPnl": "0"},
		{"side": "Buy"}
	]}}`))
	require.NoError(t, err)
	items, err := extract.ResultList(root)
	require.NoError(t, err)

	positions, failed := n.Positions(enum.MarketKindLinear, items)
	require.Len(t, positions, 2)
	require.Len(t, failed, 1)

	long := positions[0]
	assert.Equal(t, "BTC/USDT:USDT", long.Symbol)
	assert.Equal(t, enum.PositionSideLong, long.Side)
	assert.Equal(t, enum.MarginModeCross, long.MarginMode)
	assert.False(t, long.Hedged)
	assert.Equal(t, "100", long.MaintenanceMargin)
	assert.Equal(t, "1000", long.InitialMargin)
	assert.Equal(t, "1100", long.Collateral)
	assert.Equal(t, "0.1", long.InitialMarginPercentage)
	assert.Equal(t, "0.01", long.MaintenanceMarginPercentage)
	assert.Equal(t, "1200", long.TakeProfitPrice)
	assert.Empty(t, long.StopLossPrice)

	short := positions[1]
	assert.Equal(t, enum.PositionSideShort, short.Side)
	assert.Equal(t, enum.MarginModeIsolated, short.MarginMode)
	assert.True(t, short.Hedged)
	assert.Empty(t, short.InitialMargin, "no liquidation data means no margin group")
	assert.Empty(t, short.MaintenanceMargin)
	assert.Empty(t, short.Collateral)
	assert.Empty(t, short.MarginRatio)
}

func TestParseStablePosition(t *testing.T) {
	n := newNormalizer(t)
	rec, err := extract.DecodeRecord([]byte(`{"symbol": "BTCPERP", "side": "Buy", "size": "0.5", "avgPrice": "30000", "leverage": "10",
		"liqPrice": "27000", "positionMM": "75", "unrealisedPnl": "-20"}`))
	require.NoError(t, err)

	p, err := n.Position(enum.MarketKindLinear, rec)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USD:USDC", p.Symbol)
	assert.Equal(t, "1555", p.Collateral)
	assert.Equal(t, "1500", p.InitialMargin)

	rec, err = extract.DecodeRecord([]byte(`{"symbol": "BTC-29DEC23-80000-C", "side": "Buy", "size": "2", "avgPrice": "1000",
		"liqPrice": "600", "positionIM": "300", "positionMM": "100", "unrealisedPnl": "50"}`))
	require.NoError(t, err)

	p, err = n.Position(enum.MarketKindOption, rec)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USD:USDC-231229-80000-C", p.Symbol)
	assert.Equal(t, "300", p.InitialMargin)
	assert.Equal(t, "100", p.MaintenanceMargin)
	assert.Equal(t, "950", p.Collateral, "stable collateral from entry, liquidation, maintenance and pnl")
}

func TestPositionKeyPriority(t *testing.T) {
	testCases := []struct {
		desc     string
		payload  string
		field    func(adapter.Position) string
		expected string
	}{
		{
			desc:     "avgPrice before entryPrice",
			payload:  `{"avgPrice": "1000", "entryPrice": "1100"}`,
			field:    func(p adapter.Position) string { return p.EntryPrice },
			expected: "1000",
		},
		{
			desc:     "entryPrice before entry_price",
			payload:  `{"entryPrice": "1100", "entry_price": "1200"}`,
			field:    func(p adapter.Position) string { return p.EntryPrice },
			expected: "1100",
		},
		{
			desc:     "liqPrice before liq_price",
			payload:  `{"liqPrice": "900", "liq_price": "800"}`,
			field:    func(p adapter.Position) string { return p.LiquidationPrice },
			expected: "900",
		},
		{
			desc:     "unrealisedPnl before unrealised_pnl",
			payload:  `{"unrealisedPnl": "10", "unrealised_pnl": "-10"}`,
			field:    func(p adapter.Position) string { return p.UnrealizedPnl },
			expected: "10",
		},
		{
			desc:     "empty first spelling falls through",
			payload:  `{"liqPrice": "", "liq_price": "800"}`,
			field:    func(p adapter.Position) string { return p.LiquidationPrice },
			expected: "800",
		},
	}

	n := newNormalizer(t)
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			rec, err := extract.DecodeRecord([]byte(tc.payload))
			require.NoError(t, err)
			rec["symbol"], rec["side"], rec["size"] = "BTCUSDT", "Buy", "1"

			p, err := n.Position(enum.MarketKindLinear, rec)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tc.field(p))
		})
	}
}

func newBuilder(t *testing.T, caller map[string]any) *Builder {
	t.Helper()
	opts := testOptions(t, caller)
	return NewBuilder(catalog.New([]adapter.Market{spotBTC, linearUSDT, inverseBTC}, opts, nil), opts)
}

func TestSetLeverage(t *testing.T) {
	b := newBuilder(t, nil)

	req, err := b.SetLeverage("BTC/USDT:USDT", "12.50")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"category": "linear", "symbol": "BTCUSDT", "buyLeverage": "12.5", "sellLeverage": "12.5"}, req.Params)

	_, err = b.SetLeverage("BTC/USDT:USDT", "125")
	assert.ErrorIs(t, err, exception.ErrPositionInvalidRequest)

	_, err = b.SetLeverage("BTC/USDT", "2")
	assert.ErrorIs(t, err, exception.ErrPositionInvalidRequest)

	_, err = b.SetLeverage("ETH/USDT:USDT", "2")
	assert.ErrorIs(t, err, exception.ErrMarketNotFound)
}

func TestSetMarginMode(t *testing.T) {
	req, err := newBuilder(t, nil).SetMarginMode("", enum.MarginModeIsolated, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"setMarginMode": "ISOLATED_MARGIN"}, req.Params)

	req, err = newBuilder(t, map[string]any{ops.KeyAccountGeneration: "classic"}).SetMarginMode("BTC/USD:BTC", enum.MarginModeIsolated, "5")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"category": "inverse", "symbol": "BTCUSD", "tradeMode": 1, "buyLeverage": "5", "sellLeverage": "5"}, req.Params)

	_, err = newBuilder(t, nil).SetMarginMode("", enum.MarginMode(0), "")
	assert.ErrorIs(t, err, exception.ErrPositionInvalidMode)
}

func TestSetPositionModeAndTradingStop(t *testing.T) {
	b := newBuilder(t, nil)

	req, err := b.SetPositionMode("BTC/USDT:USDT", true)
	require.NoError(t, err)
	assert.Equal(t, 3, req.Params["mode"])

	req, err = b.TradingStop("BTC/USDT:USDT", "28000.04", "", 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"category": "linear", "symbol": "BTCUSDT", "tpslMode": "Full", "positionIdx": 1, "takeProfit": "28000"}, req.Params)

	_, err = b.TradingStop("BTC/USDT:USDT", "", "", 0)
	assert.ErrorIs(t, err, exception.ErrPositionInvalidRequest)

	_, err = b.TradingStop("BTC/USDT:USDT", "1", "", 3)
	assert.ErrorIs(t, err, exception.ErrPositionInvalidRequest)
}

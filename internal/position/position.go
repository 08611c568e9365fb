package position

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/pkg/exception"
)

const percentageScale int32 = 8

// Normalizer turns position records into canonical positions and fills in the margin group.
type Normalizer struct {
	catalog *catalog.Catalog
}

func NewNormalizer(c *catalog.Catalog) *Normalizer {
	return &Normalizer{catalog: c}
}

func (n *Normalizer) Positions(kind enum.MarketKind, items []any) ([]adapter.Position, []errors.RecordError) {
	return extract.Each("position", items, func(rec extract.Record) (adapter.Position, error) {
		return n.Position(kind, rec)
	})
}

func (n *Normalizer) Position(kind enum.MarketKind, rec extract.Record) (adapter.Position, error) {
	marketID := extract.String(rec, "symbol")
	if len(marketID) == 0 {
		return adapter.Position{}, errors.Wrap(exception.ErrMalformedResponse, "position without symbol")
	}

	m := n.catalog.SafeMarket(kind, marketID)
	opts := n.catalog.Options()

	p := adapter.Position{
		Symbol:           m.Symbol,
		Contracts:        extract.DecimalOr(rec, "0", "size"),
		ContractSize:     m.ContractSize,
		EntryPrice:       numeric.OmitZero(extract.Decimal(rec, "avgPrice", "entryPrice", "entry_price")),
		MarkPrice:        numeric.OmitZero(extract.Decimal(rec, "markPrice", "mark_price")),
		Notional:         extract.Decimal(rec, "positionValue", "position_value"),
		Leverage:         numeric.OmitZero(extract.Decimal(rec, "leverage")),
		LiquidationPrice: numeric.OmitZero(extract.Decimal(rec, "liqPrice", "liq_price")),
		UnrealizedPnl:    extract.Decimal(rec, "unrealisedPnl", "unrealised_pnl"),
		RealizedPnl:      extract.Decimal(rec, "cumRealisedPnl", "cum_realised_pnl"),
		StopLossPrice:    numeric.OmitZero(extract.Decimal(rec, "stopLoss", "stop_loss")),
		TakeProfitPrice:  numeric.OmitZero(extract.Decimal(rec, "takeProfit", "take_profit")),
		Hedged:           extract.Int64(rec, "positionIdx", "position_idx") != 0,
		Timestamp:        extract.Int64(rec, "updatedTime", "updated_time", "createdTime"),
	}

	switch extract.String(rec, "side") {
	case "Buy":
		p.Side = enum.PositionSideLong
	case "Sell":
		p.Side = enum.PositionSideShort
	}

	if extract.Int64(rec, "tradeMode") == 1 || extract.Bool(rec, "is_isolated") {
		p.MarginMode = enum.MarginModeIsolated
	} else {
		p.MarginMode = enum.MarginModeCross
	}

	margins, err := Reconstruct(SettlementOf(m, opts), MarginInputs{
		EntryPrice:        p.EntryPrice,
		LiquidationPrice:  p.LiquidationPrice,
		BustPrice:         numeric.OmitZero(extract.Decimal(rec, "bustPrice", "bust_price")),
		Size:              p.Contracts,
		Leverage:          p.Leverage,
		InitialMargin:     numeric.OmitZero(extract.Decimal(rec, "positionIM", "position_im")),
		MaintenanceMargin: numeric.OmitZero(extract.Decimal(rec, "positionMM", "position_mm")),
		Collateral:        numeric.OmitZero(extract.Decimal(rec, "positionBalance", "position_margin")),
		UnrealizedPnl:     p.UnrealizedPnl,
	}, opts)
	if err == nil {
		p.InitialMargin = margins.InitialMargin
		p.MaintenanceMargin = margins.MaintenanceMargin
		p.Collateral = margins.Collateral
		p.MarginRatio = margins.MarginRatio
		p.InitialMarginPercentage = percentage(margins.InitialMargin, p.Notional)
		p.MaintenanceMarginPercentage = percentage(margins.MaintenanceMargin, p.Notional)
	}

	return p, nil
}

func percentage(part, whole string) string {
	ratio, err := numeric.Div(part, whole, percentageScale)
	if err != nil {
		return ""
	}
	return ratio
}

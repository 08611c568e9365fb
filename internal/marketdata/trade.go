package marketdata

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/internal/order"
	"connector/pkg/exception"
)

// Trades normalizes public trades and private executions. Both shapes share one parser; the
// execution fields win when present.
func (n *Normalizer) Trades(kind enum.MarketKind, items []any) ([]adapter.Trade, []errors.RecordError) {
	return extract.Each("trade", items, func(rec extract.Record) (adapter.Trade, error) {
		return n.Trade(kind, rec)
	})
}

func (n *Normalizer) Trade(kind enum.MarketKind, rec extract.Record) (adapter.Trade, error) {
	m, err := n.market(kind, rec)
	if err != nil {
		return adapter.Trade{}, err
	}

	id := extract.String(rec, "execId", "exec_id", "id", "tradeId")
	if len(id) == 0 {
		return adapter.Trade{}, errors.Wrapf(exception.ErrMalformedResponse, "trade of %s without id", m.ID)
	}

	side, ok := enum.ParseOrderSide(extract.String(rec, "side"))
	if !ok {
		return adapter.Trade{}, errors.Wrapf(exception.ErrMalformedResponse, "trade %s side", id)
	}

	price := extract.Decimal(rec, "execPrice", "exec_price", "price")
	amount := extract.Decimal(rec, "execQty", "exec_qty", "size", "qty")
	cost := extract.Decimal(rec, "execValue", "exec_value")
	if len(cost) == 0 && !m.IsInverse() {
		cost = numeric.Mul(numeric.Mul(price, amount), contractSize(m))
	}

	tr := adapter.Trade{
		ID:        id,
		Order:     extract.String(rec, "orderId", "order_id"),
		Symbol:    m.Symbol,
		Side:      side,
		Price:     price,
		Amount:    amount,
		Cost:      cost,
		Timestamp: extract.Int64(rec, "execTime", "exec_time", "time", "timestamp"),
		Fee: order.ParseFee(m, side,
			extract.Decimal(rec, "execFee", "exec_fee", "fee"),
			extract.Decimal(rec, "feeRate", "fee_rate")),
	}

	if orderType, ok := enum.ParseOrderType(extract.String(rec, "orderType", "order_type")); ok {
		tr.Type = orderType
	}

	if extract.Has(rec, "isMaker", "is_maker") {
		if extract.Bool(rec, "isMaker", "is_maker") {
			tr.TakerOrMaker = enum.TakerOrMakerMaker
		} else {
			tr.TakerOrMaker = enum.TakerOrMakerTaker
		}
	}

	return tr, nil
}

func contractSize(m adapter.Market) string {
	if len(m.ContractSize) == 0 {
		return "1"
	}
	return m.ContractSize
}

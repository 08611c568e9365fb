package ledger

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/pkg/exception"
)

// Settlements normalizes public delivery prices and private delivery records. Expired option ids
// resolve through the catalog and are synthesized when no longer listed.
func (n *Normalizer) Settlements(kind enum.MarketKind, items []any) ([]adapter.Settlement, []errors.RecordError) {
	return extract.Each("settlement", items, func(rec extract.Record) (adapter.Settlement, error) {
		return n.Settlement(kind, rec)
	})
}

func (n *Normalizer) Settlement(kind enum.MarketKind, rec extract.Record) (adapter.Settlement, error) {
	marketID := extract.String(rec, "symbol")
	price := extract.Decimal(rec, "deliveryPrice", "settlePrice")
	if len(marketID) == 0 || len(price) == 0 {
		return adapter.Settlement{}, errors.Wrapf(exception.ErrMalformedResponse, "settlement of %q", marketID)
	}

	m := n.catalog.SafeMarket(kind, marketID)
	return adapter.Settlement{
		Symbol:    m.Symbol,
		Price:     price,
		Side:      extract.String(rec, "side"),
		Size:      extract.Decimal(rec, "position", "size"),
		Pnl:       extract.Decimal(rec, "deliveryRpl"),
		Fee:       extract.Decimal(rec, "fee"),
		Timestamp: extract.Int64(rec, "deliveryTime", "settleTime"),
	}, nil
}

package marketdata

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/pkg/exception"
)

const percentScale int32 = 8

// Normalizer turns public market data records into canonical records. Unknown instrument ids
// resolve through the catalog, which synthesizes expired options.
type Normalizer struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Normalizer {
	return &Normalizer{catalog: c}
}

func (n *Normalizer) market(kind enum.MarketKind, rec extract.Record) (adapter.Market, error) {
	id := extract.String(rec, "symbol")
	if len(id) == 0 {
		return adapter.Market{}, errors.Wrap(exception.ErrMalformedResponse, "record without symbol")
	}

	return n.catalog.SafeMarket(kind, id), nil
}

// Tickers normalizes a tickers list. ts is the response time used when records carry none.
func (n *Normalizer) Tickers(kind enum.MarketKind, items []any, ts int64) ([]adapter.Ticker, []errors.RecordError) {
	return extract.Each("ticker", items, func(rec extract.Record) (adapter.Ticker, error) {
		return n.Ticker(kind, rec, ts)
	})
}

func (n *Normalizer) Ticker(kind enum.MarketKind, rec extract.Record, ts int64) (adapter.Ticker, error) {
	m, err := n.market(kind, rec)
	if err != nil {
		return adapter.Ticker{}, err
	}

	last := extract.Decimal(rec, "lastPrice", "last_price")
	open := extract.Decimal(rec, "prevPrice24h", "prev_price_24h")
	volume := extract.Decimal(rec, "volume24h", "volume_24h")
	turnover := extract.Decimal(rec, "turnover24h", "turnover_24h")

	t := adapter.Ticker{
		Symbol:     m.Symbol,
		Timestamp:  extract.Int64Or(rec, ts, "time", "timestamp"),
		High:       extract.Decimal(rec, "highPrice24h", "high_price_24h"),
		Low:        extract.Decimal(rec, "lowPrice24h", "low_price_24h"),
		Bid:        extract.Decimal(rec, "bid1Price", "bid_price"),
		BidVolume:  extract.Decimal(rec, "bid1Size", "bid_size"),
		Ask:        extract.Decimal(rec, "ask1Price", "ask_price"),
		AskVolume:  extract.Decimal(rec, "ask1Size", "ask_size"),
		Open:       open,
		Close:      last,
		Last:       last,
		Change:     numeric.Sub(last, open),
		MarkPrice:  extract.Decimal(rec, "markPrice", "mark_price"),
		IndexPrice: extract.Decimal(rec, "indexPrice", "index_price"),
	}

	// inverse contracts count volume in quote-denominated contracts and turnover in base
	if m.IsInverse() {
		t.BaseVolume, t.QuoteVolume = turnover, volume
	} else {
		t.BaseVolume, t.QuoteVolume = volume, turnover
	}

	if pcnt := extract.Decimal(rec, "price24hPcnt", "price_24h_pcnt"); len(pcnt) != 0 {
		t.Percentage = numeric.Mul(pcnt, "100")
	} else if numeric.Sign(open) != 0 {
		ratio, _ := numeric.Div(t.Change, open, percentScale)
		t.Percentage = numeric.Mul(ratio, "100")
	}

	return t, nil
}

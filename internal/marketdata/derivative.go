package marketdata

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/pkg/exception"
)

// OpenInterests normalizes open-interest history rows of one market. Linear rows count base
// units and inverse rows count quote value.
func (n *Normalizer) OpenInterests(m adapter.Market, items []any) ([]adapter.OpenInterest, []errors.RecordError) {
	return extract.Each("open interest", items, func(rec extract.Record) (adapter.OpenInterest, error) {
		return OpenInterest(m, rec)
	})
}

func OpenInterest(m adapter.Market, rec extract.Record) (adapter.OpenInterest, error) {
	value := extract.Decimal(rec, "openInterest", "open_interest")
	if len(value) == 0 {
		return adapter.OpenInterest{}, errors.Wrapf(exception.ErrMalformedResponse, "open interest of %s", m.ID)
	}

	oi := adapter.OpenInterest{
		Symbol:    m.Symbol,
		Timestamp: extract.Int64(rec, "timestamp", "time"),
	}
	if m.IsInverse() {
		oi.Value = value
	} else {
		oi.Amount = value
		oi.Value = extract.Decimal(rec, "openInterestValue")
	}

	return oi, nil
}

// Greeks reads option tickers.
func (n *Normalizer) Greeks(items []any, ts int64) ([]adapter.Greeks, []errors.RecordError) {
	return extract.Each("greeks", items, func(rec extract.Record) (adapter.Greeks, error) {
		m, err := n.market(enum.MarketKindOption, rec)
		if err != nil {
			return adapter.Greeks{}, err
		}

		return adapter.Greeks{
			Symbol:                m.Symbol,
			Timestamp:             extract.Int64Or(rec, ts, "time"),
			Delta:                 extract.Decimal(rec, "delta"),
			Gamma:                 extract.Decimal(rec, "gamma"),
			Theta:                 extract.Decimal(rec, "theta"),
			Vega:                  extract.Decimal(rec, "vega"),
			BidImpliedVolatility:  extract.Decimal(rec, "bid1Iv"),
			AskImpliedVolatility:  extract.Decimal(rec, "ask1Iv"),
			MarkImpliedVolatility: extract.Decimal(rec, "markIv"),
			BidPrice:              extract.Decimal(rec, "bid1Price"),
			AskPrice:              extract.Decimal(rec, "ask1Price"),
			MarkPrice:             extract.Decimal(rec, "markPrice"),
			LastPrice:             extract.Decimal(rec, "lastPrice"),
			UnderlyingPrice:       extract.Decimal(rec, "underlyingPrice"),
		}, nil
	})
}

// FundingRates reads current funding from derivative tickers.
func (n *Normalizer) FundingRates(kind enum.MarketKind, items []any, ts int64) ([]adapter.FundingRate, []errors.RecordError) {
	return extract.Each("funding rate", items, func(rec extract.Record) (adapter.FundingRate, error) {
		m, err := n.market(kind, rec)
		if err != nil {
			return adapter.FundingRate{}, err
		}

		return adapter.FundingRate{
			Symbol:               m.Symbol,
			FundingRate:          extract.Decimal(rec, "fundingRate", "funding_rate"),
			Timestamp:            ts,
			NextFundingTimestamp: extract.Int64(rec, "nextFundingTime", "next_funding_time"),
			MarkPrice:            extract.Decimal(rec, "markPrice", "mark_price"),
			IndexPrice:           extract.Decimal(rec, "indexPrice", "index_price"),
		}, nil
	})
}

// FundingRateHistory reads settled funding rows.
func (n *Normalizer) FundingRateHistory(kind enum.MarketKind, items []any) ([]adapter.FundingRate, []errors.RecordError) {
	return extract.Each("funding rate history", items, func(rec extract.Record) (adapter.FundingRate, error) {
		m, err := n.market(kind, rec)
		if err != nil {
			return adapter.FundingRate{}, err
		}

		rate := extract.Decimal(rec, "fundingRate", "funding_rate")
		if len(rate) == 0 {
			return adapter.FundingRate{}, errors.Wrapf(exception.ErrMalformedResponse, "funding of %s", m.ID)
		}

		return adapter.FundingRate{
			Symbol:      m.Symbol,
			FundingRate: rate,
			Timestamp:   extract.Int64(rec, "fundingRateTimestamp", "funding_rate_timestamp"),
		}, nil
	})
}

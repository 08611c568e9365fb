package main

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/ledger"
	"connector/internal/marketdata"
	"connector/internal/obs"
	"connector/internal/order"
	"connector/internal/position"
	"connector/pkg/exception"
)

// envelope is an unwrapped venue response plus what the normalizers need around it.
type envelope struct {
	catalog  *catalog.Catalog
	kind     enum.MarketKind
	result   extract.Record
	items    []any
	ts       int64
	marketID string
}

// market resolves the single market of per-market payloads such as klines.
func (e envelope) market() adapter.Market {
	id := extract.StringOr(e.result, e.marketID, "symbol")
	return e.catalog.SafeMarket(e.kind, id)
}

func normalize(t obs.RecordType, e envelope) (records any, normalized int, failed []errors.RecordError, err error) {
	switch t {
	case obs.RecordMarket:
		markets, failed, err := catalog.ParseMarkets(e.kind, e.items, e.catalog.Options())
		return markets, len(markets), failed, err
	case obs.RecordCurrency:
		currencies, failed := catalog.ParseCurrencies(e.items)
		return currencies, len(currencies), failed, nil
	case obs.RecordTicker:
		tickers, failed := marketdata.New(e.catalog).Tickers(e.kind, e.items, e.ts)
		return tickers, len(tickers), failed, nil
	case obs.RecordTrade:
		trades, failed := marketdata.New(e.catalog).Trades(e.kind, e.items)
		return trades, len(trades), failed, nil
	case obs.RecordOHLCV:
		candles, failed := marketdata.New(e.catalog).OHLCVs(e.market(), e.items)
		return candles, len(candles), failed, nil
	case obs.RecordOpenInterest:
		interests, failed := marketdata.New(e.catalog).OpenInterests(e.market(), e.items)
		return interests, len(interests), failed, nil
	case obs.RecordGreeks:
		greeks, failed := marketdata.New(e.catalog).Greeks(e.items, e.ts)
		return greeks, len(greeks), failed, nil
	case obs.RecordFundingRate:
		n := marketdata.New(e.catalog)
		if len(e.items) != 0 && extract.Has(firstRecord(e.items), "fundingRateTimestamp") {
			rates, failed := n.FundingRateHistory(e.kind, e.items)
			return rates, len(rates), failed, nil
		}
		rates, failed := n.FundingRates(e.kind, e.items, e.ts)
		return rates, len(rates), failed, nil
	case obs.RecordOrder:
		orders, failed := order.NewNormalizer(e.catalog).Orders(e.kind, e.items)
		return orders, len(orders), failed, nil
	case obs.RecordPosition:
		positions, failed := position.NewNormalizer(e.catalog).Positions(e.kind, e.items)
		return positions, len(positions), failed, nil
	case obs.RecordLedger:
		entries, failed := ledger.New(e.catalog).LedgerEntries(e.items)
		return entries, len(entries), failed, nil
	case obs.RecordTransfer:
		transfers, failed := ledger.New(e.catalog).Transfers(e.items)
		return transfers, len(transfers), failed, nil
	case obs.RecordSettlement:
		settlements, failed := ledger.New(e.catalog).Settlements(e.kind, e.items)
		return settlements, len(settlements), failed, nil
	case obs.RecordBorrowRate:
		rates, failed := ledger.BorrowRates(e.items, e.ts)
		return rates, len(rates), failed, nil
	case obs.RecordDepositWithdrawFee:
		fees, failed := ledger.DepositWithdrawFees(e.items)
		return fees, len(fees), failed, nil
	case obs.RecordBalance:
		balances, failed, err := ledger.Balances(e.result, e.ts)
		return balances, len(balances.Currencies), failed, err
	default:
		return nil, 0, nil, errors.Wrapf(exception.ErrArgumentUnsupported, "record type: %d", t)
	}
}

func firstRecord(items []any) extract.Record {
	rec, _ := extract.AsRecord(items[0])
	return rec
}

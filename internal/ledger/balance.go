package ledger

import (
	"sort"

	"connector/internal/adapter"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/pkg/exception"
)

// Balances normalizes a wallet-balance result. Three shapes are accepted:
//
//	unified          {"list": [{"accountType", "coin": [{"coin", "walletBalance", "locked", ...}]}]}
//	classic spot     {"balances": [{"coin", "free", "locked", "total"}]}
//	classic contract {"BTC": {"wallet_balance", "available_balance", "used_margin"}, ...}
func Balances(result extract.Record, ts int64) (adapter.Balances, []errors.RecordError, error) {
	if result == nil {
		return adapter.Balances{}, nil, errors.Wrap(exception.ErrMalformedResponse, "empty balance result")
	}

	b := adapter.Balances{
		Timestamp:  ts,
		Currencies: make(map[string]adapter.Balance),
	}

	var (
		parsed []adapter.Balance
		failed []errors.RecordError
	)

	switch {
	case extract.Has(result, "list"):
		accounts := extract.List(result, "list")
		if len(accounts) == 0 {
			return b, nil, nil
		}

		account, ok := extract.AsRecord(accounts[0])
		if !ok {
			return adapter.Balances{}, nil, errors.Wrap(exception.ErrMalformedResponse, "balance account is not an object")
		}

		b.Account = accountName(extract.String(account, "accountType"))
		parsed, failed = extract.Each("balance", extract.List(account, "coin"), unifiedBalance)
	case extract.Has(result, "balances"):
		b.Account = "spot"
		parsed, failed = extract.Each("balance", extract.List(result, "balances"), spotBalance)
	default:
		b.Account = "contract"
		parsed, failed = contractBalances(result)
	}

	for _, bal := range parsed {
		b.Currencies[bal.Currency] = bal
	}

	return b, failed, nil
}

// unifiedBalance: used is locked spot funds plus order and position initial margin.
func unifiedBalance(rec extract.Record) (adapter.Balance, error) {
	coin := extract.String(rec, "coin")
	total := extract.Decimal(rec, "walletBalance")
	if len(coin) == 0 || len(total) == 0 {
		return adapter.Balance{}, errors.Wrapf(exception.ErrMalformedResponse, "balance of %q", coin)
	}

	used := numeric.Add(
		numeric.Add(extract.DecimalOr(rec, "0", "locked"), extract.DecimalOr(rec, "0", "totalOrderIM")),
		extract.DecimalOr(rec, "0", "totalPositionIM"),
	)

	return adapter.Balance{
		Currency: catalog.CurrencyCode(coin),
		Free:     numeric.Sub(total, used),
		Used:     used,
		Total:    total,
		Debt:     numeric.OmitZero(extract.Decimal(rec, "borrowAmount")),
	}, nil
}

func spotBalance(rec extract.Record) (adapter.Balance, error) {
	coin := extract.String(rec, "coin")
	if len(coin) == 0 {
		return adapter.Balance{}, errors.Wrap(exception.ErrMalformedResponse, "balance without coin")
	}

	free := extract.Decimal(rec, "free")
	used := extract.Decimal(rec, "locked")
	total := extract.Decimal(rec, "total")
	if len(total) == 0 {
		total = numeric.Add(free, used)
	}

	return adapter.Balance{
		Currency: catalog.CurrencyCode(coin),
		Free:     free,
		Used:     used,
		Total:    total,
	}, nil
}

// contractBalances walks the coin-keyed classic contract wallet in coin order.
func contractBalances(result extract.Record) ([]adapter.Balance, []errors.RecordError) {
	coins := make([]string, 0, len(result))
	for coin := range result {
		coins = append(coins, coin)
	}
	sort.Strings(coins)

	items := make([]any, 0, len(coins))
	for _, coin := range coins {
		rec, ok := extract.AsRecord(result[coin])
		if !ok {
			items = append(items, result[coin])
			continue
		}

		withCoin := make(extract.Record, len(rec)+1)
		for k, v := range rec {
			withCoin[k] = v
		}
		withCoin["coin"] = coin
		items = append(items, withCoin)
	}

	return extract.Each("balance", items, func(rec extract.Record) (adapter.Balance, error) {
		coin := extract.String(rec, "coin")
		total := extract.Decimal(rec, "wallet_balance", "walletBalance")
		if len(total) == 0 {
			return adapter.Balance{}, errors.Wrapf(exception.ErrMalformedResponse, "balance of %q", coin)
		}

		free := extract.Decimal(rec, "available_balance", "availableBalance")
		used := extract.Decimal(rec, "used_margin", "usedMargin")
		if len(used) == 0 {
			used = numeric.Sub(total, free)
		}

		return adapter.Balance{
			Currency: catalog.CurrencyCode(coin),
			Free:     free,
			Used:     used,
			Total:    total,
		}, nil
	})
}

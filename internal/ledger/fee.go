package ledger

import (
	"time"

	"connector/internal/adapter"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/pkg/exception"
)

// borrowPeriod is the period of the venue's hourly borrow rate.
var borrowPeriod = time.Hour.Milliseconds()

// BorrowRates normalizes collateral-info rows. ts stamps every rate.
func BorrowRates(items []any, ts int64) ([]adapter.BorrowRate, []errors.RecordError) {
	return extract.Each("borrow rate", items, func(rec extract.Record) (adapter.BorrowRate, error) {
		currency := extract.String(rec, "currency", "coin")
		rate := extract.Decimal(rec, "hourlyBorrowRate", "hourly_borrow_rate")
		if len(currency) == 0 || len(rate) == 0 {
			return adapter.BorrowRate{}, errors.Wrapf(exception.ErrMalformedResponse, "borrow rate of %q", currency)
		}

		return adapter.BorrowRate{
			Currency:  catalog.CurrencyCode(currency),
			Rate:      rate,
			Period:    borrowPeriod,
			Timestamp: ts,
		}, nil
	})
}

// DepositWithdrawFees reads the chains of coin-info rows. The venue charges no deposit fee; a
// currency with a single chain also carries that chain's withdraw fee at the top level.
func DepositWithdrawFees(items []any) (map[string]adapter.DepositWithdrawFee, []errors.RecordError) {
	fees, failed := extract.Each("deposit withdraw fee", items, DepositWithdrawFee)

	out := make(map[string]adapter.DepositWithdrawFee, len(fees))
	for _, f := range fees {
		out[f.Currency] = f
	}

	return out, failed
}

func DepositWithdrawFee(rec extract.Record) (adapter.DepositWithdrawFee, error) {
	currency := extract.String(rec, "coin", "name")
	if len(currency) == 0 {
		return adapter.DepositWithdrawFee{}, errors.Wrap(exception.ErrMalformedResponse, "coin without id")
	}

	f := adapter.DepositWithdrawFee{
		Currency: catalog.CurrencyCode(currency),
		Networks: make(map[string]adapter.NetworkFee),
	}

	chains := extract.List(rec, "chains")
	for _, item := range chains {
		chain, ok := extract.AsRecord(item)
		if !ok {
			continue
		}

		network := extract.String(chain, "chain")
		if len(network) == 0 {
			continue
		}

		f.Networks[network] = adapter.NetworkFee{
			Withdraw: withdrawFee(chain),
			Deposit:  adapter.FeeSchedule{Fee: "0"},
		}
	}

	if len(f.Networks) == 1 {
		for _, nf := range f.Networks {
			f.Withdraw = nf.Withdraw
			f.Deposit = nf.Deposit
		}
	}

	return f, nil
}

// withdrawFee prefers a non-zero percentage fee over the fixed fee.
func withdrawFee(chain extract.Record) adapter.FeeSchedule {
	if pct := numeric.OmitZero(extract.Decimal(chain, "withdrawPercentageFee")); len(pct) != 0 {
		return adapter.FeeSchedule{Fee: pct, Percentage: true}
	}
	return adapter.FeeSchedule{Fee: extract.Decimal(chain, "withdrawFee")}
}

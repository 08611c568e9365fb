package order

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/numeric"
)

// FeeCurrency infers the currency a fee was charged in. On spot a positive fee on a buy is taken
// from the received base and a rebate is paid in quote; sells mirror that. Contracts charge in the
// settle currency, which for inverse contracts is the base.
func FeeCurrency(m adapter.Market, side enum.OrderSide, fee string) string {
	if !m.IsSpot() {
		if m.IsInverse() {
			return m.Base
		}
		return m.Settle
	}

	positive := numeric.IsPositive(fee)
	switch side {
	case enum.OrderSideBuy:
		if positive {
			return m.Base
		}
		return m.Quote
	case enum.OrderSideSell:
		if positive {
			return m.Quote
		}
		return m.Base
	default:
		return ""
	}
}

// ParseFee builds a fee, leaving it empty when no cost is reported.
func ParseFee(m adapter.Market, side enum.OrderSide, cost, rate string) adapter.Fee {
	if len(cost) == 0 {
		return adapter.Fee{}
	}

	return adapter.Fee{
		Currency: FeeCurrency(m, side, cost),
		Cost:     cost,
		Rate:     rate,
	}
}

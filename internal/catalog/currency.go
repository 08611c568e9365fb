package catalog

import (
	"strconv"

	"connector/internal/adapter"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/pkg/exception"
)

// ParseCurrencies normalizes coin-info rows. A currency's precision is the smallest step among its
// networks, and it can deposit or withdraw when any network can.
func ParseCurrencies(items []any) (map[string]adapter.Currency, []errors.RecordError) {
	parsed, failed := extract.Each("currency", items, ParseCurrency)

	currencies := make(map[string]adapter.Currency, len(parsed))
	for _, c := range parsed {
		currencies[c.Code] = c
	}

	return currencies, failed
}

func ParseCurrency(rec extract.Record) (adapter.Currency, error) {
	id := extract.String(rec, "coin", "name")
	if len(id) == 0 {
		return adapter.Currency{}, errors.Wrap(exception.ErrMalformedResponse, "currency without coin")
	}

	c := adapter.Currency{
		ID:       id,
		Code:     CurrencyCode(id),
		Name:     extract.String(rec, "name"),
		Networks: make(map[string]adapter.NetworkInfo),
	}

	for _, raw := range extract.List(rec, "chains") {
		chain, ok := extract.AsRecord(raw)
		if !ok {
			continue
		}

		network := parseNetwork(chain)
		if len(network.Network) == 0 {
			continue
		}

		c.Networks[network.Network] = network
		c.Precision = numeric.Min(c.Precision, network.Precision)
		c.Deposit = c.Deposit || network.Deposit
		c.Withdraw = c.Withdraw || network.Withdraw
	}

	c.Active = c.Deposit && c.Withdraw
	return c, nil
}

func parseNetwork(chain extract.Record) adapter.NetworkInfo {
	var precision string
	if digits := extract.String(chain, "minAccuracy"); len(digits) != 0 {
		if n, err := strconv.Atoi(digits); err == nil && n >= 0 {
			precision = numeric.StepFromDigits(n)
		}
	}

	return adapter.NetworkInfo{
		ID:            extract.String(chain, "chain"),
		Network:       extract.String(chain, "chain", "chainType"),
		Precision:     precision,
		Deposit:       extract.Bool(chain, "chainDeposit"),
		Withdraw:      extract.Bool(chain, "chainWithdraw"),
		Fee:           extract.Decimal(chain, "withdrawFee"),
		FeePercentage: extract.Decimal(chain, "withdrawPercentageFee"),
		DepositMin:    extract.Decimal(chain, "depositMin"),
		WithdrawMin:   extract.Decimal(chain, "withdrawMin"),
		Confirmations: extract.Int64(chain, "confirmation"),
	}
}

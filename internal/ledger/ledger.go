package ledger

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/pkg/exception"
)

// Normalizer turns account history, transfer, settlement and wallet records into canonical ones.
type Normalizer struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Normalizer {
	return &Normalizer{catalog: c}
}

// entryTypes maps venue transaction types to canonical ledger entry types. Unknown types pass
// through unchanged.
var entryTypes = map[string]string{
	"TRADE":                 "trade",
	"SETTLEMENT":            "trade",
	"DELIVERY":              "trade",
	"LIQUIDATION":           "trade",
	"CURRENCY_BUY":          "trade",
	"CURRENCY_SELL":         "trade",
	"RealisedPNL":           "trade",
	"TRANSFER_IN":           "transfer",
	"TRANSFER_OUT":          "transfer",
	"INTEREST":              "transfer",
	"Deposit":               "transaction",
	"Withdraw":              "transaction",
	"ExchangeOrderDeposit":  "transaction",
	"ExchangeOrderWithdraw": "transaction",
	"BONUS":                 "prize",
	"Prize":                 "prize",
	"FEE_REFUND":            "cashback",
	"Refund":                "cashback",
	"Commission":            "fee",
}

func entryType(wire string) string {
	if t, ok := entryTypes[wire]; ok {
		return t
	}
	return wire
}

// LedgerEntries normalizes unified transaction-log rows and classic wallet fund records.
func (n *Normalizer) LedgerEntries(items []any) ([]adapter.LedgerEntry, []errors.RecordError) {
	return extract.Each("ledger", items, n.LedgerEntry)
}

// LedgerEntry reads one row. The signed change decides the direction; the amount is its absolute
// value. The balance before the entry is derived from the balance after it.
func (n *Normalizer) LedgerEntry(rec extract.Record) (adapter.LedgerEntry, error) {
	change := extract.Decimal(rec, "change", "amount")
	currencyID := extract.String(rec, "currency", "coin")
	if len(change) == 0 || len(currencyID) == 0 {
		return adapter.LedgerEntry{}, errors.Wrapf(exception.ErrMalformedResponse, "ledger entry %s", extract.String(rec, "id"))
	}

	currency := catalog.CurrencyCode(currencyID)
	after := extract.Decimal(rec, "cashBalance", "wallet_balance")

	e := adapter.LedgerEntry{
		ID:          extract.String(rec, "id"),
		Direction:   enum.LedgerDirectionIn,
		ReferenceID: extract.String(rec, "tradeId", "tx_id", "orderId"),
		Type:        entryType(extract.String(rec, "type")),
		Currency:    currency,
		Amount:      numeric.Abs(change),
		After:       after,
		Before:      numeric.Sub(after, change),
		Timestamp:   extract.Int64(rec, "transactionTime", "exec_time"),
	}

	if numeric.Sign(change) < 0 {
		e.Direction = enum.LedgerDirectionOut
	}

	if fee := extract.Decimal(rec, "fee"); len(fee) != 0 {
		e.Fee = adapter.Fee{
			Cost:     fee,
			Currency: currency,
			Rate:     extract.Decimal(rec, "feeRate"),
		}
	}

	return e, nil
}

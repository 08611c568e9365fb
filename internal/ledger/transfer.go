package ledger

import (
	"strings"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/pkg/exception"

	"github.com/google/uuid"
)

// accounts maps canonical account names to venue account types.
var accounts = map[string]string{
	"spot":       "SPOT",
	"contract":   "CONTRACT",
	"unified":    "UNIFIED",
	"funding":    "FUND",
	"option":     "OPTION",
	"investment": "INVESTMENT",
}

var wireAccounts = func() map[string]string {
	m := make(map[string]string, len(accounts))
	for name, wire := range accounts {
		m[wire] = name
	}
	return m
}()

func accountName(wire string) string {
	if name, ok := wireAccounts[strings.ToUpper(wire)]; ok {
		return name
	}
	return wire
}

var transferStatuses = map[string]enum.TransferStatus{
	"SUCCESS": enum.TransferStatusOK,
	"PENDING": enum.TransferStatusPending,
	"FAILED":  enum.TransferStatusFailed,
}

// Transfers normalizes internal transfer records.
func (n *Normalizer) Transfers(items []any) ([]adapter.Transfer, []errors.RecordError) {
	return extract.Each("transfer", items, n.Transfer)
}

// Transfer reads one transfer record. A missing status is pending; an unknown one is left unset.
func (n *Normalizer) Transfer(rec extract.Record) (adapter.Transfer, error) {
	id := extract.String(rec, "transferId", "transfer_id", "id")
	if len(id) == 0 {
		return adapter.Transfer{}, errors.Wrap(exception.ErrMalformedResponse, "transfer without id")
	}

	t := adapter.Transfer{
		ID:          id,
		Currency:    catalog.CurrencyCode(extract.String(rec, "coin", "currency")),
		Amount:      extract.Decimal(rec, "amount"),
		FromAccount: accountName(extract.String(rec, "fromAccountType", "from_account_type")),
		ToAccount:   accountName(extract.String(rec, "toAccountType", "to_account_type")),
		Status:      enum.TransferStatusPending,
		Timestamp:   extract.Int64(rec, "timestamp"),
	}

	if status := extract.String(rec, "status"); len(status) != 0 {
		t.Status = transferStatuses[strings.ToUpper(status)]
	}

	return t, nil
}

// TransferRequest builds an internal transfer between two canonical accounts. Every request
// carries a fresh transfer id.
func TransferRequest(currency, amount, from, to string) (adapter.Request, error) {
	if len(currency) == 0 || !numeric.IsPositive(amount) {
		return adapter.Request{}, errors.Wrapf(exception.ErrTransferInvalidRequest, "currency: %q, amount: %q", currency, amount)
	}

	fromWire, ok := accounts[strings.ToLower(from)]
	if !ok {
		return adapter.Request{}, errors.Wrapf(exception.ErrUnknownAccount, "from: %s", from)
	}

	toWire, ok := accounts[strings.ToLower(to)]
	if !ok {
		return adapter.Request{}, errors.Wrapf(exception.ErrUnknownAccount, "to: %s", to)
	}

	if fromWire == toWire {
		return adapter.Request{}, errors.Wrapf(exception.ErrTransferInvalidRequest, "same account: %s", from)
	}

	return adapter.Request{Params: map[string]any{
		"transferId":      uuid.NewString(),
		"coin":            strings.ToUpper(currency),
		"amount":          numeric.Normalize(amount),
		"fromAccountType": fromWire,
		"toAccountType":   toWire,
	}}, nil
}

package adapter

import "connector/internal/adapter/enum"

type LedgerEntry struct {
	ID          string               `json:"id"`
	Direction   enum.LedgerDirection `json:"direction"`
	Account     string               `json:"account,omitempty"`
	ReferenceID string               `json:"referenceId,omitempty"`
	Type        string               `json:"type"`
	Currency    string               `json:"currency"`
	Amount      string               `json:"amount"`
	Before      string               `json:"before,omitempty"`
	After       string               `json:"after,omitempty"`
	Fee         Fee                  `json:"fee"`
	Timestamp   int64                `json:"timestamp,omitempty"`
}

type Transfer struct {
	ID          string              `json:"id"`
	Currency    string              `json:"currency"`
	Amount      string              `json:"amount"`
	FromAccount string              `json:"fromAccount"`
	ToAccount   string              `json:"toAccount"`
	Status      enum.TransferStatus `json:"status"`
	Timestamp   int64               `json:"timestamp,omitempty"`
}

type Settlement struct {
	Symbol    string `json:"symbol"`
	Price     string `json:"price"`
	Side      string `json:"side,omitempty"`
	Size      string `json:"size,omitempty"`
	Pnl       string `json:"pnl,omitempty"`
	Fee       string `json:"fee,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// BorrowRate is the interest rate for Period milliseconds.
type BorrowRate struct {
	Currency  string `json:"currency"`
	Rate      string `json:"rate"`
	Period    int64  `json:"period"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type FeeSchedule struct {
	Fee        string `json:"fee,omitempty"`
	Percentage bool   `json:"percentage"`
}

type NetworkFee struct {
	Withdraw FeeSchedule `json:"withdraw"`
	Deposit  FeeSchedule `json:"deposit"`
}

type DepositWithdrawFee struct {
	Currency string                `json:"currency"`
	Withdraw FeeSchedule           `json:"withdraw"`
	Deposit  FeeSchedule           `json:"deposit"`
	Networks map[string]NetworkFee `json:"networks"`
}

// Balance of one currency. Debt is borrowed and not yet repaid.
type Balance struct {
	Currency string `json:"currency"`
	Free     string `json:"free,omitempty"`
	Used     string `json:"used,omitempty"`
	Total    string `json:"total,omitempty"`
	Debt     string `json:"debt,omitempty"`
}

type Balances struct {
	Account    string             `json:"account,omitempty"`
	Timestamp  int64              `json:"timestamp,omitempty"`
	Currencies map[string]Balance `json:"currencies"`
}

package adapter

import "connector/internal/adapter/enum"

// MinMax is an optional bound pair. Empty strings are undefined bounds.
type MinMax struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// MarketPrecision holds step values, never digit counts: Price is the tick size.
type MarketPrecision struct {
	Amount string `json:"amount,omitempty"`
	Price  string `json:"price,omitempty"`
	Cost   string `json:"cost,omitempty"`
}

type MarketLimits struct {
	Amount   MinMax `json:"amount"`
	Price    MinMax `json:"price"`
	Cost     MinMax `json:"cost"`
	Leverage MinMax `json:"leverage"`
}

// Market is one tradable instrument. Settle is set iff Kind is a contract kind.
type Market struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Base           string          `json:"base"`
	Quote          string          `json:"quote"`
	Settle         string          `json:"settle,omitempty"`
	BaseID         string          `json:"baseId"`
	QuoteID        string          `json:"quoteId"`
	SettleID       string          `json:"settleId,omitempty"`
	Kind           enum.MarketKind `json:"kind"`
	Active         bool            `json:"active"`
	ContractSize   string          `json:"contractSize,omitempty"`
	Expiry         int64           `json:"expiry,omitempty"`
	ExpiryDatetime string          `json:"expiryDatetime,omitempty"`
	ExpiryCode     string          `json:"expiryCode,omitempty"`
	Strike         string          `json:"strike,omitempty"`
	OptionType     enum.OptionType `json:"optionType,omitempty"`
	Taker          string          `json:"taker,omitempty"`
	Maker          string          `json:"maker,omitempty"`
	Precision      MarketPrecision `json:"precision"`
	Limits         MarketLimits    `json:"limits"`
}

func (m Market) IsContract() bool {
	return m.Kind.IsContract()
}

func (m Market) IsSpot() bool {
	return m.Kind == enum.MarketKindSpot
}

func (m Market) IsInverse() bool {
	return m.Kind == enum.MarketKindInverse
}

// NetworkInfo describes deposit and withdrawal on one chain.
type NetworkInfo struct {
	ID            string `json:"id"`
	Network       string `json:"network"`
	Precision     string `json:"precision,omitempty"`
	Deposit       bool   `json:"deposit"`
	Withdraw      bool   `json:"withdraw"`
	Fee           string `json:"fee,omitempty"`
	FeePercentage string `json:"feePercentage,omitempty"`
	DepositMin    string `json:"depositMin,omitempty"`
	WithdrawMin   string `json:"withdrawMin,omitempty"`
	Confirmations int64  `json:"confirmations,omitempty"`
}

// Currency precision is the smallest step among its networks.
type Currency struct {
	ID        string                 `json:"id"`
	Code      string                 `json:"code"`
	Name      string                 `json:"name,omitempty"`
	Precision string                 `json:"precision,omitempty"`
	Active    bool                   `json:"active"`
	Deposit   bool                   `json:"deposit"`
	Withdraw  bool                   `json:"withdraw"`
	Networks  map[string]NetworkInfo `json:"networks"`
}

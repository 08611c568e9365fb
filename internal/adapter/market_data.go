package adapter

import "connector/internal/adapter/enum"

type Ticker struct {
	Symbol      string `json:"symbol"`
	Timestamp   int64  `json:"timestamp,omitempty"`
	High        string `json:"high,omitempty"`
	Low         string `json:"low,omitempty"`
	Bid         string `json:"bid,omitempty"`
	BidVolume   string `json:"bidVolume,omitempty"`
	Ask         string `json:"ask,omitempty"`
	AskVolume   string `json:"askVolume,omitempty"`
	Open        string `json:"open,omitempty"`
	Close       string `json:"close,omitempty"`
	Last        string `json:"last,omitempty"`
	Change      string `json:"change,omitempty"`
	Percentage  string `json:"percentage,omitempty"`
	BaseVolume  string `json:"baseVolume,omitempty"`
	QuoteVolume string `json:"quoteVolume,omitempty"`
	MarkPrice   string `json:"markPrice,omitempty"`
	IndexPrice  string `json:"indexPrice,omitempty"`
}

type Trade struct {
	ID           string            `json:"id"`
	Order        string            `json:"order,omitempty"`
	Symbol       string            `json:"symbol"`
	Side         enum.OrderSide    `json:"side"`
	Type         enum.OrderType    `json:"type,omitempty"`
	TakerOrMaker enum.TakerOrMaker `json:"takerOrMaker,omitempty"`
	Price        string            `json:"price"`
	Amount       string            `json:"amount"`
	Cost         string            `json:"cost,omitempty"`
	Fee          Fee               `json:"fee"`
	Timestamp    int64             `json:"timestamp,omitempty"`
}

type OHLCV struct {
	Timestamp int64  `json:"timestamp"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
}

type OpenInterest struct {
	Symbol    string `json:"symbol"`
	Amount    string `json:"openInterestAmount,omitempty"`
	Value     string `json:"openInterestValue,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type Greeks struct {
	Symbol                string `json:"symbol"`
	Timestamp             int64  `json:"timestamp,omitempty"`
	Delta                 string `json:"delta,omitempty"`
	Gamma                 string `json:"gamma,omitempty"`
	Theta                 string `json:"theta,omitempty"`
	Vega                  string `json:"vega,omitempty"`
	BidImpliedVolatility  string `json:"bidImpliedVolatility,omitempty"`
	AskImpliedVolatility  string `json:"askImpliedVolatility,omitempty"`
	MarkImpliedVolatility string `json:"markImpliedVolatility,omitempty"`
	BidPrice              string `json:"bidPrice,omitempty"`
	AskPrice              string `json:"askPrice,omitempty"`
	MarkPrice             string `json:"markPrice,omitempty"`
	LastPrice             string `json:"lastPrice,omitempty"`
	UnderlyingPrice       string `json:"underlyingPrice,omitempty"`
}

type FundingRate struct {
	Symbol               string `json:"symbol"`
	FundingRate          string `json:"fundingRate,omitempty"`
	Timestamp            int64  `json:"timestamp,omitempty"`
	NextFundingTimestamp int64  `json:"nextFundingTimestamp,omitempty"`
	MarkPrice            string `json:"markPrice,omitempty"`
	IndexPrice           string `json:"indexPrice,omitempty"`
}

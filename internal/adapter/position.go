package adapter

import "connector/internal/adapter/enum"

// Position is a derivative position. InitialMargin, MaintenanceMargin and Collateral are either
// all defined or all undefined.
type Position struct {
	Symbol                      string            `json:"symbol"`
	Side                        enum.PositionSide `json:"side"`
	Contracts                   string            `json:"contracts"`
	ContractSize                string            `json:"contractSize,omitempty"`
	EntryPrice                  string            `json:"entryPrice,omitempty"`
	MarkPrice                   string            `json:"markPrice,omitempty"`
	Notional                    string            `json:"notional,omitempty"`
	Leverage                    string            `json:"leverage,omitempty"`
	LiquidationPrice            string            `json:"liquidationPrice,omitempty"`
	InitialMargin               string            `json:"initialMargin,omitempty"`
	InitialMarginPercentage     string            `json:"initialMarginPercentage,omitempty"`
	MaintenanceMargin           string            `json:"maintenanceMargin,omitempty"`
	MaintenanceMarginPercentage string            `json:"maintenanceMarginPercentage,omitempty"`
	Collateral                  string            `json:"collateral,omitempty"`
	MarginRatio                 string            `json:"marginRatio,omitempty"`
	UnrealizedPnl               string            `json:"unrealizedPnl,omitempty"`
	RealizedPnl                 string            `json:"realizedPnl,omitempty"`
	MarginMode                  enum.MarginMode   `json:"marginMode,omitempty"`
	Hedged                      bool              `json:"hedged"`
	StopLossPrice               string            `json:"stopLossPrice,omitempty"`
	TakeProfitPrice             string            `json:"takeProfitPrice,omitempty"`
	Timestamp                   int64             `json:"timestamp,omitempty"`
}

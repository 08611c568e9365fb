package adapter

import "connector/internal/adapter/enum"

// Fee is an optional charge. A negative cost is a rebate.
type Fee struct {
	Currency string `json:"currency,omitempty"`
	Cost     string `json:"cost,omitempty"`
	Rate     string `json:"rate,omitempty"`
}

// Order is the canonical order. At most one of TriggerPrice, StopLossPrice and TakeProfitPrice
// is set; the attached prices belong to the position the order opens, not to the order itself.
// TriggerRoleInferred marks a stop-loss or take-profit role guessed from side and trigger direction.
type Order struct {
	ID                  string                `json:"id"`
	ClientOrderID       string                `json:"clientOrderId,omitempty"`
	Symbol              string                `json:"symbol"`
	Side                enum.OrderSide        `json:"side"`
	Type                enum.OrderType        `json:"type"`
	TimeInForce         enum.OrderTimeInForce `json:"timeInForce,omitempty"`
	Status              enum.OrderStatus      `json:"status"`
	Price               string                `json:"price,omitempty"`
	TriggerPrice        string                `json:"triggerPrice,omitempty"`
	StopLossPrice       string                `json:"stopLossPrice,omitempty"`
	TakeProfitPrice     string                `json:"takeProfitPrice,omitempty"`
	TriggerDirection    enum.TriggerDirection `json:"triggerDirection,omitempty"`
	TriggerRoleInferred bool                  `json:"triggerRoleInferred,omitempty"`
	AttachedStopLoss    string                `json:"attachedStopLoss,omitempty"`
	AttachedTakeProfit  string                `json:"attachedTakeProfit,omitempty"`
	ReduceOnly          bool                  `json:"reduceOnly"`
	PostOnly            bool                  `json:"postOnly"`
	Amount              string                `json:"amount,omitempty"`
	Filled              string                `json:"filled,omitempty"`
	Remaining           string                `json:"remaining,omitempty"`
	Cost                string                `json:"cost,omitempty"`
	Average             string                `json:"average,omitempty"`
	Fee                 Fee                   `json:"fee"`
	Timestamp           int64                 `json:"timestamp,omitempty"`
	LastUpdate          int64                 `json:"lastUpdateTimestamp,omitempty"`
}

// OrderIntent is a canonical order request. Exactly one of TriggerPrice, StopLossPrice and
// TakeProfitPrice may be set. AttachedStopLoss/AttachedTakeProfit add position TP/SL to a regular
// order instead of creating a separate trigger order.
type OrderIntent struct {
	Symbol             string
	Side               enum.OrderSide
	Type               enum.OrderType
	TimeInForce        enum.OrderTimeInForce
	Amount             string
	Price              string
	Cost               string
	TriggerPrice       string
	TriggerDirection   enum.TriggerDirection
	StopLossPrice      string
	TakeProfitPrice    string
	AttachedStopLoss   string
	AttachedTakeProfit string
	ReduceOnly         bool
	PostOnly           bool
	ClientOrderID      string
	PositionIdx        int
	IsLeverage         bool
}

// AmendIntent edits a resting order. Empty fields are left unchanged.
type AmendIntent struct {
	Symbol        string
	ID            string
	ClientOrderID string
	Amount        string
	Price         string
	TriggerPrice  string
	StopLoss      string
	TakeProfit    string
}

// CancelIntent cancels one order. Trigger selects the conditional order book on spot.
type CancelIntent struct {
	Symbol        string
	ID            string
	ClientOrderID string
	Trigger       bool
}

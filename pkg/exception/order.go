package exception

import "github.com/yanun0323/errors"

var (
	ErrOrderInvalidRequest            = errors.New("order: invalid request")
	ErrOrderUnsupportedType           = errors.New("order: unsupported type")
	ErrOrderUnsupportedSide           = errors.New("order: unsupported side")
	ErrOrderPriceRequired             = errors.New("order: price is required for limit orders")
	ErrOrderPriceOrCostRequired       = errors.New("order: price or cost is required for market buy orders")
	ErrOrderTriggerDirectionRequired  = errors.New("order: trigger direction is required for derivative trigger orders")
	ErrOrderTriggerDirectionForbidden = errors.New("order: trigger direction is not accepted for spot orders")
	ErrOrderConflictingTriggers       = errors.New("order: only one of trigger, stop loss and take profit price can be set")
	ErrOrderIDRequired                = errors.New("order: order id or client order id is required")
	ErrOrderAmountRequired            = errors.New("order: amount must be positive")
)

var (
	ErrPositionInvalidRequest = errors.New("position: invalid request")
	ErrPositionInvalidMode    = errors.New("position: invalid mode")
)

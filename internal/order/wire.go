package order

import (
	"connector/internal/adapter/enum"
)

// Wire trigger directions: 1 fires when the price rises to the trigger, 2 when it falls to it.
const (
	wireTriggerRise = 1
	wireTriggerFall = 2
)

const (
	filterStopOrder = "StopOrder"
	filterTPSL      = "tpslOrder"

	marketUnitBase  = "baseCoin"
	marketUnitQuote = "quoteCoin"
)

func wireSide(side enum.OrderSide) string {
	switch side {
	case enum.OrderSideBuy:
		return "Buy"
	case enum.OrderSideSell:
		return "Sell"
	default:
		return ""
	}
}

func wireOrderType(t enum.OrderType) string {
	switch t {
	case enum.OrderTypeLimit:
		return "Limit"
	case enum.OrderTypeMarket:
		return "Market"
	default:
		return ""
	}
}

func wireTimeInForce(tif enum.OrderTimeInForce) string {
	switch tif {
	case enum.OrderTimeInForceGTC:
		return "GTC"
	case enum.OrderTimeInForceIOC:
		return "IOC"
	case enum.OrderTimeInForceFOK:
		return "FOK"
	case enum.OrderTimeInForcePO:
		return "PostOnly"
	default:
		return ""
	}
}

func wireTriggerDirection(d enum.TriggerDirection) int {
	switch d {
	case enum.TriggerDirectionAscending:
		return wireTriggerRise
	case enum.TriggerDirectionDescending:
		return wireTriggerFall
	default:
		return 0
	}
}

func parseWireTriggerDirection(v int64) enum.TriggerDirection {
	switch v {
	case wireTriggerRise:
		return enum.TriggerDirectionAscending
	case wireTriggerFall:
		return enum.TriggerDirectionDescending
	default:
		return 0
	}
}

// stopLossDirection is where the price goes to hit a stop-loss: a buy closes a short, so it
// stops out on a rise.
func stopLossDirection(side enum.OrderSide) enum.TriggerDirection {
	if side == enum.OrderSideBuy {
		return enum.TriggerDirectionAscending
	}
	return enum.TriggerDirectionDescending
}

func takeProfitDirection(side enum.OrderSide) enum.TriggerDirection {
	if side == enum.OrderSideBuy {
		return enum.TriggerDirectionDescending
	}
	return enum.TriggerDirectionAscending
}

var unifiedStatus = map[string]enum.OrderStatus{
	"Created":                 enum.OrderStatusOpen,
	"New":                     enum.OrderStatusOpen,
	"PartiallyFilled":         enum.OrderStatusOpen,
	"PendingCancel":           enum.OrderStatusOpen,
	"Untriggered":             enum.OrderStatusOpen,
	"Triggered":               enum.OrderStatusOpen,
	"Active":                  enum.OrderStatusOpen,
	"Filled":                  enum.OrderStatusClosed,
	"PartiallyFilledCanceled": enum.OrderStatusClosed,
	"Cancelled":               enum.OrderStatusCanceled,
	"Deactivated":             enum.OrderStatusCanceled,
	"Rejected":                enum.OrderStatusRejected,
}

var classicStatus = map[string]enum.OrderStatus{
	"NEW":                        enum.OrderStatusOpen,
	"PENDING_NEW":                enum.OrderStatusOpen,
	"PARTIALLY_FILLED":           enum.OrderStatusOpen,
	"PENDING_CANCEL":             enum.OrderStatusOpen,
	"ORDER_NEW":                  enum.OrderStatusOpen,
	"FILLED":                     enum.OrderStatusClosed,
	"ORDER_FILLED":               enum.OrderStatusClosed,
	"PARTIALLY_FILLED_CANCELLED": enum.OrderStatusClosed,
	"PARTIALLY_FILLED_CANCELED":  enum.OrderStatusClosed,
	"CANCELED":                   enum.OrderStatusCanceled,
	"CANCELLED":                  enum.OrderStatusCanceled,
	"ORDER_CANCELED":             enum.OrderStatusCanceled,
	"REJECTED":                   enum.OrderStatusRejected,
}

// ParseStatus maps both status vocabularies onto the canonical status.
func ParseStatus(s string) (enum.OrderStatus, bool) {
	if status, ok := unifiedStatus[s]; ok {
		return status, true
	}

	status, ok := classicStatus[s]
	return status, ok
}

func parseTimeInForce(s string) (enum.OrderTimeInForce, bool) {
	switch s {
	case "GTC", "GoodTillCancel":
		return enum.OrderTimeInForceGTC, true
	case "IOC", "ImmediateOrCancel":
		return enum.OrderTimeInForceIOC, true
	case "FOK", "FillOrKill":
		return enum.OrderTimeInForceFOK, true
	case "PostOnly", "PO", "MAKER_ONLY":
		return enum.OrderTimeInForcePO, true
	default:
		return 0, false
	}
}

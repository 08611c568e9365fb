package order

import (
	"strings"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/numeric"
	"connector/pkg/exception"
)

// Normalizer turns order records of both account generations into canonical orders.
type Normalizer struct {
	catalog *catalog.Catalog
}

func NewNormalizer(c *catalog.Catalog) *Normalizer {
	return &Normalizer{catalog: c}
}

func (n *Normalizer) Orders(kind enum.MarketKind, items []any) ([]adapter.Order, []errors.RecordError) {
	return extract.Each("order", items, func(rec extract.Record) (adapter.Order, error) {
		return n.Order(kind, rec)
	})
}

func (n *Normalizer) Order(kind enum.MarketKind, rec extract.Record) (adapter.Order, error) {
	id := extract.String(rec, "orderId", "order_id")
	marketID := extract.String(rec, "symbol")
	if len(id) == 0 || len(marketID) == 0 {
		return adapter.Order{}, errors.Wrapf(exception.ErrMalformedResponse, "order %q of %q", id, marketID)
	}
	m := n.catalog.SafeMarket(kind, marketID)

	side, ok := enum.ParseOrderSide(extract.String(rec, "side"))
	if !ok {
		return adapter.Order{}, errors.Wrapf(exception.ErrMalformedResponse, "order %s side", id)
	}

	o := adapter.Order{
		ID:            id,
		ClientOrderID: extract.String(rec, "orderLinkId", "order_link_id"),
		Symbol:        m.Symbol,
		Side:          side,
		Price:         numeric.OmitZero(extract.Decimal(rec, "price")),
		Amount:        extract.Decimal(rec, "qty", "origQty"),
		Filled:        extract.Decimal(rec, "cumExecQty", "cum_exec_qty", "executedQty"),
		Remaining:     extract.Decimal(rec, "leavesQty", "leaves_qty"),
		Cost:          extract.Decimal(rec, "cumExecValue", "cum_exec_value", "cummulativeQuoteQty"),
		Average:       numeric.OmitZero(extract.Decimal(rec, "avgPrice", "avg_price")),
		ReduceOnly:    extract.Bool(rec, "reduceOnly", "reduce_only"),
		Timestamp:     extract.Int64(rec, "createdTime", "created_time", "time"),
		LastUpdate:    extract.Int64(rec, "updatedTime", "updated_time", "updateTime"),
	}

	if t, ok := enum.ParseOrderType(extract.String(rec, "orderType", "order_type", "type")); ok {
		o.Type = t
	}

	if tif, ok := parseTimeInForce(extract.String(rec, "timeInForce", "time_in_force")); ok {
		o.TimeInForce = tif
		o.PostOnly = tif == enum.OrderTimeInForcePO
	}

	if status, ok := ParseStatus(extract.String(rec, "orderStatus", "order_status", "status")); ok {
		o.Status = status
	}

	// quote-sized spot market buys report qty in quote units
	if m.IsSpot() && extract.String(rec, "marketUnit") == marketUnitQuote {
		o.Amount = o.Filled
	}

	if len(o.Remaining) == 0 {
		o.Remaining = numeric.Sub(o.Amount, o.Filled)
	}

	if len(o.Average) == 0 && numeric.IsPositive(o.Filled) && !m.IsInverse() {
		o.Average, _ = numeric.Div(o.Cost, o.Filled, numeric.DefaultScale)
	}

	o.Fee = ParseFee(m, side, extract.Decimal(rec, "cumExecFee", "cum_exec_fee"), "")
	applyTriggers(&o, rec)

	return o, nil
}

// applyTriggers sets exactly one of TriggerPrice, StopLossPrice and TakeProfitPrice.
func applyTriggers(o *adapter.Order, rec extract.Record) {
	trigger := numeric.OmitZero(extract.Decimal(rec, "triggerPrice", "trigger_price", "stopPrice", "stop_px"))
	direction := parseWireTriggerDirection(extract.Int64(rec, "triggerDirection", "trigger_direction"))
	o.TriggerDirection = direction

	stopLoss := numeric.OmitZero(extract.Decimal(rec, "stopLoss", "stop_loss"))
	takeProfit := numeric.OmitZero(extract.Decimal(rec, "takeProfit", "take_profit"))

	stopOrderType := extract.String(rec, "stopOrderType", "stop_order_type")
	switch {
	case strings.HasSuffix(stopOrderType, "StopLoss"):
		o.StopLossPrice = firstDefined(trigger, stopLoss)
		return
	case strings.HasSuffix(stopOrderType, "TakeProfit"):
		o.TakeProfitPrice = firstDefined(trigger, takeProfit)
		return
	}

	o.AttachedStopLoss = stopLoss
	o.AttachedTakeProfit = takeProfit
	if len(trigger) == 0 {
		return
	}

	spotTPSL := stopOrderType == filterTPSL || extract.String(rec, "orderFilter", "order_filter") == filterTPSL
	if (!o.ReduceOnly && !spotTPSL) || !direction.IsAvailable() {
		o.TriggerPrice = trigger
		return
	}

	// A reduce-only trigger order, or a spot TP/SL order, does not say whether it was a stop-loss
	// or a take-profit. A buy closes a short: rising into the trigger is a loss, falling into it is
	// a profit. Sells mirror.
	o.TriggerRoleInferred = true
	if isStopLoss(o.Side, direction) {
		o.StopLossPrice = trigger
	} else {
		o.TakeProfitPrice = trigger
	}
}

func isStopLoss(side enum.OrderSide, direction enum.TriggerDirection) bool {
	ascending := direction == enum.TriggerDirectionAscending
	return (ascending && side == enum.OrderSideBuy) || (!ascending && side == enum.OrderSideSell)
}

func firstDefined(values ...string) string {
	for _, v := range values {
		if len(v) != 0 {
			return v
		}
	}
	return ""
}

package enum

// OrderSide buy, sell
type OrderSide uint8

const (
	_order_side_beg OrderSide = iota
	OrderSideBuy
	OrderSideSell
	_order_side_end
)

var orderSideNames = []string{"", "buy", "sell"}

func (s OrderSide) IsAvailable() bool {
	return s > _order_side_beg && s < _order_side_end
}

func (s OrderSide) String() string {
	return text(orderSideNames, int(s))
}

func (s OrderSide) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Opposite returns the other side.
func (s OrderSide) Opposite() OrderSide {
	switch s {
	case OrderSideBuy:
		return OrderSideSell
	case OrderSideSell:
		return OrderSideBuy
	default:
		return s
	}
}

func ParseOrderSide(s string) (OrderSide, bool) {
	switch s {
	case "buy", "Buy", "BUY":
		return OrderSideBuy, true
	case "sell", "Sell", "SELL":
		return OrderSideSell, true
	default:
		return _order_side_beg, false
	}
}

// OrderType limit, market
type OrderType uint8

const (
	_order_type_beg OrderType = iota
	OrderTypeLimit
	OrderTypeMarket
	_order_type_end
)

var orderTypeNames = []string{"", "limit", "market"}

func (t OrderType) IsAvailable() bool {
	return t > _order_type_beg && t < _order_type_end
}

func (t OrderType) String() string {
	return text(orderTypeNames, int(t))
}

func (t OrderType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func ParseOrderType(s string) (OrderType, bool) {
	switch s {
	case "limit", "Limit", "LIMIT", "LIMIT_MAKER":
		return OrderTypeLimit, true
	case "market", "Market", "MARKET":
		return OrderTypeMarket, true
	default:
		return _order_type_beg, false
	}
}

// OrderStatus open, closed, canceled, rejected
type OrderStatus uint8

const (
	_order_status_beg OrderStatus = iota
	OrderStatusOpen
	OrderStatusClosed
	OrderStatusCanceled
	OrderStatusRejected
	_order_status_end
)

var orderStatusNames = []string{"", "open", "closed", "canceled", "rejected"}

func (s OrderStatus) IsAvailable() bool {
	return s > _order_status_beg && s < _order_status_end
}

func (s OrderStatus) String() string {
	return text(orderStatusNames, int(s))
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// OrderTimeInForce GTC, IOC, FOK, PO
type OrderTimeInForce uint8

const (
	_order_time_in_force_beg OrderTimeInForce = iota
	OrderTimeInForceGTC
	OrderTimeInForceIOC
	OrderTimeInForceFOK
	OrderTimeInForcePO
	_order_time_in_force_end
)

var orderTimeInForceNames = []string{"", "GTC", "IOC", "FOK", "PO"}

func (s OrderTimeInForce) IsAvailable() bool {
	return s > _order_time_in_force_beg && s < _order_time_in_force_end
}

func (s OrderTimeInForce) String() string {
	return text(orderTimeInForceNames, int(s))
}

func (s OrderTimeInForce) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TriggerDirection ascending (price rises to the trigger), descending (price falls to it)
type TriggerDirection uint8

const (
	_trigger_direction_beg TriggerDirection = iota
	TriggerDirectionAscending
	TriggerDirectionDescending
	_trigger_direction_end
)

var triggerDirectionNames = []string{"", "ascending", "descending"}

func (d TriggerDirection) IsAvailable() bool {
	return d > _trigger_direction_beg && d < _trigger_direction_end
}

func (d TriggerDirection) String() string {
	return text(triggerDirectionNames, int(d))
}

func (d TriggerDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseTriggerDirection accepts the canonical names plus above/below.
func ParseTriggerDirection(s string) (TriggerDirection, bool) {
	switch s {
	case "ascending", "above", "rise":
		return TriggerDirectionAscending, true
	case "descending", "below", "fall":
		return TriggerDirectionDescending, true
	default:
		return _trigger_direction_beg, false
	}
}

// TakerOrMaker taker, maker
type TakerOrMaker uint8

const (
	_taker_or_maker_beg TakerOrMaker = iota
	TakerOrMakerTaker
	TakerOrMakerMaker
	_taker_or_maker_end
)

var takerOrMakerNames = []string{"", "taker", "maker"}

func (t TakerOrMaker) IsAvailable() bool {
	return t > _taker_or_maker_beg && t < _taker_or_maker_end
}

func (t TakerOrMaker) String() string {
	return text(takerOrMakerNames, int(t))
}

func (t TakerOrMaker) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

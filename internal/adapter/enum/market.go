package enum

// MarketKind spot, linear, inverse, option
type MarketKind uint8

const (
	_market_kind_beg MarketKind = iota
	MarketKindSpot
	MarketKindLinear
	MarketKindInverse
	MarketKindOption
	_market_kind_end
)

var marketKindNames = []string{"", "spot", "linear", "inverse", "option"}

// MarketKinds lists every kind in catalog concatenation order.
func MarketKinds() []MarketKind {
	return []MarketKind{MarketKindSpot, MarketKindLinear, MarketKindInverse, MarketKindOption}
}

func (k MarketKind) IsAvailable() bool {
	return k > _market_kind_beg && k < _market_kind_end
}

// IsContract reports whether the kind is a derivative with a settle currency.
func (k MarketKind) IsContract() bool {
	return k.IsAvailable() && k != MarketKindSpot
}

func (k MarketKind) String() string {
	return text(marketKindNames, int(k))
}

func (k MarketKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseMarketKind accepts the canonical names, which are also the venue category labels.
func ParseMarketKind(s string) (MarketKind, bool) {
	i, ok := lookup(marketKindNames, s)
	return MarketKind(i), ok
}

// OptionType call, put
type OptionType uint8

const (
	_option_type_beg OptionType = iota
	OptionTypeCall
	OptionTypePut
	_option_type_end
)

var optionTypeNames = []string{"", "call", "put"}

func (t OptionType) IsAvailable() bool {
	return t > _option_type_beg && t < _option_type_end
}

func (t OptionType) String() string {
	return text(optionTypeNames, int(t))
}

func (t OptionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Letter returns the id suffix used by option instruments: C or P.
func (t OptionType) Letter() string {
	switch t {
	case OptionTypeCall:
		return "C"
	case OptionTypePut:
		return "P"
	default:
		return ""
	}
}

// ParseOptionType accepts C/P, Call/Put and call/put.
func ParseOptionType(s string) (OptionType, bool) {
	switch s {
	case "C", "Call", "call", "CALL":
		return OptionTypeCall, true
	case "P", "Put", "put", "PUT":
		return OptionTypePut, true
	default:
		return _option_type_beg, false
	}
}

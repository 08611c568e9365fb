package adapter

import (
	"strings"

	"connector/internal/adapter/enum"
)

// SymbolParts are the components of a unified symbol:
//
//	BASE/QUOTE                                  spot
//	BASE/QUOTE:SETTLE                           perpetual
//	BASE/QUOTE:SETTLE-YYMMDD                    dated future
//	BASE/QUOTE:SETTLE-YYMMDD-STRIKE-C|P         option
type SymbolParts struct {
	Base       string
	Quote      string
	Settle     string
	Expiry     string // YYMMDD
	Strike     string
	OptionType enum.OptionType
}

func (p SymbolParts) String() string {
	var sb strings.Builder
	sb.Grow(len(p.Base) + len(p.Quote) + len(p.Settle) + len(p.Expiry) + len(p.Strike) + 8)
	sb.WriteString(p.Base)
	sb.WriteByte('/')
	sb.WriteString(p.Quote)
	if len(p.Settle) == 0 {
		return sb.String()
	}

	sb.WriteByte(':')
	sb.WriteString(p.Settle)
	if len(p.Expiry) == 0 {
		return sb.String()
	}

	sb.WriteByte('-')
	sb.WriteString(p.Expiry)
	if !p.OptionType.IsAvailable() {
		return sb.String()
	}

	sb.WriteByte('-')
	sb.WriteString(p.Strike)
	sb.WriteByte('-')
	sb.WriteString(p.OptionType.Letter())
	return sb.String()
}

// ParseSymbol splits a unified symbol. ok is false when the symbol has no BASE/QUOTE pair.
func ParseSymbol(symbol string) (SymbolParts, bool) {
	var p SymbolParts
	pair, rest, hasSettle := strings.Cut(symbol, ":")
	base, quote, ok := strings.Cut(pair, "/")
	if !ok || len(base) == 0 || len(quote) == 0 {
		return p, false
	}

	p.Base = base
	p.Quote = quote
	if !hasSettle {
		return p, true
	}

	parts := strings.Split(rest, "-")
	p.Settle = parts[0]
	switch len(parts) {
	case 1:
	case 2:
		p.Expiry = parts[1]
	case 4:
		optionType, ok := enum.ParseOptionType(parts[3])
		if !ok {
			return p, false
		}
		p.Expiry = parts[1]
		p.Strike = parts[2]
		p.OptionType = optionType
	default:
		return p, false
	}

	return p, len(p.Settle) != 0
}

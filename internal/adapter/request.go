package adapter

import (
	"connector/internal/adapter/enum"

	"github.com/bytedance/sonic"
)

// Request is a venue request ready for the transport layer. Params hold wire field names; decimal
// values are strings.
type Request struct {
	Category enum.MarketKind
	Params   map[string]any
}

// Body encodes Params with sorted keys so equal requests produce equal bodies.
func (r Request) Body() ([]byte, error) {
	return sonic.ConfigStd.Marshal(r.Params)
}

// String returns Params[key] when it is a string.
func (r Request) String(key string) string {
	s, _ := r.Params[key].(string)
	return s
}

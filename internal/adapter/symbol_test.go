package adapter

import (
	"testing"

	"connector/internal/adapter/enum"
)

func TestSymbol(t *testing.T) {
	testCases := []struct {
		desc     string
		input    SymbolParts
		expected string
	}{
		{
			"spot",
			SymbolParts{Base: "BTC", Quote: "USDT"},
			"BTC/USDT",
		},
		{
			"linear perpetual",
			SymbolParts{Base: "BTC", Quote: "USDT", Settle: "USDT"},
			"BTC/USDT:USDT",
		},
		{
			"inverse future",
			SymbolParts{Base: "BTC", Quote: "USD", Settle: "BTC", Expiry: "231229"},
			"BTC/USD:BTC-231229",
		},
		{
			"option",
			SymbolParts{Base: "BTC", Quote: "USD", Settle: "USDC", Expiry: "231229", Strike: "80000", OptionType: enum.OptionTypeCall},
			"BTC/USD:USDC-231229-80000-C",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			s := tc.input.String()
			if s != tc.expected {
				t.Fatalf("symbol mismatch! should be %s but got %s", tc.expected, s)
			}

			parsed, ok := ParseSymbol(s)
			if !ok {
				t.Fatalf("parse %s failed", s)
			}

			if parsed != tc.input {
				t.Fatalf("parts mismatch! should be %+v but got %+v", tc.input, parsed)
			}
		})
	}
}

func TestParseSymbolInvalid(t *testing.T) {
	for _, s := range []string{"BTCUSDT", "/USDT", "BTC/USDT:", "BTC/USD:USDC-231229-80000-X", "BTC/USD:USDC-1-2-3-4-5"} {
		if _, ok := ParseSymbol(s); ok {
			t.Fatalf("%s should not parse", s)
		}
	}
}

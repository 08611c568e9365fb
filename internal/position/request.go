package position

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/numeric"
	"connector/internal/ops"
	"connector/pkg/exception"
)

// Wire position modes.
const (
	wireModeOneWay = 0
	wireModeHedge  = 3
)

// Builder translates position settings into venue requests.
type Builder struct {
	catalog *catalog.Catalog
	opts    ops.Options
}

func NewBuilder(c *catalog.Catalog, opts ops.Options) *Builder {
	return &Builder{catalog: c, opts: opts}
}

func (b *Builder) contract(symbol string) (adapter.Market, error) {
	m, ok := b.catalog.Symbol(symbol)
	if !ok {
		return adapter.Market{}, errors.Wrapf(exception.ErrMarketNotFound, "symbol: %s", symbol)
	}

	if !m.IsContract() || m.Kind == enum.MarketKindOption {
		return adapter.Market{}, errors.Wrapf(exception.ErrPositionInvalidRequest, "%s has no leverage", symbol)
	}

	return m, nil
}

func base(m adapter.Market) map[string]any {
	return map[string]any{
		"category": m.Kind.String(),
		"symbol":   m.ID,
	}
}

// SetLeverage sets the same leverage on both sides. Leverage must be inside the market limits.
func (b *Builder) SetLeverage(symbol, leverage string) (adapter.Request, error) {
	m, err := b.contract(symbol)
	if err != nil {
		return adapter.Request{}, err
	}

	if err := checkLeverage(m, leverage); err != nil {
		return adapter.Request{}, err
	}

	params := base(m)
	params["buyLeverage"] = numeric.Normalize(leverage)
	params["sellLeverage"] = numeric.Normalize(leverage)
	return adapter.Request{Category: m.Kind, Params: params}, nil
}

func checkLeverage(m adapter.Market, leverage string) error {
	if !numeric.IsPositive(leverage) {
		return errors.Wrapf(exception.ErrPositionInvalidRequest, "leverage: %q", leverage)
	}

	if cmp, ok := numeric.Compare(leverage, m.Limits.Leverage.Min); ok && cmp < 0 {
		return errors.Wrapf(exception.ErrPositionInvalidRequest, "leverage %s below %s", leverage, m.Limits.Leverage.Min)
	}
	if cmp, ok := numeric.Compare(leverage, m.Limits.Leverage.Max); ok && cmp > 0 {
		return errors.Wrapf(exception.ErrPositionInvalidRequest, "leverage %s above %s", leverage, m.Limits.Leverage.Max)
	}

	return nil
}

// SetMarginMode switches between cross and isolated margin. Unified accounts switch for the whole
// account; classic accounts switch per symbol and must resend leverage.
func (b *Builder) SetMarginMode(symbol string, mode enum.MarginMode, leverage string) (adapter.Request, error) {
	if !mode.IsAvailable() {
		return adapter.Request{}, errors.Wrapf(exception.ErrPositionInvalidMode, "margin mode: %d", mode)
	}

	if b.opts.IsUnified() {
		wire := "REGULAR_MARGIN"
		if mode == enum.MarginModeIsolated {
			wire = "ISOLATED_MARGIN"
		}
		return adapter.Request{Params: map[string]any{"setMarginMode": wire}}, nil
	}

	m, err := b.contract(symbol)
	if err != nil {
		return adapter.Request{}, err
	}

	if err := checkLeverage(m, leverage); err != nil {
		return adapter.Request{}, err
	}

	tradeMode := 0
	if mode == enum.MarginModeIsolated {
		tradeMode = 1
	}

	params := base(m)
	params["tradeMode"] = tradeMode
	params["buyLeverage"] = numeric.Normalize(leverage)
	params["sellLeverage"] = numeric.Normalize(leverage)
	return adapter.Request{Category: m.Kind, Params: params}, nil
}

// SetPositionMode switches between one-way and hedge mode for a symbol.
func (b *Builder) SetPositionMode(symbol string, hedged bool) (adapter.Request, error) {
	m, err := b.contract(symbol)
	if err != nil {
		return adapter.Request{}, err
	}

	mode := wireModeOneWay
	if hedged {
		mode = wireModeHedge
	}

	params := base(m)
	params["mode"] = mode
	return adapter.Request{Category: m.Kind, Params: params}, nil
}

// TradingStop attaches full-position take-profit and stop-loss prices. positionIdx is 0 in one-way
// mode, 1 or 2 for the hedge-mode long or short leg.
func (b *Builder) TradingStop(symbol, takeProfit, stopLoss string, positionIdx int) (adapter.Request, error) {
	m, err := b.contract(symbol)
	if err != nil {
		return adapter.Request{}, err
	}

	if len(takeProfit) == 0 && len(stopLoss) == 0 {
		return adapter.Request{}, errors.Wrap(exception.ErrPositionInvalidRequest, "take profit or stop loss is required")
	}

	if positionIdx < 0 || positionIdx > 2 {
		return adapter.Request{}, errors.Wrapf(exception.ErrPositionInvalidRequest, "position idx: %d", positionIdx)
	}

	params := base(m)
	params["tpslMode"] = "Full"
	params["positionIdx"] = positionIdx
	if len(takeProfit) != 0 {
		params["takeProfit"] = numeric.RoundToStep(takeProfit, m.Precision.Price)
	}
	if len(stopLoss) != 0 {
		params["stopLoss"] = numeric.RoundToStep(stopLoss, m.Precision.Price)
	}

	return adapter.Request{Category: m.Kind, Params: params}, nil
}

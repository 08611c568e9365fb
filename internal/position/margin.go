package position

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/numeric"
	"connector/internal/ops"
	"connector/pkg/exception"
)

// MarginInputs are the raw position fields the reconstruction reads. Empty strings are absent.
type MarginInputs struct {
	EntryPrice        string
	LiquidationPrice  string
	BustPrice         string
	Size              string
	Leverage          string
	InitialMargin     string
	MaintenanceMargin string
	Collateral        string
	UnrealizedPnl     string
}

// Margins is the derived group. Either every field is set or none is.
type Margins struct {
	InitialMargin     string
	MaintenanceMargin string
	Collateral        string
	MarginRatio       string
}

// Settlement selects the margin algebra for a market.
type Settlement uint8

const (
	_settlement_beg Settlement = iota
	SettlementLinear
	SettlementInverse
	SettlementStable
	_settlement_end
)

func (s Settlement) IsAvailable() bool {
	return s > _settlement_beg && s < _settlement_end
}

// SettlementOf classifies m. A linear or option market settled in the configured stablecoin uses
// the stable algebra.
func SettlementOf(m adapter.Market, opts ops.Options) Settlement {
	switch {
	case m.Kind == enum.MarketKindInverse:
		return SettlementInverse
	case m.IsContract() && len(opts.Stablecoin) != 0 && m.Settle == opts.Stablecoin:
		return SettlementStable
	case m.IsContract():
		return SettlementLinear
	default:
		return 0
	}
}

// Reconstruct returns the margin group for a position. Venue-reported initial and maintenance
// margins are kept as-is. Anything else is derived with the settlement's algebra; when an input
// the branch needs is missing the whole group is left undefined and exception.ErrAmbiguousDerivation
// is returned.
func Reconstruct(settlement Settlement, in MarginInputs, opts ops.Options) (Margins, error) {
	var (
		g   Margins
		err error
	)

	switch {
	case !positive(in.Size):
		return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, "size")
	case defined(in.InitialMargin, in.MaintenanceMargin):
		g, err = reported(settlement, in, opts)
	case settlement == SettlementLinear:
		g, err = linear(in, opts)
	case settlement == SettlementInverse:
		g, err = inverse(in, opts)
	case settlement == SettlementStable:
		g, err = stable(in, opts)
	default:
		return Margins{}, errors.Wrapf(exception.ErrAmbiguousDerivation, "settlement: %d", settlement)
	}
	if err != nil {
		return Margins{}, err
	}

	ratio, err := numeric.Div(g.MaintenanceMargin, g.Collateral, opts.MarginRatioScale)
	if err != nil || len(ratio) == 0 {
		return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, "margin ratio")
	}
	g.MarginRatio = ratio

	return g, nil
}

// reported keeps venue margins and only fills collateral.
func reported(settlement Settlement, in MarginInputs, opts ops.Options) (Margins, error) {
	g := Margins{
		InitialMargin:     in.InitialMargin,
		MaintenanceMargin: in.MaintenanceMargin,
		Collateral:        in.Collateral,
	}
	if len(g.Collateral) != 0 {
		return g, nil
	}

	var err error
	switch settlement {
	case SettlementLinear:
		g.Collateral, err = linearCollateral(in)
	case SettlementInverse:
		g.Collateral, err = inverseCollateral(in, opts)
	case SettlementStable:
		g.Collateral, err = stableCollateral(in, in.MaintenanceMargin)
	default:
		err = errors.Wrapf(exception.ErrAmbiguousDerivation, "settlement: %d", settlement)
	}
	if err != nil {
		return Margins{}, err
	}

	return g, nil
}

// linear: MM = |bust - liq| x size, IM = size x entry / leverage, collateral = |entry - bust| x size.
func linear(in MarginInputs, opts ops.Options) (Margins, error) {
	if !defined(in.EntryPrice, in.LiquidationPrice, in.BustPrice) || !positive(in.Leverage) {
		return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, "linear inputs")
	}

	im, err := numeric.Div(numeric.Mul(in.Size, in.EntryPrice), in.Leverage, opts.DivisionScale)
	if err != nil {
		return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, err.Error())
	}

	collateral, err := linearCollateral(in)
	if err != nil {
		return Margins{}, err
	}

	return Margins{
		InitialMargin:     im,
		MaintenanceMargin: numeric.Mul(numeric.Abs(numeric.Sub(in.BustPrice, in.LiquidationPrice)), in.Size),
		Collateral:        collateral,
	}, nil
}

func linearCollateral(in MarginInputs) (string, error) {
	if !defined(in.EntryPrice, in.BustPrice) {
		return "", errors.Wrap(exception.ErrAmbiguousDerivation, "linear collateral inputs")
	}
	return numeric.Mul(numeric.Abs(numeric.Sub(in.EntryPrice, in.BustPrice)), in.Size), nil
}

// inverse: MM = size x |bust - liq| / (bust x liq), IM = size / (entry x leverage),
// collateral = size x |bust - entry| / (entry x bust).
func inverse(in MarginInputs, opts ops.Options) (Margins, error) {
	if !defined(in.EntryPrice, in.LiquidationPrice, in.BustPrice) || !positive(in.Leverage) {
		return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, "inverse inputs")
	}

	mm, err := numeric.Div(
		numeric.Mul(in.Size, numeric.Abs(numeric.Sub(in.BustPrice, in.LiquidationPrice))),
		numeric.Mul(in.BustPrice, in.LiquidationPrice),
		opts.DivisionScale,
	)
	if err != nil {
		return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, err.Error())
	}

	im, err := numeric.Div(in.Size, numeric.Mul(in.EntryPrice, in.Leverage), opts.DivisionScale)
	if err != nil {
		return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, err.Error())
	}

	collateral, err := inverseCollateral(in, opts)
	if err != nil {
		return Margins{}, err
	}

	return Margins{
		InitialMargin:     im,
		MaintenanceMargin: mm,
		Collateral:        collateral,
	}, nil
}

func inverseCollateral(in MarginInputs, opts ops.Options) (string, error) {
	if !defined(in.EntryPrice, in.BustPrice) {
		return "", errors.Wrap(exception.ErrAmbiguousDerivation, "inverse collateral inputs")
	}

	collateral, err := numeric.Div(
		numeric.Mul(in.Size, numeric.Abs(numeric.Sub(in.BustPrice, in.EntryPrice))),
		numeric.Mul(in.EntryPrice, in.BustPrice),
		opts.DivisionScale,
	)
	if err != nil {
		return "", errors.Wrap(exception.ErrAmbiguousDerivation, err.Error())
	}
	return collateral, nil
}

// stable: collateral = |entry - liq| x size + MM + unrealized pnl, MM as reported. IM is reported
// or size x entry / leverage.
func stable(in MarginInputs, opts ops.Options) (Margins, error) {
	if !defined(in.MaintenanceMargin) {
		return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, "stable maintenance margin")
	}

	im := in.InitialMargin
	if len(im) == 0 {
		if !defined(in.EntryPrice) || !positive(in.Leverage) {
			return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, "stable initial margin inputs")
		}

		var err error
		im, err = numeric.Div(numeric.Mul(in.Size, in.EntryPrice), in.Leverage, opts.DivisionScale)
		if err != nil {
			return Margins{}, errors.Wrap(exception.ErrAmbiguousDerivation, err.Error())
		}
	}

	collateral, err := stableCollateral(in, in.MaintenanceMargin)
	if err != nil {
		return Margins{}, err
	}

	return Margins{
		InitialMargin:     im,
		MaintenanceMargin: in.MaintenanceMargin,
		Collateral:        collateral,
	}, nil
}

func stableCollateral(in MarginInputs, mm string) (string, error) {
	if !defined(in.EntryPrice, in.LiquidationPrice, mm, in.UnrealizedPnl) {
		return "", errors.Wrap(exception.ErrAmbiguousDerivation, "stable collateral inputs")
	}

	distance := numeric.Mul(numeric.Abs(numeric.Sub(in.EntryPrice, in.LiquidationPrice)), in.Size)
	return numeric.Add(numeric.Add(distance, mm), in.UnrealizedPnl), nil
}

func defined(values ...string) bool {
	for _, v := range values {
		if !numeric.Valid(v) {
			return false
		}
	}
	return true
}

func positive(v string) bool {
	return numeric.IsPositive(v)
}

package catalog

import (
	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/obs"
	"connector/internal/ops"
	"connector/pkg/exception"
)

type marketKey struct {
	kind enum.MarketKind
	id   string
}

// Catalog is an immutable index over a merged market list.
type Catalog struct {
	opts     ops.Options
	metrics  *obs.Metrics
	markets  []adapter.Market
	byKey    map[marketKey]int
	byID     map[string]int
	bySymbol map[string]int
}

// Merge concatenates per-kind market lists in the fixed order spot, linear, inverse, option. When
// two markets share a symbol, the first one wins.
func Merge(byKind map[enum.MarketKind][]adapter.Market) []adapter.Market {
	size := 0
	for _, markets := range byKind {
		size += len(markets)
	}

	merged := make([]adapter.Market, 0, size)
	seen := make(map[string]struct{}, size)
	for _, kind := range enum.MarketKinds() {
		for _, m := range byKind[kind] {
			if _, ok := seen[m.Symbol]; ok {
				continue
			}
			seen[m.Symbol] = struct{}{}
			merged = append(merged, m)
		}
	}

	return merged
}

// New indexes already-merged markets. metrics may be nil.
func New(markets []adapter.Market, opts ops.Options, metrics *obs.Metrics) *Catalog {
	c := &Catalog{
		opts:     opts,
		metrics:  metrics,
		markets:  markets,
		byKey:    make(map[marketKey]int, len(markets)),
		byID:     make(map[string]int, len(markets)),
		bySymbol: make(map[string]int, len(markets)),
	}

	for i, m := range markets {
		key := marketKey{kind: m.Kind, id: m.ID}
		if _, ok := c.byKey[key]; !ok {
			c.byKey[key] = i
		}
		if _, ok := c.byID[m.ID]; !ok {
			c.byID[m.ID] = i
		}
		if _, ok := c.bySymbol[m.Symbol]; !ok {
			c.bySymbol[m.Symbol] = i
		}
	}

	return c
}

// Markets returns a copy of the catalog in merge order.
func (c *Catalog) Markets() []adapter.Market {
	if c == nil {
		return nil
	}

	out := make([]adapter.Market, len(c.markets))
	copy(out, c.markets)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.markets)
}

func (c *Catalog) Options() ops.Options {
	return c.opts
}

// Market looks up a live market by venue id. A zero kind searches every kind in merge order.
func (c *Catalog) Market(kind enum.MarketKind, id string) (adapter.Market, bool) {
	if c == nil {
		return adapter.Market{}, false
	}

	var (
		i  int
		ok bool
	)
	if kind.IsAvailable() {
		i, ok = c.byKey[marketKey{kind: kind, id: id}]
	} else {
		i, ok = c.byID[id]
	}
	if !ok {
		return adapter.Market{}, false
	}

	return c.markets[i], true
}

// Symbol looks up a live market by unified symbol.
func (c *Catalog) Symbol(symbol string) (adapter.Market, bool) {
	if c == nil {
		return adapter.Market{}, false
	}

	i, ok := c.bySymbol[symbol]
	if !ok {
		return adapter.Market{}, false
	}

	return c.markets[i], true
}

// Resolve returns the live market for id, or a synthesized inactive market when id is an option id
// missing from the catalog. Synthesized markets are never inserted.
func (c *Catalog) Resolve(kind enum.MarketKind, id string) (adapter.Market, error) {
	if m, ok := c.Market(kind, id); ok {
		return m, nil
	}

	if (kind == enum.MarketKindOption || !kind.IsAvailable()) && IsOptionID(id) {
		opts, err := c.optionsOrDefaults()
		if err != nil {
			return adapter.Market{}, err
		}

		m, err := Synthesize(id, opts)
		if err != nil {
			return adapter.Market{}, err
		}

		c.metricsOrNil().IncSynthesized()
		return m, nil
	}

	return adapter.Market{}, errors.Wrapf(exception.ErrMarketNotFound, "kind: %s, id: %s", kind, id)
}

// SafeMarket is Resolve for normalizers: an unknown id yields a bare market carrying only the id,
// so records referencing delisted instruments still normalize.
func (c *Catalog) SafeMarket(kind enum.MarketKind, id string) adapter.Market {
	m, err := c.Resolve(kind, id)
	if err != nil {
		return adapter.Market{ID: id, Symbol: id, Kind: kind}
	}
	return m
}

// optionsOrDefaults lets a nil catalog synthesize with the default stablecoin and expiry hour.
func (c *Catalog) optionsOrDefaults() (ops.Options, error) {
	if c != nil {
		return c.opts, nil
	}
	return ops.New(nil)
}

func (c *Catalog) metricsOrNil() *obs.Metrics {
	if c == nil {
		return nil
	}
	return c.metrics
}

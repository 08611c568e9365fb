package catalog

import (
	"context"
	"sync"
	"time"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/obs"
	"connector/internal/ops"
	"connector/pkg/exception"

	"github.com/yanun0323/logs"
	"golang.org/x/sync/errgroup"
)

// MaxPages bounds one paginated fetch.
const MaxPages = 1000

// Page is one decoded page of a cursor-paginated list.
type Page struct {
	Items  []any
	Cursor string
}

// PageFunc fetches the page after cursor. The first call receives an empty cursor.
type PageFunc func(ctx context.Context, cursor string) (Page, error)

// Fetcher issues the instruments-info request for one market kind.
type Fetcher interface {
	FetchInstruments(ctx context.Context, kind enum.MarketKind, cursor string) (Page, error)
}

// PageFromPayload unwraps an instruments-info response into a page.
func PageFromPayload(payload []byte) (Page, error) {
	root, err := extract.DecodeRecord(payload)
	if err != nil {
		return Page{}, err
	}

	result, err := extract.Result(root)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Items:  extract.List(result, "list", "data", "rows"),
		Cursor: extract.String(result, "nextPageCursor", "cursor"),
	}, nil
}

// Paginate follows cursors until a page comes back empty, the cursor is empty or the cursor
// repeats.
func Paginate(ctx context.Context, fetch PageFunc) ([]any, error) {
	var (
		items  []any
		cursor string
		seen   = make(map[string]struct{})
	)

	for page := 0; ; page++ {
		if page >= MaxPages {
			return items, errors.Wrapf(exception.ErrPaginationOverflow, "pages: %d", page)
		}

		if err := ctx.Err(); err != nil {
			return items, err
		}

		p, err := fetch(ctx, cursor)
		if err != nil {
			return items, errors.Wrapf(err, "fetch page %d", page)
		}

		if len(p.Items) == 0 {
			return items, nil
		}
		items = append(items, p.Items...)

		if len(p.Cursor) == 0 {
			return items, nil
		}
		if _, ok := seen[p.Cursor]; ok {
			return items, nil
		}
		seen[p.Cursor] = struct{}{}
		cursor = p.Cursor
	}
}

// Loader builds a catalog by fetching every configured market kind concurrently.
type Loader struct {
	fetcher Fetcher
	opts    ops.Options
	metrics *obs.Metrics
}

// NewLoader validates the configured market kinds. An unsupported kind is a configuration error.
func NewLoader(fetcher Fetcher, opts ops.Options, metrics *obs.Metrics) (*Loader, error) {
	if fetcher == nil {
		return nil, exception.ErrNilFetcher
	}

	for _, kind := range opts.MarketKinds {
		if _, err := Parser(kind); err != nil {
			return nil, err
		}
	}

	return &Loader{fetcher: fetcher, opts: opts, metrics: metrics}, nil
}

// LoadResult is a loaded catalog plus the records dropped while building it.
type LoadResult struct {
	Catalog *Catalog
	Skipped map[enum.MarketKind][]errors.RecordError
}

// Load fetches each kind in its own goroutine. Fetch order does not affect the merged order.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	var (
		mu      sync.Mutex
		byKind  = make(map[enum.MarketKind][]adapter.Market, len(l.opts.MarketKinds))
		skipped = make(map[enum.MarketKind][]errors.RecordError)
	)

	eg, ctx := errgroup.WithContext(ctx)
	for _, kind := range l.opts.MarketKinds {
		eg.Go(func() error {
			start := time.Now()
			items, err := Paginate(ctx, func(ctx context.Context, cursor string) (Page, error) {
				l.metrics.IncPage()
				return l.fetcher.FetchInstruments(ctx, kind, cursor)
			})
			if err != nil {
				return errors.Wrapf(err, "load %s markets", kind)
			}

			markets, failed, err := ParseMarkets(kind, items, l.opts)
			if err != nil {
				return err
			}

			l.metrics.ObserveLoad(time.Since(start))
			l.metrics.AddNormalized(obs.RecordMarket, len(markets))
			l.metrics.AddSkipped(obs.RecordMarket, len(failed))
			logs.Infof("loaded %s markets: %d, skipped: %d", kind, len(markets), len(failed))

			mu.Lock()
			defer mu.Unlock()
			byKind[kind] = markets
			if len(failed) != 0 {
				skipped[kind] = failed
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return LoadResult{}, err
	}

	return LoadResult{
		Catalog: New(Merge(byKind), l.opts, l.metrics),
		Skipped: skipped,
	}, nil
}

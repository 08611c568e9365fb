package main

import (
	"flag"
	"io"
	"os"
	"strings"

	"connector/internal/adapter"
	"connector/internal/adapter/enum"
	"connector/internal/catalog"
	"connector/internal/errors"
	"connector/internal/extract"
	"connector/internal/obs"
	"connector/internal/ops"
	"connector/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/logs"
)

func main() {
	if err := run(); err != nil {
		logs.Errorf("normalize: %+v", err)
		os.Exit(1)
	}
}

func run() error {
	typeFlag := flag.String("type", "", "record type: market, currency, ticker, trade, ohlcv, open_interest, greeks, funding_rate, order, position, ledger, transfer, settlement, borrow_rate, deposit_withdraw_fee, balance")
	categoryFlag := flag.String("category", "linear", "market kind of the payload: spot, linear, inverse, option")
	inFlag := flag.String("in", "-", "venue response file, - for stdin")
	instrumentsFlag := flag.String("instruments", "", "instruments-info response of the same category used as the catalog (optional)")
	symbolFlag := flag.String("symbol", "", "venue market id for per-market payloads such as ohlcv and open_interest")
	configFlag := flag.String("config", "", "options file (optional)")
	flag.Parse()

	recordType, ok := obs.ParseRecordType(strings.TrimSpace(*typeFlag))
	if !ok {
		return errors.Wrapf(exception.ErrArgumentUnsupported, "type: %q", *typeFlag)
	}

	kind, ok := enum.ParseMarketKind(strings.ToLower(strings.TrimSpace(*categoryFlag)))
	if !ok {
		return errors.Wrapf(exception.ErrUnsupportedMarketKind, "category: %q", *categoryFlag)
	}

	opts, err := loadOptions(*configFlag)
	if err != nil {
		return err
	}

	metrics := obs.NewMetrics()
	c, err := buildCatalog(*instrumentsFlag, kind, opts, metrics)
	if err != nil {
		return err
	}

	payload, err := readInput(*inFlag)
	if err != nil {
		return err
	}

	root, err := extract.DecodeRecord(payload)
	if err != nil {
		return err
	}

	result, err := extract.Result(root)
	if err != nil {
		return err
	}

	env := envelope{
		catalog:  c,
		kind:     kind,
		result:   result,
		items:    extract.List(result, "list", "data", "rows"),
		ts:       extract.Int64(root, "time", "time_now"),
		marketID: *symbolFlag,
	}

	records, normalized, failed, err := normalize(recordType, env)
	if err != nil {
		return err
	}

	metrics.AddNormalized(recordType, normalized)
	metrics.AddSkipped(recordType, len(failed))
	logs.Infof("normalized %d %s records, skipped %d", normalized, recordType, len(failed))

	return write(os.Stdout, output{
		Records: records,
		Skipped: skippedView(failed),
		Metrics: metrics.Snapshot(),
	})
}

func loadOptions(path string) (ops.Options, error) {
	if len(path) == 0 {
		return ops.New(nil)
	}
	return ops.Load(path, nil)
}

func buildCatalog(path string, kind enum.MarketKind, opts ops.Options, metrics *obs.Metrics) (*catalog.Catalog, error) {
	if len(path) == 0 {
		return catalog.New(nil, opts, metrics), nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read instruments %s", path)
	}

	page, err := catalog.PageFromPayload(payload)
	if err != nil {
		return nil, err
	}

	markets, failed, err := catalog.ParseMarkets(kind, page.Items, opts)
	if err != nil {
		return nil, err
	}

	metrics.AddNormalized(obs.RecordMarket, len(markets))
	metrics.AddSkipped(obs.RecordMarket, len(failed))
	return catalog.New(catalog.Merge(map[enum.MarketKind][]adapter.Market{kind: markets}), opts, metrics), nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return payload, nil
}

type output struct {
	Records any             `json:"records"`
	Skipped []skippedRecord `json:"skipped,omitempty"`
	Metrics obs.Snapshot    `json:"metrics"`
}

type skippedRecord struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

func skippedView(failed []errors.RecordError) []skippedRecord {
	if len(failed) == 0 {
		return nil
	}

	out := make([]skippedRecord, 0, len(failed))
	for _, f := range failed {
		out = append(out, skippedRecord{Index: f.Index, ID: f.ID, Error: f.Err.Error()})
	}
	return out
}

func write(w io.Writer, out output) error {
	buf, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(append(buf, '\n'))
	return err
}

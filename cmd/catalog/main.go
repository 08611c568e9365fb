package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"connector/internal/adapter"
	"connector/internal/catalog"
	"connector/internal/obs"
	"connector/internal/ops"
	"connector/internal/store"

	"github.com/bytedance/sonic"
	"github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
)

func main() {
	if err := run(); err != nil {
		logs.Errorf("catalog: %+v", err)
		os.Exit(1)
	}
}

func run() error {
	dirFlag := flag.String("dir", "", "directory of recorded instruments-info pages, one sub directory per market kind")
	configFlag := flag.String("config", "", "options file (optional)")
	dsnFlag := flag.String("dsn", "", "postgres connection string; saves the catalog snapshot when set")
	fromDBFlag := flag.Bool("from-db", false, "load the last snapshot from -dsn instead of -dir")
	outFlag := flag.String("out", "", "write the merged markets as JSON to this file")
	pyroscopeFlag := flag.String("pyroscope", "", "pyroscope server address (optional)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-sys.Shutdown():
			logs.Info("shutdown requested")
			cancel()
		case <-ctx.Done():
		}
	}()

	if addr := strings.TrimSpace(*pyroscopeFlag); len(addr) != 0 {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "connector/catalog",
			ServerAddress:   addr,
			Logger:          profilerLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	opts, err := loadOptions(*configFlag)
	if err != nil {
		return err
	}

	var snapshots *store.Store
	if dsn := strings.TrimSpace(*dsnFlag); len(dsn) != 0 {
		snapshots, err = store.Open(store.Option{ConnString: dsn})
		if err != nil {
			return err
		}
		defer snapshots.Close()

		if err := snapshots.Migrate(ctx); err != nil {
			return err
		}
	}

	metrics := obs.NewMetrics()
	markets, err := loadMarkets(ctx, *dirFlag, *fromDBFlag, snapshots, opts, metrics)
	if err != nil {
		return err
	}

	c := catalog.New(markets, opts, metrics)
	snapshot := metrics.Snapshot()
	logs.Infof("catalog ready: %d markets, %d pages, avg load: %s", c.Len(), snapshot.Pages, snapshot.LoadLatency.Avg)

	if snapshots != nil && !*fromDBFlag {
		if err := snapshots.SaveMarkets(ctx, c.Markets()); err != nil {
			return err
		}
	}

	if out := strings.TrimSpace(*outFlag); len(out) != 0 {
		buf, err := sonic.ConfigStd.MarshalIndent(c.Markets(), "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, buf, 0o644); err != nil {
			return err
		}
		logs.Infof("markets written to %s", out)
	}

	return nil
}

func loadOptions(path string) (ops.Options, error) {
	if len(path) == 0 {
		return ops.New(nil)
	}
	return ops.Load(path, nil)
}

func loadMarkets(ctx context.Context, dir string, fromDB bool, snapshots *store.Store, opts ops.Options, metrics *obs.Metrics) ([]adapter.Market, error) {
	if fromDB {
		return snapshots.LoadMarkets(ctx)
	}

	loader, err := catalog.NewLoader(dirFetcher{dir: dir}, opts, metrics)
	if err != nil {
		return nil, err
	}

	result, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	for kind, failed := range result.Skipped {
		logs.Errorf("skipped %d %s markets", len(failed), kind)
	}

	return result.Catalog.Markets(), nil
}

type profilerLogger struct{}

func (profilerLogger) Infof(format string, args ...interface{})  { logs.Infof(format, args...) }
func (profilerLogger) Debugf(_ string, _ ...interface{})         {}
func (profilerLogger) Errorf(format string, args ...interface{}) { logs.Errorf(format, args...) }

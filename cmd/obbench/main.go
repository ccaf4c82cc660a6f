// Command obbench replays a synthetic workload against the core order
// book and reports latency statistics, generalizing the teacher's main.go
// (a fixed batch-feed loop against a Postgres-backed replay, reporting
// mean/stddev via github.com/grd/stat) into a configurable run over
// internal/workload, internal/bench, and — optionally — internal/baseline
// and internal/store.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/samridh10exe/nano-orderbook/book"
	"github.com/samridh10exe/nano-orderbook/internal/baseline"
	"github.com/samridh10exe/nano-orderbook/internal/bench"
	"github.com/samridh10exe/nano-orderbook/internal/config"
	"github.com/samridh10exe/nano-orderbook/internal/store"
	"github.com/samridh10exe/nano-orderbook/internal/telemetry"
	"github.com/samridh10exe/nano-orderbook/internal/workload"
)

func main() {
	configPath := flag.String("config", ".", "directory containing obbench.yaml")
	withBaseline := flag.Bool("baseline", false, "also run the btree-backed baseline for comparison")
	flag.Parse()

	if err := telemetry.InitLogger(); err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	telemetry.InitMetrics()

	cfg, err := config.Load(*configPath)
	if err != nil {
		telemetry.Error("load config failed", zap.Error(err))
		os.Exit(1)
	}

	if cfg.ReplayDSN != "" {
		if err := runReplay(cfg); err != nil {
			telemetry.Error("replay failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	b := book.NewBook(book.Price(cfg.MaxPrice), cfg.Capacity)
	gen := workload.NewGenerator(cfg.Seed, book.Price(cfg.MaxPrice), workload.Mix{
		AddWeight:    cfg.Mix.Add,
		CancelWeight: cfg.Mix.Cancel,
		MatchWeight:  cfg.Mix.Match,
	})

	report := bench.Run(b, gen, cfg.Ops, cfg.BatchSize)
	telemetry.Info("core run complete",
		zap.Int("ops", report.Ops),
		zap.Duration("mean", report.Mean),
		zap.Duration("stddev", report.StdDev),
		zap.Duration("p50", report.P50),
		zap.Duration("p99", report.P99),
		zap.Duration("wall", report.Wall),
		zap.Int("order_count", b.OrderCount()),
		zap.Int("pool_used", b.PoolUsed()),
	)

	if *withBaseline {
		runBaselineComparison(cfg)
	}
}

func runBaselineComparison(cfg config.Config) {
	bl := baseline.NewBook()
	gen := workload.NewGenerator(cfg.Seed, book.Price(cfg.MaxPrice), workload.Mix{
		AddWeight:    cfg.Mix.Add,
		CancelWeight: cfg.Mix.Cancel,
		MatchWeight:  cfg.Mix.Match,
	})
	for _, op := range gen.Stream(cfg.Ops) {
		switch op.Type {
		case workload.OpAdd:
			bl.Add(op.ID, op.Side, op.Price, op.Qty, op.OrdType)
		case workload.OpCancel:
			bl.Cancel(op.ID)
		case workload.OpMatch:
			bl.Match(op.Side, op.Qty)
		}
	}
	telemetry.Info("baseline run complete", zap.Int("order_count", bl.OrderCount()))
}

// runReplay loads a previously captured order stream from Postgres and
// feeds it through the core book, persisting the fills it observes. This
// is the only code path in the repository that performs I/O on behalf of
// the book — the book itself never touches internal/store.
func runReplay(cfg config.Config) error {
	db, err := sql.Open("postgres", cfg.ReplayDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	records, err := store.FetchRecords(db)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}

	b := book.NewBook(book.Price(cfg.MaxPrice), cfg.Capacity)
	var fills []store.Fill

	for _, r := range records {
		switch r.OrdType {
		case book.Market:
			b.Match(r.Side, r.Qty)
		default:
			before := b.OrderCount()
			res := b.Add(r.ID, r.Side, r.Price, r.Qty, r.OrdType, book.Timestamp(r.Seq))
			if res == book.PoolExhausted {
				telemetry.PoolExhaustedTotal.Inc()
			}
			if b.OrderCount() < before {
				fills = append(fills, store.Fill{AggressorID: r.ID, Price: r.Price, Qty: r.Qty})
			}
		}
	}

	if len(fills) == 0 {
		telemetry.Info("replay complete, no fills to persist")
		return nil
	}
	return store.PersistFills(db, fills)
}

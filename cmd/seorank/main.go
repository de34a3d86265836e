package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/seorank/internal/benchmark"
	"github.com/tensorplex-labs/seorank/internal/config"
	"github.com/tensorplex-labs/seorank/internal/forkjoin"
	"github.com/tensorplex-labs/seorank/internal/ingest"
	"github.com/tensorplex-labs/seorank/internal/record"
	"github.com/tensorplex-labs/seorank/internal/report"
	"github.com/tensorplex-labs/seorank/internal/scoring"
	"github.com/tensorplex-labs/seorank/internal/sorting"
	"github.com/tensorplex-labs/seorank/internal/utils/logger"
)

func main() {
	logger.Init()

	// cancelling only aborts a remote input download
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load environment configuration")
		return 1
	}

	threads := cfg.EffectiveThreads()
	runtime.GOMAXPROCS(threads)
	pool := forkjoin.New(threads, cfg.SequentialCutoff)

	field, _ := cfg.SortField()
	key := record.By(field)

	weights, _ := cfg.ScoreWeights()
	scorer, err := scoring.NewScorer(scoring.WithWeights(weights))
	if err != nil {
		log.Error().Err(err).Msg("failed to build scorer")
		return 1
	}

	log.Info().
		Str("input", cfg.InputPath).
		Strs("algorithms", cfg.Algorithms).
		Str("sort_key", field.String()).
		Int("threads", threads).
		Int("cutoff", pool.Cutoff()).
		Msg("starting seorank")

	records, _ := ingest.Load(ctx, cfg.InputPath, ingest.Options{
		HasHeader:    cfg.HasHeader,
		HTTPTimeout:  cfg.HTTPTimeout,
		HTTPRetryMax: cfg.HTTPRetryMax,
	})

	engines := make([]sorting.Engine, 0, len(cfg.Algorithms))
	for _, name := range cfg.Algorithms {
		e, err := sorting.New(name, sorting.Options{Key: key, Pool: pool, MaxKey: cfg.CountingMaxKey})
		if err != nil {
			log.Error().Err(err).Str("engine", name).Msg("failed to build sort engine")
			return 1
		}
		engines = append(engines, e)
	}

	opts := []benchmark.Option{benchmark.WithVerify(cfg.VerifyOutput)}
	if cfg.ComputeBaseline {
		opts = append(opts, benchmark.WithBaseline(key))
	}
	results := benchmark.NewRunner(pool, opts...).RunAll(engines, records)

	ropts := []report.ReporterOption{report.WithFormat(cfg.Format)}
	if cfg.Plot {
		ropts = append(ropts, report.WithPlot(cfg.PlotRows))
	}
	if err := report.NewReporter(scorer, ropts...).Write(os.Stdout, results); err != nil {
		log.Error().Err(err).Msg("failed to write report")
		return 1
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed == len(results) {
		log.Error().Int("engines", failed).Msg("every sort engine failed")
		return 1
	}
	return 0
}

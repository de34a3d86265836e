// Command scoring previews SEO scores for the configured input without
// running any sort engine.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/seorank/internal/config"
	"github.com/tensorplex-labs/seorank/internal/ingest"
	"github.com/tensorplex-labs/seorank/internal/scoring"
	"github.com/tensorplex-labs/seorank/internal/utils/logger"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	weights, _ := cfg.ScoreWeights()
	scorer, err := scoring.NewScorer(scoring.WithWeights(weights))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build scorer")
	}

	records, _ := ingest.Load(context.Background(), cfg.InputPath, ingest.Options{
		HasHeader:    cfg.HasHeader,
		HTTPTimeout:  cfg.HTTPTimeout,
		HTTPRetryMax: cfg.HTTPRetryMax,
	})

	scores := scorer.ScoreAll(records)
	summary := scoring.Summarize(scores)
	log.Info().
		Int("count", summary.Count).
		Float64("min", summary.Min).
		Float64("max", summary.Max).
		Float64("mean", summary.Mean).
		Float64("std_dev", summary.StdDev).
		Msg("score summary")

	ids := records.IDs()
	if rows := cfg.PlotRows; rows > 0 && len(scores) > rows {
		ids, scores = ids[:rows], scores[:rows]
	}
	// input order, not ranked
	scoring.PlotScoresTerminal(os.Stdout, ids, scores, "SEO scores (input order)")
}

package config

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"github.com/tensorplex-labs/seorank/internal/record"
	"github.com/tensorplex-labs/seorank/internal/report"
	"github.com/tensorplex-labs/seorank/internal/scoring"
	"github.com/tensorplex-labs/seorank/internal/sorting"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig reads AppConfig from the process environment.
func LoadConfig(ctx context.Context) (*AppConfig, error) {
	return LoadConfigWith(ctx, envconfig.OsLookuper())
}

// LoadConfigWith reads AppConfig through the given lookuper and validates it.
func LoadConfigWith(ctx context.Context, lookuper envconfig.Lookuper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("%w: INPUT_PATH is empty", ErrInvalidConfig)
	}
	if c.Threads < 0 {
		return fmt.Errorf("%w: THREADS must be >= 0, got %d", ErrInvalidConfig, c.Threads)
	}
	if c.SequentialCutoff <= 0 {
		return fmt.Errorf("%w: SEQUENTIAL_CUTOFF must be > 0, got %d", ErrInvalidConfig, c.SequentialCutoff)
	}
	if c.CountingMaxKey <= 0 {
		return fmt.Errorf("%w: COUNTING_MAX_KEY must be > 0, got %d", ErrInvalidConfig, c.CountingMaxKey)
	}
	if len(c.Algorithms) == 0 {
		return fmt.Errorf("%w: ALGORITHMS is empty", ErrInvalidConfig)
	}
	for _, name := range c.Algorithms {
		if _, err := sorting.Canonical(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := c.SortField(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	w, err := c.ScoreWeights()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := scoring.NewScorer(scoring.WithWeights(w)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Format) {
	case report.FormatText, report.FormatJSON:
	default:
		return fmt.Errorf("%w: REPORT_FORMAT must be %q or %q, got %q", ErrInvalidConfig, report.FormatText, report.FormatJSON, c.Format)
	}
	return nil
}

// SortField is the record field the engines order by.
func (c *SortEnvConfig) SortField() (record.Field, error) {
	return record.ParseField(c.SortKey)
}

// EffectiveThreads resolves the THREADS hint to a concrete count.
func (c *SortEnvConfig) EffectiveThreads() int {
	if c.Threads > 0 {
		return c.Threads
	}
	return runtime.NumCPU()
}

func (c *ScoreEnvConfig) ScoreWeights() (scoring.Weights, error) {
	var w scoring.Weights
	if len(c.Weights) != len(w) {
		return w, fmt.Errorf("SCORE_WEIGHTS needs %d values, got %d", len(w), len(c.Weights))
	}
	copy(w[:], c.Weights)
	return w, nil
}

// Package config defines environment configuration structs and loaders.
package config

import "time"

type AppConfig struct {
	InputEnvConfig
	SortEnvConfig
	ScoreEnvConfig
	ReportEnvConfig
}

// InputEnvConfig locates the records to rank.
type InputEnvConfig struct {
	// InputPath is a local path, a .zst compressed path or an http(s) URL.
	InputPath    string        `env:"INPUT_PATH, default=alexa.com_site_info.csv"`
	HasHeader    bool          `env:"INPUT_HAS_HEADER, default=false"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT, default=30s"`
	HTTPRetryMax int           `env:"HTTP_RETRY_MAX, default=3"`
}

// SortEnvConfig selects the engines and how they parallelise.
type SortEnvConfig struct {
	Algorithms []string `env:"ALGORITHMS, default=merge"`
	SortKey    string   `env:"SORT_KEY, default=optimization_opportunities"`
	// Threads is a parallelism hint; 0 means every available CPU.
	Threads          int  `env:"THREADS, default=0"`
	SequentialCutoff int  `env:"SEQUENTIAL_CUTOFF, default=2048"`
	CountingMaxKey   int  `env:"COUNTING_MAX_KEY, default=1048576"`
	ComputeBaseline  bool `env:"COMPUTE_BASELINE, default=true"`
	VerifyOutput     bool `env:"VERIFY_OUTPUT, default=true"`
}

// ScoreEnvConfig holds the six SEO score weights in record field order.
type ScoreEnvConfig struct {
	Weights []float64 `env:"SCORE_WEIGHTS, default=0.25,0.20,0.15,0.10,0.20,0.10"`
}

// ReportEnvConfig configures the stdout report.
type ReportEnvConfig struct {
	Format   string `env:"REPORT_FORMAT, default=text"`
	Plot     bool   `env:"REPORT_PLOT, default=false"`
	PlotRows int    `env:"REPORT_PLOT_ROWS, default=25"`
}

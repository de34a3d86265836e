// Package benchmark times sort engines against the sequential baseline.
package benchmark

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/seorank/internal/forkjoin"
	"github.com/tensorplex-labs/seorank/internal/record"
	"github.com/tensorplex-labs/seorank/internal/sorting"
)

type Metrics struct {
	Engine          string        `json:"engine"`
	Elements        int           `json:"elements"`
	Elapsed         time.Duration `json:"elapsed_ns"`
	Rate            float64       `json:"elements_per_second"`
	HasBaseline     bool          `json:"has_baseline"`
	BaselineElapsed time.Duration `json:"baseline_elapsed_ns,omitempty"`
	Speedup         float64       `json:"speedup,omitempty"`
	Threads         int           `json:"threads"`
}

type Result struct {
	Metrics
	Sorted record.Collection
	Err    error
}

type Runner struct {
	pool     *forkjoin.Pool
	baseline *sorting.Sequential
	verify   bool
}

type Option func(*Runner)

// WithBaseline times the sequential baseline next to every engine so speedup
// can be reported. A nil key disables the baseline.
func WithBaseline(key record.KeyFunc) Option {
	return func(r *Runner) {
		if key == nil {
			r.baseline = nil
			return
		}
		r.baseline = sorting.NewSequential(key)
	}
}

// WithVerify checks every engine's output against its input.
func WithVerify(verify bool) Option {
	return func(r *Runner) {
		r.verify = verify
	}
}

func NewRunner(pool *forkjoin.Pool, opts ...Option) *Runner {
	r := &Runner{pool: pool, verify: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run sorts an independent copy of input with e. input itself is never
// modified. A failing engine returns its error and whatever metrics were
// gathered before the failure.
func (r *Runner) Run(e sorting.Engine, input record.Collection) (Result, error) {
	res := Result{Metrics: Metrics{
		Engine:   e.Name(),
		Elements: len(input),
		Threads:  r.pool.Threads(),
	}}
	before := r.pool.Stats()

	work := input.Clone()
	start := time.Now()
	sorted, err := e.Sort(work)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", e.Name(), err)
		return res, res.Err
	}
	res.Sorted = sorted
	res.Rate = Rate(len(input), res.Elapsed)

	var baseline record.Collection
	if r.baseline != nil {
		bstart := time.Now()
		baseline = r.baseline.Baseline(input)
		res.BaselineElapsed = time.Since(bstart)
		res.HasBaseline = true
		res.Speedup = Speedup(res.BaselineElapsed, res.Elapsed)
	}

	if r.verify {
		if err := sorting.Verify(e, input, sorted, baseline); err != nil {
			res.Err = err
			return res, err
		}
	}

	after := r.pool.Stats()
	log.Info().
		Str("engine", res.Engine).
		Int("elements", res.Elements).
		Dur("elapsed", res.Elapsed).
		Float64("rate", res.Rate).
		Float64("speedup", res.Speedup).
		Int("threads", res.Threads).
		Int64("spawned", after.Spawned-before.Spawned).
		Msg("sort finished")
	return res, nil
}

// RunAll runs every engine on its own copy of input. A failing engine does
// not stop the others; its Result carries the error.
func (r *Runner) RunAll(engines []sorting.Engine, input record.Collection) []Result {
	results := make([]Result, 0, len(engines))
	for _, e := range engines {
		res, err := r.Run(e, input)
		if err != nil {
			log.Error().Err(err).Str("engine", e.Name()).Msg("sort engine failed")
		}
		results = append(results, res)
	}
	return results
}

// Rate is elements per second, or 0 when nothing was measured.
func Rate(n int, elapsed time.Duration) float64 {
	if n == 0 || elapsed <= 0 {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}

// Speedup is sequential time over parallel time, or 0 when either is zero.
func Speedup(sequential, parallel time.Duration) float64 {
	if sequential <= 0 || parallel <= 0 {
		return 0
	}
	return sequential.Seconds() / parallel.Seconds()
}

// Package report renders benchmark results to stdout as text or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tensorplex-labs/seorank/internal/benchmark"
	"github.com/tensorplex-labs/seorank/internal/scoring"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Reporter struct {
	scorer   *scoring.Scorer
	format   string
	plot     bool
	plotRows int
}

type ReporterOption func(*Reporter)

func WithFormat(format string) ReporterOption {
	return func(r *Reporter) {
		r.format = strings.ToLower(format)
	}
}

// WithPlot appends a terminal plot of the top rows scores after the text
// report. rows <= 0 plots every record.
func WithPlot(rows int) ReporterOption {
	return func(r *Reporter) {
		r.plot = true
		r.plotRows = rows
	}
}

func NewReporter(scorer *scoring.Scorer, opts ...ReporterOption) *Reporter {
	r := &Reporter{scorer: scorer, format: FormatText}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Write renders every successful result. Failed engines are left out of the
// text report and carry their error in the JSON one.
func (r *Reporter) Write(w io.Writer, results []benchmark.Result) error {
	if r.format == FormatJSON {
		return r.WriteJSON(w, results)
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if err := r.WriteText(w, res); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints one line per record in sorted order followed by the run
// metrics.
func (r *Reporter) WriteText(w io.Writer, res benchmark.Result) error {
	var b strings.Builder
	scores := r.scorer.ScoreAll(res.Sorted)
	for i, rec := range res.Sorted {
		fmt.Fprintf(&b, "SEO Score for %s: %s\n", rec.ID, FormatNumber(scores[i]))
	}
	fmt.Fprintf(&b, "Sorting rate: %s elements per second\n", FormatNumber(res.Rate))
	fmt.Fprintf(&b, "Time taken to sort: %s seconds\n", FormatNumber(res.Elapsed.Seconds()))
	if res.HasBaseline {
		fmt.Fprintf(&b, "Speedup: %s\n", FormatNumber(res.Speedup))
	}
	fmt.Fprintf(&b, "Number of threads/cores: %d\n", res.Threads)

	if r.plot {
		ids := res.Sorted.IDs()
		plotted := scores
		if r.plotRows > 0 && len(plotted) > r.plotRows {
			// the tail holds the highest keys
			ids = ids[len(ids)-r.plotRows:]
			plotted = plotted[len(plotted)-r.plotRows:]
		}
		scoring.PlotScoresTerminal(&b, ids, plotted, "SEO scores ("+res.Engine+")")
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write %s report: %w", res.Engine, err)
	}
	return nil
}

// FormatNumber prints v with six significant digits, trailing zeros dropped.
func FormatNumber(v float64) string {
	return fmt.Sprintf("%.6g", v)
}

type ScoredRecord struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

type Run struct {
	benchmark.Metrics
	ElapsedSeconds float64          `json:"elapsed_seconds"`
	Error          string           `json:"error,omitempty"`
	Summary        *scoring.Summary `json:"summary,omitempty"`
	Records        []ScoredRecord   `json:"records,omitempty"`
}

type Document struct {
	Weights scoring.Weights `json:"weights"`
	Runs    []Run           `json:"runs"`
}

// NewDocument collects results into the JSON report shape.
func (r *Reporter) NewDocument(results []benchmark.Result) Document {
	doc := Document{Weights: r.scorer.Weights(), Runs: make([]Run, 0, len(results))}
	for _, res := range results {
		run := Run{Metrics: res.Metrics, ElapsedSeconds: res.Elapsed.Seconds()}
		if res.Err != nil {
			run.Error = res.Err.Error()
			doc.Runs = append(doc.Runs, run)
			continue
		}
		scores := r.scorer.ScoreAll(res.Sorted)
		summary := scoring.Summarize(scores)
		run.Summary = &summary
		run.Records = make([]ScoredRecord, len(res.Sorted))
		for i, rec := range res.Sorted {
			run.Records[i] = ScoredRecord{ID: rec.ID, Score: scores[i]}
		}
		doc.Runs = append(doc.Runs, run)
	}
	return doc
}

func (r *Reporter) WriteJSON(w io.Writer, results []benchmark.Result) error {
	data, err := sonic.ConfigStd.MarshalIndent(r.NewDocument(results), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

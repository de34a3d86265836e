// Package scoring computes the SEO score of website records.
package scoring

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tensorplex-labs/seorank/internal/record"
)

// Scorer is a pure linear scoring function over the six record features.
// It is safe for concurrent use.
type Scorer struct {
	raw        Weights
	normalized Weights
}

// Weights returns the configured, unnormalised weights.
func (s *Scorer) Weights() Weights {
	return s.raw
}

// Score returns the SEO score of r. The result depends only on r.
func (s *Scorer) Score(r record.Record) float64 {
	return floats.Dot(s.normalized[:], r.Features[:]) * ScoreScale
}

// ScoreAll scores every record of c in collection order.
func (s *Scorer) ScoreAll(c record.Collection) []float64 {
	scores := make([]float64, len(c))
	for i := range c {
		scores[i] = s.Score(c[i])
	}
	return scores
}

// Summarize reports the spread of scores. An empty slice yields a zero Summary.
func Summarize(scores []float64) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	mean, std := stat.MeanStdDev(scores, nil)
	if len(scores) == 1 {
		std = 0
	}

	return Summary{
		Count:  len(scores),
		Min:    floats.Min(scores),
		Max:    floats.Max(scores),
		Mean:   mean,
		StdDev: std,
	}
}

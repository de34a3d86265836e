package scoring

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/seorank/internal/record"
)

func TestScoreDefaultWeights(t *testing.T) {
	s, err := NewScorer()
	require.NoError(t, err)

	r := record.New("a.com", 10, 20, 30, 40, 50, 60)
	// (2.5 + 4 + 4.5 + 4 + 10 + 6) / 1.0 * 100
	assert.InDelta(t, 3100.0, s.Score(r), 1e-9)

	assert.Equal(t, 0.0, s.Score(record.New("zero.com")))
}

func TestScoreMatchesUnnormalisedFormula(t *testing.T) {
	w := Weights{2, 1, 0, 0, 1, 0}
	s, err := NewScorer(WithWeights(w))
	require.NoError(t, err)

	r := record.New("b.com", 4, 8, 100, 100, 2, 100)
	want := (2*4.0 + 1*8.0 + 1*2.0) / 4.0 * 100
	assert.InDelta(t, want, s.Score(r), 1e-9)
	assert.Equal(t, w, s.Weights())
}

func TestScoreIsOrderIndependent(t *testing.T) {
	s, err := NewScorer()
	require.NoError(t, err)

	c := make(record.Collection, 64)
	for i := range c {
		c[i] = record.New("site", rand.Float64()*100, rand.Float64(), rand.Float64(), rand.Float64(), rand.Float64(), rand.Float64())
	}
	before := s.ScoreAll(c)

	reversed := c.Clone()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	after := s.ScoreAll(reversed)

	for i := range before {
		assert.Equal(t, before[i], after[len(after)-1-i])
	}
}

func TestNewScorerRejectsInvalidWeights(t *testing.T) {
	cases := map[string]Weights{
		"negative": {-1, 1, 1, 1, 1, 1},
		"nan":      {math.NaN(), 1, 1, 1, 1, 1},
		"inf":      {math.Inf(1), 1, 1, 1, 1, 1},
		"zero sum": {},
	}
	for name, w := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewScorer(WithWeights(w))
			assert.ErrorIs(t, err, ErrInvalidWeights)
		})
	}
}

func TestWithWeight(t *testing.T) {
	s, err := NewScorer(WithWeight(0, 1), WithWeight(42, 7))
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Weights()[0])
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	one := Summarize([]float64{5})
	assert.Equal(t, Summary{Count: 1, Min: 5, Max: 5, Mean: 5}, one)

	sum := Summarize([]float64{1, 2, 3, 4})
	assert.Equal(t, 4, sum.Count)
	assert.Equal(t, 1.0, sum.Min)
	assert.Equal(t, 4.0, sum.Max)
	assert.InDelta(t, 2.5, sum.Mean, 1e-12)
	assert.False(t, math.IsNaN(sum.StdDev))
}

func TestMinMaxScale(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, MinMaxScale([]float64{2, 3, 4}))
	assert.Equal(t, []float64{0, 0}, MinMaxScale([]float64{7, 7}))
	assert.Empty(t, MinMaxScale(nil))
}

func TestL1Normalize(t *testing.T) {
	in := []float64{1, 3}
	assert.Equal(t, []float64{0.25, 0.75}, L1Normalize(in))
	assert.Equal(t, []float64{1, 3}, in)
}

func TestPlotScoresTerminal(t *testing.T) {
	var buf bytes.Buffer
	PlotScoresTerminal(&buf, []string{"a.com", "b.com"}, []float64{10, 20}, "SEO scores")
	out := buf.String()
	assert.Contains(t, out, "SEO scores (Terminal Plot - Ranked Order)")
	assert.Contains(t, out, "a.com")
	assert.Contains(t, out, "Scale: Min=10.000000, Max=20.000000")

	buf.Reset()
	PlotScoresTerminal(&buf, nil, nil, "empty")
	assert.Contains(t, buf.String(), "no scores to plot")
}

func BenchmarkScoreAll(b *testing.B) {
	s, err := NewScorer()
	if err != nil {
		b.Fatal(err)
	}
	c := make(record.Collection, 10000)
	for i := range c {
		c[i] = record.New("site", rand.Float64()*100, rand.Float64(), rand.Float64(), rand.Float64(), rand.Float64(), rand.Float64())
	}

	for b.Loop() {
		_ = s.ScoreAll(c)
	}
}

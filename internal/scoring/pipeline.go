package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

var ErrInvalidWeights = errors.New("invalid score weights")

type ScorerOption func(*Scorer)

func WithWeights(weights Weights) ScorerOption {
	return func(s *Scorer) {
		s.raw = weights
	}
}

func WithWeight(idx int, weight float64) ScorerOption {
	return func(s *Scorer) {
		if idx >= 0 && idx < len(s.raw) {
			s.raw[idx] = weight
		}
	}
}

// NewScorer builds a Scorer from DefaultWeights and the given options. The
// weights are L1-normalised so the score is a convex combination of the
// record's features.
func NewScorer(opts ...ScorerOption) (*Scorer, error) {
	s := &Scorer{raw: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}

	if err := validateWeights(s.raw); err != nil {
		return nil, err
	}
	copy(s.normalized[:], L1Normalize(s.raw[:]))

	log.Debug().Floats64("weights", s.raw[:]).Floats64("normalized", s.normalized[:]).Msg("scorer initialised")
	return s, nil
}

func validateWeights(w Weights) error {
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight %d is not finite", ErrInvalidWeights, i)
		}
		if v < 0 {
			return fmt.Errorf("%w: weight %d is negative (%f)", ErrInvalidWeights, i, v)
		}
	}
	if floats.Sum(w[:]) <= 0 {
		return fmt.Errorf("%w: weights must have a positive sum", ErrInvalidWeights)
	}
	return nil
}

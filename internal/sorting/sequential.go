package sorting

import (
	"cmp"
	"slices"

	"github.com/tensorplex-labs/seorank/internal/record"
)

// Sequential is the single-goroutine stable baseline. It is the correctness
// oracle for the parallel engines and the numerator of their speedup.
type Sequential struct {
	key record.KeyFunc
}

func NewSequential(key record.KeyFunc) *Sequential {
	return &Sequential{key: key}
}

func (s *Sequential) Name() string { return NameSequential }

func (s *Sequential) OrderKey(r record.Record) float64 { return s.key(r) }

func (s *Sequential) Sort(c record.Collection) (record.Collection, error) {
	slices.SortStableFunc(c, func(a, b record.Record) int {
		return cmp.Compare(s.key(a), s.key(b))
	})
	return c, nil
}

// Baseline returns a sorted copy of c, leaving c untouched.
func (s *Sequential) Baseline(c record.Collection) record.Collection {
	out, _ := s.Sort(c.Clone())
	return out
}

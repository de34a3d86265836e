package sorting

import (
	"errors"
	"fmt"

	"github.com/tensorplex-labs/seorank/internal/record"
)

var (
	ErrNotPermutation   = errors.New("output is not a permutation of the input")
	ErrNotSorted        = errors.New("output is not in ascending order")
	ErrBaselineMismatch = errors.New("output disagrees with the sequential baseline")
)

// IsSorted reports whether key is non-decreasing over c.
func IsSorted(c record.Collection, key record.KeyFunc) bool {
	for i := 1; i < len(c); i++ {
		if key(c[i]) < key(c[i-1]) {
			return false
		}
	}
	return true
}

// IsPermutation reports whether a and b hold the same multiset of records.
func IsPermutation(a, b record.Collection) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[record.Record]int, len(a))
	for _, r := range a {
		counts[r]++
	}
	for _, r := range b {
		if counts[r] == 0 {
			return false
		}
		counts[r]--
	}
	return true
}

// Verify checks that output is the input reordered ascending by the engine's
// order key. When baseline is non-nil, output must also agree with it
// position by position on that key, which allows equal keys to be tied in
// any order.
func Verify(e Engine, input, output, baseline record.Collection) error {
	if !IsPermutation(input, output) {
		return fmt.Errorf("%s: %w", e.Name(), ErrNotPermutation)
	}
	for i := 1; i < len(output); i++ {
		if e.OrderKey(output[i]) < e.OrderKey(output[i-1]) {
			return fmt.Errorf("%s: %w at index %d (%v after %v)",
				e.Name(), ErrNotSorted, i, e.OrderKey(output[i]), e.OrderKey(output[i-1]))
		}
	}
	if baseline == nil {
		return nil
	}
	if len(baseline) != len(output) {
		return fmt.Errorf("%s: %w: %d records vs %d", e.Name(), ErrBaselineMismatch, len(output), len(baseline))
	}
	for i := range output {
		if e.OrderKey(output[i]) != e.OrderKey(baseline[i]) {
			return fmt.Errorf("%s: %w at index %d", e.Name(), ErrBaselineMismatch, i)
		}
	}
	return nil
}

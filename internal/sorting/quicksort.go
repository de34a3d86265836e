package sorting

import (
	"github.com/tensorplex-labs/seorank/internal/forkjoin"
	"github.com/tensorplex-labs/seorank/internal/record"
)

// QuickSort partitions with the Hoare scheme around the mean of the two
// endpoint keys, then sorts both partitions in parallel above the pool
// cutoff.
//
// The pivot is a value, not necessarily any record's key. It gives no
// protection against skewed splits: inputs whose endpoints are extreme
// outliers degrade to O(n²) comparisons. Below the cutoff the smaller
// partition is recursed into and the larger one looped over, so stack depth
// stays logarithmic even then. The sort is not stable.
type QuickSort struct {
	key  record.KeyFunc
	pool *forkjoin.Pool
}

func NewQuickSort(key record.KeyFunc, pool *forkjoin.Pool) *QuickSort {
	return &QuickSort{key: key, pool: pool}
}

func (q *QuickSort) Name() string { return NameQuick }

func (q *QuickSort) OrderKey(r record.Record) float64 { return q.key(r) }

func (q *QuickSort) Sort(c record.Collection) (record.Collection, error) {
	if len(c) < 2 {
		return c, nil
	}
	q.sort(c, 0, len(c)-1)
	return c, nil
}

// sort orders the inclusive range [left, right].
func (q *QuickSort) sort(c record.Collection, left, right int) {
	for left < right {
		i, j := q.partition(c, left, right)

		if q.pool.ShouldFork(right - left + 1) {
			// [left, j] and [i, right] are disjoint once partitioned
			q.pool.Do(
				func() { q.sort(c, left, j) },
				func() { q.sort(c, i, right) },
			)
			return
		}

		if j-left < right-i {
			q.sort(c, left, j)
			left = i
		} else {
			q.sort(c, i, right)
			right = j
		}
	}
}

// partition returns i > j such that every key in [left, j] is <= pivot and
// every key in [i, right] is >= pivot.
func (q *QuickSort) partition(c record.Collection, left, right int) (int, int) {
	// halves first so huge keys cannot overflow to ±Inf; halving subnormals
	// rounds, so the pivot is clamped to the endpoints to keep both scans in
	// range
	a, b := q.key(c[left]), q.key(c[right])
	pivot := min(max(a/2+b/2, min(a, b)), max(a, b))

	i, j := left, right
	for i <= j {
		for q.key(c[i]) < pivot {
			i++
		}
		for q.key(c[j]) > pivot {
			j--
		}
		if i <= j {
			c[i], c[j] = c[j], c[i]
			// advance past the swapped pair even when both equal the pivot
			i++
			j--
		}
	}
	return i, j
}

package sorting

import (
	"github.com/tensorplex-labs/seorank/internal/forkjoin"
	"github.com/tensorplex-labs/seorank/internal/record"
)

// ranges at or below this length are insertion sorted
const mergeInsertionThreshold = 12

// MergeSort is a stable top-down merge sort whose two recursive halves run
// in parallel above the pool cutoff.
type MergeSort struct {
	key  record.KeyFunc
	pool *forkjoin.Pool
}

func NewMergeSort(key record.KeyFunc, pool *forkjoin.Pool) *MergeSort {
	return &MergeSort{key: key, pool: pool}
}

func (m *MergeSort) Name() string { return NameMerge }

func (m *MergeSort) OrderKey(r record.Record) float64 { return m.key(r) }

func (m *MergeSort) Sort(c record.Collection) (record.Collection, error) {
	if len(c) < 2 {
		return c, nil
	}
	// A frame only ever touches scratch[lo:hi+1] of its own range, so
	// concurrent frames never share scratch slots.
	scratch := make(record.Collection, len(c))
	m.sort(c, scratch, 0, len(c)-1)
	return c, nil
}

// sort orders the inclusive range [lo, hi].
func (m *MergeSort) sort(c, scratch record.Collection, lo, hi int) {
	if lo >= hi {
		return
	}
	if hi-lo+1 <= mergeInsertionThreshold {
		m.insertion(c, lo, hi)
		return
	}

	mid := lo + (hi-lo)/2
	m.pool.Fork(hi-lo+1,
		func() { m.sort(c, scratch, lo, mid) },
		func() { m.sort(c, scratch, mid+1, hi) },
	)
	m.merge(c, scratch, lo, mid, hi)
}

// merge combines the sorted runs [lo, mid] and [mid+1, hi]. On equal keys the
// left run wins, which keeps the sort stable.
func (m *MergeSort) merge(c, scratch record.Collection, lo, mid, hi int) {
	if m.key(c[mid]) <= m.key(c[mid+1]) {
		return
	}

	copy(scratch[lo:mid+1], c[lo:mid+1])
	i, j, k := lo, mid+1, lo
	for i <= mid && j <= hi {
		if m.key(scratch[i]) <= m.key(c[j]) {
			c[k] = scratch[i]
			i++
		} else {
			c[k] = c[j]
			j++
		}
		k++
	}
	// whatever is left of the right run is already in place
	copy(c[k:], scratch[i:mid+1])
}

func (m *MergeSort) insertion(c record.Collection, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		cur := c[i]
		curKey := m.key(cur)
		j := i - 1
		for j >= lo && m.key(c[j]) > curKey {
			c[j+1] = c[j]
			j--
		}
		c[j+1] = cur
	}
}

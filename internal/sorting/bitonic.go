package sorting

import (
	"math/bits"

	"github.com/tensorplex-labs/seorank/internal/forkjoin"
	"github.com/tensorplex-labs/seorank/internal/record"
)

// Bitonic sorts with a recursive bitonic merge network.
//
// The network only works on power-of-two lengths. Other lengths are padded up
// to the next power of two with sentinel slots that order after every real
// record; the sentinels end up in the tail and are dropped from the result.
type Bitonic struct {
	key  record.KeyFunc
	pool *forkjoin.Pool
}

func NewBitonic(key record.KeyFunc, pool *forkjoin.Pool) *Bitonic {
	return &Bitonic{key: key, pool: pool}
}

func (b *Bitonic) Name() string { return NameBitonic }

func (b *Bitonic) OrderKey(r record.Record) float64 { return b.key(r) }

type bitonicSlot struct {
	key      float64
	sentinel bool
	rec      record.Record
}

// after reports whether x orders strictly after y.
func (x *bitonicSlot) after(y *bitonicSlot) bool {
	if x.sentinel || y.sentinel {
		return x.sentinel && !y.sentinel
	}
	return x.key > y.key
}

func (b *Bitonic) Sort(c record.Collection) (record.Collection, error) {
	n := len(c)
	if n < 2 {
		return c, nil
	}

	slots := make([]bitonicSlot, nextPowerOfTwo(n))
	for i := range slots {
		if i < n {
			slots[i] = bitonicSlot{key: b.key(c[i]), rec: c[i]}
		} else {
			slots[i].sentinel = true
		}
	}

	b.sort(slots, true)

	for i := range c {
		c[i] = slots[i].rec
	}
	return c, nil
}

// sort leaves s monotone in the given direction; len(s) is a power of two.
func (b *Bitonic) sort(s []bitonicSlot, ascending bool) {
	n := len(s)
	if n < 2 {
		return
	}
	half := n / 2
	// the two halves touch disjoint slots
	b.pool.Fork(n,
		func() { b.sort(s[:half], true) },
		func() { b.sort(s[half:], false) },
	)
	b.merge(s, ascending)
}

// merge turns the bitonic sequence s into a monotone one.
func (b *Bitonic) merge(s []bitonicSlot, ascending bool) {
	n := len(s)
	if n < 2 {
		return
	}
	half := n / 2

	b.pool.For(half, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			compareSwap(s, i, i+half, ascending)
		}
	})

	b.pool.Fork(n,
		func() { b.merge(s[:half], ascending) },
		func() { b.merge(s[half:], ascending) },
	)
}

// compareSwap puts s[i] and s[j] in the given order. Equal keys never swap.
func compareSwap(s []bitonicSlot, i, j int, ascending bool) {
	if ascending {
		if s[i].after(&s[j]) {
			s[i], s[j] = s[j], s[i]
		}
	} else if s[j].after(&s[i]) {
		s[i], s[j] = s[j], s[i]
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

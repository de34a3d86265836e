package forkjoin

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	p := New(0, 0)
	assert.Equal(t, runtime.GOMAXPROCS(0), p.Threads())
	assert.Equal(t, DefaultCutoff, p.Cutoff())

	s := Sequential()
	assert.Equal(t, 1, s.Threads())
	assert.False(t, s.ShouldFork(1<<30))
}

func TestDoRunsEveryFunction(t *testing.T) {
	p := New(4, 1)
	var ran [5]atomic.Bool
	p.Do(
		func() { ran[0].Store(true) },
		func() { ran[1].Store(true) },
		func() { ran[2].Store(true) },
		func() { ran[3].Store(true) },
		func() { ran[4].Store(true) },
	)
	for i := range ran {
		assert.True(t, ran[i].Load(), "function %d did not run", i)
	}
	p.Do()
}

func TestSequentialPoolNeverSpawns(t *testing.T) {
	p := New(1, 1)
	var n int
	var recurse func(depth int)
	recurse = func(depth int) {
		if depth == 0 {
			n++
			return
		}
		p.Do(func() { recurse(depth - 1) }, func() { recurse(depth - 1) })
	}
	recurse(6)

	assert.Equal(t, 64, n)
	assert.Zero(t, p.Stats().Spawned)
}

// Nested fork-join must never run more leaves at once than the pool has threads.
func TestDoIsBounded(t *testing.T) {
	const threads = 3
	p := New(threads, 1)

	var active, peak atomic.Int64
	leaf := func() {
		cur := active.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		active.Add(-1)
	}

	var recurse func(depth int)
	recurse = func(depth int) {
		if depth == 0 {
			leaf()
			return
		}
		p.Do(func() { recurse(depth - 1) }, func() { recurse(depth - 1) })
	}
	recurse(6)

	assert.LessOrEqual(t, peak.Load(), int64(threads))
	assert.Zero(t, active.Load())
	assert.True(t, p.tokens.TryAcquire(threads-1), "spawn tokens leaked")
}

func TestForCoversRangeOnce(t *testing.T) {
	for _, threads := range []int{1, 2, 8} {
		p := New(threads, 16)
		const n = 1000
		hits := make([]atomic.Int32, n)
		p.For(n, func(lo, hi int) {
			if threads > 1 {
				assert.LessOrEqual(t, hi-lo, 16)
			}
			for i := lo; i < hi; i++ {
				hits[i].Add(1)
			}
		})
		for i := range hits {
			assert.Equal(t, int32(1), hits[i].Load(), "threads=%d index=%d", threads, i)
		}
	}

	called := false
	New(2, 1).For(0, func(int, int) { called = true })
	assert.False(t, called)
}

func TestForkBelowCutoffRunsInline(t *testing.T) {
	p := New(4, 100)
	order := make([]int, 0, 2)
	p.Fork(10, func() { order = append(order, 1) }, func() { order = append(order, 2) })
	assert.Equal(t, []int{1, 2}, order)
	assert.Zero(t, p.Stats().Spawned)
	assert.Zero(t, p.Stats().Inlined)
}

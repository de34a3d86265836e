// Package forkjoin runs structured fork-join parallelism with a bounded
// number of concurrent branches.
//
// Every call to Do joins all the branches it started before returning, so
// spawned work never outlives its caller. A branch is handed to a new
// goroutine only while a spawn token is free; otherwise it runs inline on the
// calling goroutine. A pool of n threads therefore never runs more than n
// branches at once, and a pool of one thread is fully sequential.
package forkjoin

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultCutoff is the sub-problem size at or below which branches run inline.
const DefaultCutoff = 2048

type Pool struct {
	threads int
	cutoff  int
	tokens  *semaphore.Weighted

	spawned atomic.Int64
	inlined atomic.Int64
}

// Stats counts how branches were executed since the pool was created.
type Stats struct {
	Spawned int64
	Inlined int64
}

// New returns a pool for the given thread count and sequential cutoff.
// threads <= 0 means runtime.GOMAXPROCS(0); cutoff <= 0 means DefaultCutoff.
func New(threads, cutoff int) *Pool {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return &Pool{
		threads: threads,
		cutoff:  cutoff,
		// the calling goroutine is one of the threads
		tokens: semaphore.NewWeighted(int64(threads - 1)),
	}
}

// Sequential returns a single-threaded pool.
func Sequential() *Pool {
	return New(1, DefaultCutoff)
}

func (p *Pool) Threads() int { return p.threads }

func (p *Pool) Cutoff() int { return p.cutoff }

func (p *Pool) Stats() Stats {
	return Stats{Spawned: p.spawned.Load(), Inlined: p.inlined.Load()}
}

// ShouldFork reports whether a sub-problem of the given size is worth
// splitting across goroutines.
func (p *Pool) ShouldFork(size int) bool {
	return p.threads > 1 && size > p.cutoff
}

// Do runs fns and returns once all of them have completed. The last function
// always runs on the calling goroutine.
func (p *Pool) Do(fns ...func()) {
	if len(fns) == 0 {
		return
	}

	var g errgroup.Group
	for _, fn := range fns[:len(fns)-1] {
		if !p.tokens.TryAcquire(1) {
			p.inlined.Add(1)
			fn()
			continue
		}
		p.spawned.Add(1)
		g.Go(func() error {
			defer p.tokens.Release(1)
			fn()
			return nil
		})
	}

	p.inlined.Add(1)
	fns[len(fns)-1]()
	_ = g.Wait()
}

// Fork is Do for a sub-problem of the given size: below the cutoff the
// functions run one after another without touching the spawn tokens.
func (p *Pool) Fork(size int, fns ...func()) {
	if !p.ShouldFork(size) {
		for _, fn := range fns {
			fn()
		}
		return
	}
	p.Do(fns...)
}

// For calls body over [0, n) split into contiguous chunks, forking the halves
// of any range larger than the cutoff. Chunks never overlap.
func (p *Pool) For(n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	p.forRange(0, n, body)
}

func (p *Pool) forRange(lo, hi int, body func(lo, hi int)) {
	if !p.ShouldFork(hi - lo) {
		body(lo, hi)
		return
	}
	mid := lo + (hi-lo)/2
	p.Do(
		func() { p.forRange(lo, mid, body) },
		func() { p.forRange(mid, hi, body) },
	)
}

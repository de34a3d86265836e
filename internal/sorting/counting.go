package sorting

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tensorplex-labs/seorank/internal/forkjoin"
	"github.com/tensorplex-labs/seorank/internal/record"
)

const (
	// DefaultMaxKey bounds the histogram of the counting engine.
	DefaultMaxKey = 1 << 20

	// maxHistogramCells caps the memory of all partial histograms together.
	maxHistogramCells = 1 << 24
)

var (
	ErrNegativeKey   = errors.New("counting sort: negative key")
	ErrNonFiniteKey  = errors.New("counting sort: non-finite key")
	ErrKeyOutOfRange = errors.New("counting sort: key exceeds histogram bound")
)

// Counting is a stable counting (rank) sort over the truncated key.
//
// Partial histograms are built concurrently, one per shard of the input, and
// summed sequentially. The placement pass reads, decrements and writes the
// shared rank array in one step per record, so it runs on a single goroutine.
type Counting struct {
	key    record.KeyFunc
	pool   *forkjoin.Pool
	maxKey int
}

func NewCounting(key record.KeyFunc, pool *forkjoin.Pool, maxKey int) *Counting {
	if maxKey <= 0 {
		maxKey = DefaultMaxKey
	}
	return &Counting{key: key, pool: pool, maxKey: maxKey}
}

func (cs *Counting) Name() string { return NameCounting }

// OrderKey is the truncated key: records whose keys share an integer part
// keep their input order.
func (cs *Counting) OrderKey(r record.Record) float64 {
	return math.Trunc(cs.key(r))
}

func (cs *Counting) Sort(c record.Collection) (record.Collection, error) {
	maxKey, err := cs.validate(c)
	if err != nil {
		return nil, err
	}
	if len(c) < 2 {
		return c, nil
	}

	rank := cs.histogram(c, maxKey)
	prefixSum(rank)

	out := make(record.Collection, len(c))
	for i := len(c) - 1; i >= 0; i-- {
		k := int(cs.key(c[i]))
		rank[k]--
		out[rank[k]] = c[i]
	}
	return out, nil
}

// validate checks every key before anything is allocated and returns the
// largest truncated key.
func (cs *Counting) validate(c record.Collection) (int, error) {
	maxKey := 0
	for i := range c {
		k := cs.key(c[i])
		switch {
		case math.IsNaN(k) || math.IsInf(k, 0):
			return 0, fmt.Errorf("%w: record %d (%s) has key %v", ErrNonFiniteKey, i, c[i].ID, k)
		case k < 0:
			return 0, fmt.Errorf("%w: record %d (%s) has key %v", ErrNegativeKey, i, c[i].ID, k)
		case math.Trunc(k) > float64(cs.maxKey):
			return 0, fmt.Errorf("%w: record %d (%s) has key %v > %d", ErrKeyOutOfRange, i, c[i].ID, k, cs.maxKey)
		}
		maxKey = max(maxKey, int(k))
	}
	return maxKey, nil
}

// histogram counts records per truncated key. Each shard fills its own
// partial histogram; the partials are then summed on the calling goroutine.
func (cs *Counting) histogram(c record.Collection, maxKey int) []int {
	size := maxKey + 1
	shards := cs.shardCount(len(c), size)

	partials := make([][]int, shards)
	chunk := (len(c) + shards - 1) / shards

	var g errgroup.Group
	for s := range shards {
		lo := s * chunk
		hi := min(lo+chunk, len(c))
		g.Go(func() error {
			h := make([]int, size)
			for i := lo; i < hi; i++ {
				h[int(cs.key(c[i]))]++
			}
			partials[s] = h
			return nil
		})
	}
	_ = g.Wait()

	rank := partials[0]
	for _, h := range partials[1:] {
		for v, n := range h {
			rank[v] += n
		}
	}

	log.Trace().Int("records", len(c)).Int("shards", shards).Int("buckets", size).Msg("counting sort histogram built")
	return rank
}

func (cs *Counting) shardCount(n, buckets int) int {
	shards := cs.pool.Threads()
	if byCutoff := (n + cs.pool.Cutoff() - 1) / cs.pool.Cutoff(); byCutoff < shards {
		shards = byCutoff
	}
	if byMemory := maxHistogramCells / buckets; byMemory < shards {
		shards = byMemory
	}
	return max(shards, 1)
}

// prefixSum turns per-key counts into the number of records with key <= v.
func prefixSum(rank []int) {
	for v := 1; v < len(rank); v++ {
		rank[v] += rank[v-1]
	}
}

// Package sorting implements the parallel ranking engines and the sequential
// baseline they are measured against.
//
// Every engine sorts a record.Collection ascending by a key and returns the
// sorted collection. Comparison engines sort in place and return their input;
// the counting engine places records into a new collection. Engines are
// permutations: no record is created, duplicated or dropped.
package sorting

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tensorplex-labs/seorank/internal/forkjoin"
	"github.com/tensorplex-labs/seorank/internal/record"
)

// Engine names accepted by New.
const (
	NameSequential = "sequential"
	NameBitonic    = "bitonic"
	NameMerge      = "merge"
	NameQuick      = "quick"
	NameCounting   = "counting"
)

var ErrUnknownEngine = errors.New("unknown sort engine")

type Engine interface {
	Name() string
	// Sort orders c ascending and returns the result, which may share
	// storage with c.
	Sort(c record.Collection) (record.Collection, error)
	// OrderKey is the value the engine actually orders records by.
	OrderKey(r record.Record) float64
}

// Options configures the engines built by New.
type Options struct {
	Key    record.KeyFunc
	Pool   *forkjoin.Pool
	MaxKey int // counting engine only
}

func (o Options) withDefaults() Options {
	if o.Key == nil {
		o.Key = record.By(record.OptimizationOpportunities)
	}
	if o.Pool == nil {
		o.Pool = forkjoin.New(0, 0)
	}
	if o.MaxKey <= 0 {
		o.MaxKey = DefaultMaxKey
	}
	return o
}

// Names lists the parallel engines in a stable order.
func Names() []string {
	return []string{NameBitonic, NameMerge, NameQuick, NameCounting}
}

var aliases = map[string]string{
	NameSequential: NameSequential,
	NameBitonic:    NameBitonic,
	NameMerge:      NameMerge,
	"mergesort":    NameMerge,
	NameQuick:      NameQuick,
	"quicksort":    NameQuick,
	NameCounting:   NameCounting,
	"rank":         NameCounting,
}

// Canonical resolves name or one of its aliases to an engine name.
func Canonical(name string) (string, error) {
	if canonical, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical, nil
	}
	valid := append(Names(), NameSequential)
	slices.Sort(valid)
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownEngine, name, strings.Join(valid, ", "))
}

// New builds the engine registered under name.
func New(name string, opts Options) (Engine, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	switch canonical {
	case NameBitonic:
		return NewBitonic(opts.Key, opts.Pool), nil
	case NameMerge:
		return NewMergeSort(opts.Key, opts.Pool), nil
	case NameQuick:
		return NewQuickSort(opts.Key, opts.Pool), nil
	case NameCounting:
		return NewCounting(opts.Key, opts.Pool, opts.MaxKey), nil
	}
	return NewSequential(opts.Key), nil
}

// Package rng provides the process-wide uniform random source consumed by
// AliasSampler, ReservoirSampler, DynamicContextStrategy, and the
// factorization's initial embedding fill.
//
// The design presumes one training worker per RNG instance; callers that
// shard training across goroutines should construct one Source per worker
// rather than sharing a single instance.
package rng

import (
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

// source64 adapts a math/rand.Source (Int63-based) to the Uint64-based
// math/rand/v2.Source interface required by distuv.Uniform.
type source64 struct {
	rand.Source
}

func (s source64) Uint64() uint64 {
	return uint64(s.Int63())<<1 | uint64(s.Int63()&1)
}

// Source is a uniform random source over [0, 1) and over integer ranges,
// safe for use by exactly one training worker.
type Source struct {
	mu   sync.Mutex
	unif distuv.Uniform
}

// New builds a Source seeded deterministically from seed. Two Sources built
// from the same seed produce identical draw sequences, which is what makes
// training deterministic given a fixed input stream.
func New(seed uint64) *Source {
	return &Source{
		unif: distuv.Uniform{
			Min: 0,
			Max: 1,
			Src: source64{rand.NewSource(int64(seed))},
		},
	}
}

// Float64 draws a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unif.Rand()
}

// Intn draws a uniform integer in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(s.Float64() * float64(n))
}

// IntRange draws a uniform integer in [lo, hi] inclusive.
func (s *Source) IntRange(lo, hi int) int {
	if hi < lo {
		panic("rng: IntRange called with hi < lo")
	}
	return lo + s.Intn(hi-lo+1)
}

// process is the default process-wide RNG, initialized once at startup.
// Reimplementations that care about threading should not use this and
// should instead thread a per-worker *Source explicitly.
var process = New(0)

// Default returns the process-wide RNG source. Seed re-initializes it; call
// before any training begins for reproducibility.
func Default() *Source { return process }

// Seed re-initializes the process-wide RNG.
func Seed(seed uint64) { process = New(seed) }

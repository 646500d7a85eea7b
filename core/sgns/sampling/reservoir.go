package sampling

import (
	"sort"

	"github.com/adalundhe/sgns/core/sgns/reservoir"
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgns/vecmath"
)

// DefaultReservoirSize is the default value for reservoir_size.
const DefaultReservoirSize = 100_000_000

// Reservoir draws negatives from a fixed-capacity reservoir sample of the
// word-index stream.
type Reservoir struct {
	sampler *reservoir.Sampler[int]
	src     *rng.Source
}

// NewReservoir constructs a Reservoir sampler with the given capacity.
func NewReservoir(capacity int, src *rng.Source) *Reservoir {
	if src == nil {
		src = rng.Default()
	}
	return &Reservoir{
		sampler: reservoir.New[int](capacity, src),
		src:     src,
	}
}

// SampleIdx implements Strategy.
func (r *Reservoir) SampleIdx(m LM) int {
	v, ok := r.sampler.Sample()
	if !ok {
		return -1
	}
	return v
}

// Step implements Strategy: offers wordIdx to the reservoir (vanilla
// Algorithm R).
func (r *Reservoir) Step(m LM, observedWordIdx int) {
	if observedWordIdx < 0 {
		return
	}
	r.sampler.Insert(observedWordIdx)
}

// Reset implements Strategy: deterministically refills the reservoir from
// normalizer.Normalize(m.Counts()).
// Each word w gets floor(weights[w]*capacity) copies; words are then sorted
// by descending fractional remainder and cyclically inserted in that order
// until the reservoir is full.
func (r *Reservoir) Reset(m LM, normalizer vecmath.CountNormalizer) {
	r.sampler.Reset()

	counts := m.Counts()
	if len(counts) == 0 {
		return
	}
	weights := normalizer.Normalize(counts)
	capacity := r.sampler.Capacity()

	type frac struct {
		word      int
		remainder float64
	}
	fracs := make([]frac, len(weights))

	for w, weight := range weights {
		x := weight * float64(capacity)
		whole := int(x)
		if whole > 0 {
			r.sampler.InsertMany(w, whole)
		}
		fracs[w] = frac{word: w, remainder: x - float64(whole)}
	}

	sort.SliceStable(fracs, func(i, j int) bool {
		return fracs[i].remainder > fracs[j].remainder
	})

	for r.sampler.Len() < capacity && len(fracs) > 0 {
		for _, f := range fracs {
			if r.sampler.Len() >= capacity {
				break
			}
			r.sampler.InsertMany(f.word, 1)
		}
	}
}

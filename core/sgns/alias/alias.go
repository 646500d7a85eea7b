// Package alias implements Walker's alias method for O(1) categorical
// sampling from a fixed discrete distribution.
package alias

import (
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgnserr"
)

// Sampler draws indices in [0, len(p)) with probability proportional to the
// vector p it was built from. Immutable after construction — callers that
// need a refreshed distribution build a new Sampler and swap it in
// wholesale; the previous instance is released before the new one is
// adopted.
type Sampler struct {
	prob []float64
	alt  []int
	n    int
}

// New builds an alias table from a probability (or unnormalized weight)
// vector p. p is copied and internally renormalized to sum to 1.
func New(p []float64) (*Sampler, error) {
	n := len(p)
	if n == 0 {
		return nil, sgnserr.New(sgnserr.InvalidConfig, "alias.New", "empty distribution")
	}

	sum := 0.0
	for _, v := range p {
		if v < 0 {
			return nil, sgnserr.New(sgnserr.InvalidConfig, "alias.New", "negative probability")
		}
		sum += v
	}
	if sum <= 0 {
		return nil, sgnserr.New(sgnserr.InvalidConfig, "alias.New", "distribution sums to zero")
	}

	scaled := make([]float64, n)
	for i, v := range p {
		scaled[i] = v / sum * float64(n)
	}

	prob := make([]float64, n)
	alt := make([]int, n)

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, v := range scaled {
		if v < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		prob[s] = scaled[s]
		alt[s] = l

		scaled[l] = scaled[l] + scaled[s] - 1.0
		if scaled[l] < 1.0 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}
	for len(large) > 0 {
		l := large[len(large)-1]
		large = large[:len(large)-1]
		prob[l] = 1.0
	}
	for len(small) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		prob[s] = 1.0
	}

	return &Sampler{prob: prob, alt: alt, n: n}, nil
}

// Sample draws a single index using src as the source of randomness.
func (s *Sampler) Sample(src *rng.Source) int {
	i := src.Intn(s.n)
	if src.Float64() < s.prob[i] {
		return i
	}
	return s.alt[i]
}

// Len returns the number of categories the sampler was built over.
func (s *Sampler) Len() int { return s.n }

package vecmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CountNormalizer transforms a count vector into a probability vector,
// optionally raising counts to Exponent before normalizing (the standard
// word2vec unigram^0.75 noise distribution) and optionally flooring the
// result so no word gets a zero sampling probability.
type CountNormalizer struct {
	Exponent float64 // 1.0 = no reshaping
	Floor    float64 // minimum probability mass per entry, 0 = disabled
}

// NewCountNormalizer returns a normalizer with the word2vec-conventional
// 0.75 exponent and no floor.
func NewCountNormalizer() CountNormalizer {
	return CountNormalizer{Exponent: 0.75, Floor: 0}
}

// Normalize returns a probability vector summing to 1 over counts. An
// all-zero or empty input yields a uniform distribution.
func (n CountNormalizer) Normalize(counts []uint64) []float64 {
	weights := make([]float64, len(counts))
	if len(counts) == 0 {
		return weights
	}
	for i, c := range counts {
		v := float64(c)
		if n.Exponent != 1.0 {
			v = math.Pow(v, n.Exponent)
		}
		weights[i] = v
	}
	sum := floats.Sum(weights)
	if sum == 0 {
		uniform := 1.0 / float64(len(weights))
		for i := range weights {
			weights[i] = uniform
		}
		return weights
	}
	floats.Scale(1.0/sum, weights)
	if n.Floor > 0 {
		applyFloor(weights, n.Floor)
	}
	return weights
}

func applyFloor(weights []float64, floor float64) {
	deficit := 0.0
	above := 0.0
	for _, w := range weights {
		if w < floor {
			deficit += floor - w
		} else {
			above += w - floor
		}
	}
	if above <= 0 {
		return
	}
	shrink := 1 - deficit/above
	for i, w := range weights {
		if w < floor {
			weights[i] = floor
		} else {
			weights[i] = floor + (w-floor)*shrink
		}
	}
}


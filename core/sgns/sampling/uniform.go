package sampling

import (
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgns/vecmath"
)

// Uniform draws negatives uniformly over the live vocabulary; Step and
// Reset are no-ops.
type Uniform struct {
	src *rng.Source
}

// NewUniform constructs a Uniform sampler drawing from src.
func NewUniform(src *rng.Source) *Uniform {
	if src == nil {
		src = rng.Default()
	}
	return &Uniform{src: src}
}

// SampleIdx implements Strategy.
func (u *Uniform) SampleIdx(m LM) int {
	size := m.Size()
	if size == 0 {
		return -1
	}
	return u.src.Intn(size)
}

// Step implements Strategy (no-op).
func (u *Uniform) Step(m LM, observedWordIdx int) {}

// Reset implements Strategy (no-op).
func (u *Uniform) Reset(m LM, normalizer vecmath.CountNormalizer) {}

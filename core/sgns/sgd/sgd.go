// Package sgd implements the per-dimension learning-rate driver this
// training core uses: a decaying step size rho[d] = max(rho_lower_bound, (tau+t[d])^-kappa),
// plus the two gradient-update kernels the token learner drives it with.
package sgd

import (
	"math"

	"github.com/adalundhe/sgns/core/sgns/vecmath"
	"github.com/adalundhe/sgns/core/sgnserr"
)

// SGD holds one learning-rate schedule per dimension. The training core
// operates with a single dimension (dimension=1); the
// type stays general rather than hardcoding that.
type SGD struct {
	tau           float64
	kappa         float64
	rhoLowerBound float64
	rho           []float64
	t             []uint64
}

// New constructs an SGD with `dimension` independent schedules.
func New(dimension int, tau, kappa, rhoLowerBound float64) (*SGD, error) {
	if dimension <= 0 {
		return nil, sgnserr.New(sgnserr.InvalidConfig, "sgd.New", "dimension must be positive")
	}
	if tau < 0 || kappa <= 0 || kappa > 1 || rhoLowerBound < 0 {
		return nil, sgnserr.New(sgnserr.InvalidConfig, "sgd.New", "hyperparameters out of range")
	}
	s := &SGD{
		tau:           tau,
		kappa:         kappa,
		rhoLowerBound: rhoLowerBound,
		rho:           make([]float64, dimension),
		t:             make([]uint64, dimension),
	}
	for d := range s.rho {
		s.rho[d] = s.computeRho(0)
	}
	return s, nil
}

// computeRho implements the decaying-learning-rate invariant
// rho[d] = max(rho_lower_bound, (tau+t[d])^-kappa).
//
// Edge case: with the default tau=0, the base (tau+t) is 0 at
// t=0 (before any Step call), and 0^-kappa is +Inf — an unbounded initial
// learning rate no floor with a finite value ever catches, since +Inf never
// compares less than rho_lower_bound. This would
// surface on a real first token_train call, which reads rho before the
// step that would have made the base positive. Replacing a non-positive
// base with 1 fixes exactly that one degenerate point (giving rho=1 at
// t=0, tau=0, identical to what the formula already gives at t=1) without
// changing any value the formula produces once tau+t > 0.
func (s *SGD) computeRho(t uint64) float64 {
	base := s.tau + float64(t)
	if base <= 0 {
		base = 1
	}
	v := math.Pow(base, -s.kappa)
	if v < s.rhoLowerBound {
		return s.rhoLowerBound
	}
	return v
}

// Step advances dimension d's step counter and recomputes its rho.
func (s *SGD) Step(d int) {
	s.t[d]++
	s.rho[d] = s.computeRho(s.t[d])
}

// Reset zeroes dimension d's step counter and recomputes its rho.
func (s *SGD) Reset(d int) {
	s.t[d] = 0
	s.rho[d] = s.computeRho(0)
}

// GetRho returns the current learning rate for dimension d.
func (s *SGD) GetRho(d int) float64 { return s.rho[d] }

// GetT returns the current step counter for dimension d.
func (s *SGD) GetT(d int) uint64 { return s.t[d] }

// RestoreState sets dimension d's step counter directly and recomputes its
// rho from it, used when reloading a previously serialized schedule rather
// than replaying Step calls one at a time.
func (s *SGD) RestoreState(d int, t uint64) {
	s.t[d] = t
	s.rho[d] = s.computeRho(t)
}

// GradientUpdate applies x[k] -= rho[d] * g[k] for k in [0, n).
func (s *SGD) GradientUpdate(d int, g []float32, x []float32) {
	vecmath.AxpyInPlace(x[:len(g)], float32(s.rho[d]), g)
}

// ScaledGradientUpdate applies x[k] -= alpha * rho[d] * g[k] for k in
// [0, n).
func (s *SGD) ScaledGradientUpdate(d int, g []float32, x []float32, alpha float32) {
	vecmath.AxpyInPlace(x[:len(g)], alpha*float32(s.rho[d]), g)
}

// Dimension returns the number of independent per-dimension schedules.
func (s *SGD) Dimension() int { return len(s.rho) }

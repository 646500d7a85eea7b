package sampling

import (
	"github.com/adalundhe/sgns/core/sgns/alias"
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgns/vecmath"
)

// DefaultRefreshInterval and DefaultRefreshBurnIn are this strategy's
// default tuning values.
const (
	DefaultRefreshInterval = 64000
	DefaultRefreshBurnIn   = 32000
)

// Empirical draws negatives from an alias table built over the unigram
// distribution (optionally reshaped/floored by a CountNormalizer),
// rebuilding on a burn-in-then-periodic schedule.
type Empirical struct {
	normalizer      vecmath.CountNormalizer
	refreshBurnIn   uint64
	refreshInterval uint64
	src             *rng.Source

	initialized bool
	t           uint64
	table       *alias.Sampler
}

// NewEmpirical constructs an Empirical sampler. normalizer shapes the
// unigram counts into a probability vector on each (re)build.
func NewEmpirical(normalizer vecmath.CountNormalizer, refreshBurnIn, refreshInterval uint64, src *rng.Source) *Empirical {
	if src == nil {
		src = rng.Default()
	}
	if refreshInterval == 0 {
		refreshInterval = 1
	}
	return &Empirical{
		normalizer:      normalizer,
		refreshBurnIn:   refreshBurnIn,
		refreshInterval: refreshInterval,
		src:             src,
	}
}

// SampleIdx implements Strategy, lazily building the alias table on first
// use if Step has never been called.
func (e *Empirical) SampleIdx(m LM) int {
	if !e.initialized {
		e.rebuild(m, e.normalizer)
	}
	if e.table == nil {
		return -1
	}
	return e.table.Sample(e.src)
}

// Step implements Strategy: increments the internal step count and rebuilds
// the alias table if not yet initialized, still within the burn-in window,
// or landing on a refresh_interval boundary past burn-in.
func (e *Empirical) Step(m LM, observedWordIdx int) {
	e.t++
	if !e.initialized || e.t < e.refreshBurnIn || (e.t-e.refreshBurnIn)%e.refreshInterval == 0 {
		e.rebuild(m, e.normalizer)
	}
}

// Reset implements Strategy: rebuilds immediately using the supplied
// normalizer. The normalizer is used for this rebuild only; future
// lazy/periodic rebuilds from SampleIdx/Step keep using the normalizer
// this Empirical was constructed with.
func (e *Empirical) Reset(m LM, normalizer vecmath.CountNormalizer) {
	e.rebuild(m, normalizer)
}

func (e *Empirical) rebuild(m LM, normalizer vecmath.CountNormalizer) {
	counts := m.Counts()
	if len(counts) == 0 {
		e.table = nil
		e.initialized = true
		return
	}
	weights := normalizer.Normalize(counts)
	table, err := alias.New(weights)
	if err != nil {
		e.table = nil
		e.initialized = true
		return
	}
	e.table = table
	e.initialized = true
}

// Package sampling implements the three negative-sample sources this
// training core draws from, all satisfying one Strategy interface
// parametric over the LanguageModel capability set they actually use —
// every variant collapses to one generic implementation against the LM
// interface.
package sampling

import "github.com/adalundhe/sgns/core/sgns/vecmath"

// LM is the narrow capability set every sampling strategy needs from a
// language model: its live vocabulary size and count vector.
type LM interface {
	Size() int
	Counts() []uint64
}

// Strategy produces negative-sample word indices and stays coherent with a
// drifting vocabulary via Step notifications.
type Strategy interface {
	// SampleIdx draws one word index in [0, lm.Size()), or returns -1 when
	// the strategy has nothing to draw from (an empty vocabulary, or an
	// empty reservoir).
	SampleIdx(m LM) int
	// Step notifies the strategy that observedWordIdx was just ingested.
	Step(m LM, observedWordIdx int)
	// Reset forces the strategy to rebuild its state immediately using
	// normalizer over the current vocabulary.
	Reset(m LM, normalizer vecmath.CountNormalizer)
}

package learner

import (
	"testing"

	"github.com/adalundhe/sgns/core/sgns/sampling"
	"github.com/adalundhe/sgns/core/sgns/vecmath"
	"github.com/stretchr/testify/require"
)

// stepOrderSpy wraps a real Strategy and records the order SampleIdx/Step
// are invoked in, so tests can observe whether a sampler step happened
// during ingest or was deferred to train.
type stepOrderSpy struct {
	inner  sampling.Strategy
	events []string
}

func (s *stepOrderSpy) SampleIdx(m sampling.LM) int {
	s.events = append(s.events, "sample")
	return s.inner.SampleIdx(m)
}

func (s *stepOrderSpy) Step(m sampling.LM, observedWordIdx int) {
	s.events = append(s.events, "step")
	s.inner.Step(m, observedWordIdx)
}

func (s *stepOrderSpy) Reset(m sampling.LM, normalizer vecmath.CountNormalizer) {
	s.inner.Reset(m, normalizer)
}

// leadingSteps counts the Step events that occurred before the first
// SampleIdx call, i.e. the steps that happened during ingest rather than
// interleaved into train.
func (s *stepOrderSpy) leadingSteps() int {
	n := 0
	for _, e := range s.events {
		if e == "sample" {
			break
		}
		n++
	}
	return n
}

// stepCount counts every Step event, ingest-phase or otherwise.
func (s *stepOrderSpy) stepCount() int {
	n := 0
	for _, e := range s.events {
		if e == "step" {
			n++
		}
	}
	return n
}

func TestSentenceLearner_SentenceTrainIngestsAndTrains(t *testing.T) {
	tl := NewTokenLearner()
	sl := NewSentenceLearner(tl, 2, true)

	m := newFakeModel(t, 8, 4, nil)
	words := []string{"the", "quick", "brown", "fox", "the", "dog"}
	require.NoError(t, sl.SentenceTrain(m, words))

	require.Equal(t, 5, m.lm.Size()) // {the, quick, brown, fox, dog}
	idx := m.lm.Lookup("the")
	require.GreaterOrEqual(t, idx, 0)
	count, err := m.lm.Count(idx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), count)
}

func TestSentenceLearner_SingleWordSentenceDoesNotError(t *testing.T) {
	m := newFakeModel(t, 4, 4, nil)
	tl := NewTokenLearner()
	sl := NewSentenceLearner(tl, 1, true)

	// single-word sentence: no context available, train must be a no-op
	// rather than erroring.
	require.NoError(t, sl.SentenceTrain(m, []string{"solo"}))
	require.Equal(t, 1, m.lm.Size())
}

func TestSentenceLearner_PropagateRetainedGatesSamplerStepTiming(t *testing.T) {
	words := []string{"a", "b", "c"}

	trueM := newFakeModel(t, 8, 4, nil)
	trueSpy := &stepOrderSpy{inner: trueM.samp}
	trueM.samp = trueSpy
	tl := NewTokenLearner()
	require.NoError(t, NewSentenceLearner(tl, 1, true).SentenceTrain(trueM, words))
	// every word steps the sampler during ingest, before any TokenTrain
	// call ever draws a negative sample.
	require.Equal(t, 3, trueSpy.leadingSteps())

	falseM := newFakeModel(t, 8, 4, nil)
	falseSpy := &stepOrderSpy{inner: falseM.samp}
	falseM.samp = falseSpy
	require.NoError(t, NewSentenceLearner(tl, 1, false).SentenceTrain(falseM, words))
	// no step happens during ingest; the first step is deferred until
	// train reaches position 0, one step ahead of that position's own
	// negative-sampling calls.
	require.Equal(t, 1, falseSpy.leadingSteps())
}

func TestSubsamplingSentenceLearner_PropagateDiscardedStepsSamplerForDroppedTokens(t *testing.T) {
	tl := NewTokenLearner()
	inner := NewSentenceLearner(tl, 1, true)

	words := make([]string, 0, 201)
	for i := 0; i < 200; i++ {
		words = append(words, "common")
	}
	words = append(words, "rare")

	mFalse := newFakeModel(t, 16, 4, nil)
	spyFalse := &stepOrderSpy{inner: mFalse.samp}
	mFalse.samp = spyFalse
	require.NoError(t, NewSubsamplingSentenceLearner(inner, false).SentenceTrain(mFalse, words))

	mTrue := newFakeModel(t, 16, 4, nil)
	spyTrue := &stepOrderSpy{inner: mTrue.samp}
	mTrue.samp = spyTrue
	require.NoError(t, NewSubsamplingSentenceLearner(inner, true).SentenceTrain(mTrue, words))

	// "common" occurs frequently enough that default subsampling discards
	// most of its 200 occurrences; propagateDiscarded=true steps the
	// sampler once more per discard on top of the shared ingest-phase
	// steps both runs already take.
	require.Greater(t, spyTrue.stepCount(), spyFalse.stepCount())
}

func TestSubsamplingSentenceLearner_IngestsEveryTokenButTrainsOnSurvivors(t *testing.T) {
	m := newFakeModel(t, 16, 4, nil)
	tl := NewTokenLearner()
	inner := NewSentenceLearner(tl, 1, true)
	sub := NewSubsamplingSentenceLearner(inner, false)

	words := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		words = append(words, "common")
	}
	words = append(words, "rare")

	require.NoError(t, sub.SentenceTrain(m, words))
	require.Equal(t, 2, m.lm.Size())
	count, err := m.lm.Count(m.lm.Lookup("common"))
	require.NoError(t, err)
	require.Equal(t, uint64(200), count)
}

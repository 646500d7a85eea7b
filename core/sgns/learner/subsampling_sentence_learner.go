package learner

// SubsamplingSGNSSentenceLearner wraps an SGNSSentenceLearner with
// frequent-word subsampling: every token is still ingested (so the
// language model sees the sentence's true occurrences, and so does the
// sampler when the inner learner steps it during ingest), but a
// token the language model's Subsample call rejects is excluded from the
// resolve/train phases as if it were OOV. It bypasses the inner learner's
// own ingest phase entirely to avoid double-incrementing the language
// model.
type SubsamplingSGNSSentenceLearner struct {
	inner              *SGNSSentenceLearner
	propagateDiscarded bool
}

// NewSubsamplingSentenceLearner constructs a SubsamplingSGNSSentenceLearner
// wrapping inner. propagateDiscarded controls whether a token rejected by
// frequency-based subsampling still steps the sampler once, via its
// resolved index, before being excluded from the train phase; when false a
// discarded token has no further effect on training at all.
func NewSubsamplingSentenceLearner(inner *SGNSSentenceLearner, propagateDiscarded bool) *SubsamplingSGNSSentenceLearner {
	return &SubsamplingSGNSSentenceLearner{inner: inner, propagateDiscarded: propagateDiscarded}
}

// SentenceTrain ingests every word, subsamples each resolved index, and
// trains only on the pairs the inner learner's window strategy produces
// from the surviving indices. A discarded index optionally steps the
// sampler via propagateDiscarded before being dropped to -1.
func (s *SubsamplingSGNSSentenceLearner) SentenceTrain(mv ModelView, words []string) error {
	ids := s.inner.ingest(mv, words)

	m := mv.LM()
	kept := make([]int, len(ids))
	for i, idx := range ids {
		if idx < 0 {
			kept[i] = -1
			continue
		}
		ok, err := m.Subsample(idx)
		if err != nil {
			return err
		}
		if ok {
			kept[i] = idx
			continue
		}
		kept[i] = -1
		if s.propagateDiscarded {
			mv.Sampler().Step(m, idx)
		}
	}

	return s.inner.trainOnResolved(mv, kept)
}

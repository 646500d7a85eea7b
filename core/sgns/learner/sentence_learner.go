package learner

// SGNSSentenceLearner runs the three-phase training pass over one sentence
//: ingest (update LM and sampler per token), resolve (map
// surface tokens to indices, discover each token's context window), and
// train (call SGNSTokenLearner.TokenTrain over every (target, context)
// pair the window produces).
type SGNSSentenceLearner struct {
	token             *SGNSTokenLearner
	negativeSamples   int
	propagateRetained bool
}

// NewSentenceLearner constructs an SGNSSentenceLearner. propagateRetained
// controls when the sampler is stepped for a token: true steps it once
// during ingest and nowhere else; false skips the ingest-phase step and
// defers it to the train phase, once per position that still resolves to a
// live index there. It has no bearing on whether an evicted word's earlier
// occurrences go OOV — that always happens, since indices are resolved
// against the vocabulary's final post-ingest state regardless of this flag.
func NewSentenceLearner(token *SGNSTokenLearner, negativeSamples int, propagateRetained bool) *SGNSSentenceLearner {
	return &SGNSSentenceLearner{token: token, negativeSamples: negativeSamples, propagateRetained: propagateRetained}
}

// ingest runs the full ingest phase — every surface token through the
// language model, resetting whatever slot an eviction frees, then stepping
// the sampler once per token when propagateRetained is true (the sampler's
// extra step is deferred to train when it is false). Indices are resolved
// in a second pass over the now-final vocabulary state, so a word whose
// slot was evicted by a later token in the same sentence resolves to -1
// for every one of its occurrences, not just the ones seen so far.
func (s *SGNSSentenceLearner) ingest(mv ModelView, words []string) []int {
	m := mv.LM()
	for _, w := range words {
		evictedIdx, _ := m.Increment(w)
		if evictedIdx >= 0 {
			s.token.ResetWord(mv, evictedIdx)
		}
		if s.propagateRetained {
			mv.Sampler().Step(m, m.Lookup(w))
		}
	}

	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = m.Lookup(w)
	}
	return ids
}

// resolveContexts computes, for every position i, the list of resolved
// context indices the configured window strategy selects. OOV positions
// (-1) get a window like any other (train skips them as targets) and
// still occupy a slot in their neighbors' windows.
func (s *SGNSSentenceLearner) resolveContexts(mv ModelView, ids []int) [][]int {
	ctx := mv.ContextStrategy()
	out := make([][]int, len(ids))
	for i := range ids {
		left, right := ctx.Size(i, len(ids)-1-i)
		window := make([]int, 0, left+right)
		for j := i - left; j < i; j++ {
			window = append(window, ids[j])
		}
		for j := i + 1; j <= i+right; j++ {
			window = append(window, ids[j])
		}
		out[i] = window
	}
	return out
}

// train runs TokenTrain for every (target, context) pair the resolved
// windows produce, skipping OOV targets or contexts. When propagateRetained
// is false, the sampler step ingest deferred for this target is issued
// here instead, once per live position.
func (s *SGNSSentenceLearner) train(mv ModelView, ids []int, windows [][]int) error {
	m := mv.LM()
	for i, target := range ids {
		if target < 0 {
			continue
		}
		if !s.propagateRetained {
			mv.Sampler().Step(m, target)
		}
		for _, ctxIdx := range windows[i] {
			if ctxIdx < 0 {
				continue
			}
			if err := s.token.TokenTrain(mv, target, ctxIdx, s.negativeSamples); err != nil {
				return err
			}
		}
	}
	return nil
}

// SentenceTrain runs the full ingest/resolve/train pass over words.
func (s *SGNSSentenceLearner) SentenceTrain(mv ModelView, words []string) error {
	ids := s.ingest(mv, words)
	windows := s.resolveContexts(mv, ids)
	return s.train(mv, ids, windows)
}

// trainOnResolved runs the resolve/train phases directly over already-known
// indices, bypassing ingest (used by SubsamplingSGNSSentenceLearner, which
// performs its own ingest-and-filter pass before deciding which tokens
// survive subsampling).
func (s *SGNSSentenceLearner) trainOnResolved(mv ModelView, ids []int) error {
	windows := s.resolveContexts(mv, ids)
	return s.train(mv, ids, windows)
}

// Package model composes the SGNS training core's components into one
// trainable, serializable unit.
//
// Model owns the language model, negative sampler, context strategy,
// factorization, SGD schedule, and the stateless token/sentence learners
// that operate over them. It implements learner.ModelView directly, so the
// learners never hold a back-reference to it — the cyclic ownership a
// literal Model<->Learner back-reference would create simply does not
// exist here (see DESIGN.md).
package model

import (
	"log/slog"

	"github.com/adalundhe/sgns/core/sgns/context"
	"github.com/adalundhe/sgns/core/sgns/factorization"
	"github.com/adalundhe/sgns/core/sgns/learner"
	"github.com/adalundhe/sgns/core/sgns/lm"
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgns/sampling"
	"github.com/adalundhe/sgns/core/sgns/sgd"
	"github.com/adalundhe/sgns/core/sgnserr"
)

// Model is the composite training unit.
type Model struct {
	lm          lm.LanguageModel
	sampler     sampling.Strategy
	ctx         context.Strategy
	fact        *factorization.WordContextFactorization
	sgdSchedule *sgd.SGD
	src         *rng.Source

	token     *learner.SGNSTokenLearner
	sentence  learner.SentenceTrainer
	neighbors *learner.NearestNeighborIndex

	log *slog.Logger
}

// New assembles a Model from its already-constructed components.
// negativeSamples and propagateRetained configure the sentence learner;
// subsampling selects SubsamplingSGNSSentenceLearner over the plain
// SGNSSentenceLearner, with propagateDiscarded configuring the wrapper
// (ignored when subsampling is false); neighborCacheSize <= 0 disables the
// nearest-neighbor LRU.
func New(
	languageModel lm.LanguageModel,
	sampler sampling.Strategy,
	ctxStrategy context.Strategy,
	fact *factorization.WordContextFactorization,
	sgdSchedule *sgd.SGD,
	src *rng.Source,
	negativeSamples int,
	propagateRetained bool,
	subsampling bool,
	propagateDiscarded bool,
	neighborCacheSize int,
	log *slog.Logger,
) (*Model, error) {
	if languageModel == nil || sampler == nil || ctxStrategy == nil || fact == nil || sgdSchedule == nil {
		return nil, sgnserr.New(sgnserr.InvalidConfig, "model.New", "all components are required")
	}
	if src == nil {
		src = rng.Default()
	}
	if log == nil {
		log = slog.Default()
	}

	token := learner.NewTokenLearner()
	plain := learner.NewSentenceLearner(token, negativeSamples, propagateRetained)
	var sentence learner.SentenceTrainer = plain
	if subsampling {
		sentence = learner.NewSubsamplingSentenceLearner(plain, propagateDiscarded)
	}

	m := &Model{
		lm:          languageModel,
		sampler:     sampler,
		ctx:         ctxStrategy,
		fact:        fact,
		sgdSchedule: sgdSchedule,
		src:         src,
		token:       token,
		sentence:    sentence,
		log:         log,
	}

	if neighborCacheSize > 0 {
		idx, err := learner.NewNearestNeighborIndex(token, neighborCacheSize)
		if err != nil {
			return nil, err
		}
		m.neighbors = idx
	}

	return m, nil
}

// LM implements learner.ModelView.
func (m *Model) LM() lm.LanguageModel { return m.lm }

// Sampler implements learner.ModelView.
func (m *Model) Sampler() sampling.Strategy { return m.sampler }

// ContextStrategy implements learner.ModelView.
func (m *Model) ContextStrategy() context.Strategy { return m.ctx }

// Factorization implements learner.ModelView.
func (m *Model) Factorization() *factorization.WordContextFactorization { return m.fact }

// SGD implements learner.ModelView.
func (m *Model) SGD() *sgd.SGD { return m.sgdSchedule }

// RNG implements learner.ModelView.
func (m *Model) RNG() *rng.Source { return m.src }

// TrainSentence runs one full ingest/resolve/train pass over words. A
// failed pass is logged at Warn and returned; after a successful pass the
// whole nearest-neighbor cache, if configured, is cleared.
func (m *Model) TrainSentence(words []string) error {
	if err := m.sentence.SentenceTrain(m, words); err != nil {
		m.log.Warn("sentence_train failed", "error", err, "words", len(words))
		return err
	}
	if m.neighbors != nil {
		m.neighbors.InvalidateAll()
	}
	return nil
}

// NearestNeighbor returns the live word index whose embedding is closest
// to idx's, using the cache when one is configured.
func (m *Model) NearestNeighbor(idx int) (int, error) {
	if m.neighbors != nil {
		return m.neighbors.FindNearestNeighborIdx(m, idx)
	}
	return m.token.FindNearestNeighborIdx(m, idx)
}

// Similarity returns the cosine similarity between two word embeddings.
func (m *Model) Similarity(a, b int) (float64, error) {
	return m.token.ComputeSimilarity(m, a, b)
}

// Truncate drops the lowest-count vocabulary entries down to maxSize,
// compacting the factorization's embedding rows to match via the same
// remap slice (-1 for dropped rows, new index otherwise). Both
// NaiveLanguageModel and SpaceSavingLanguageModel expose a Truncate method
// and so both support this call.
func (m *Model) Truncate(maxSize int) error {
	type truncator interface {
		Truncate(maxSize int) []int
	}
	t, ok := m.lm.(truncator)
	if !ok {
		return sgnserr.New(sgnserr.InvalidConfig, "Model.Truncate", "language model does not support truncation")
	}
	remap := t.Truncate(maxSize)
	m.fact.Compact(remap)
	if m.neighbors != nil {
		m.neighbors.InvalidateAll()
	}
	return nil
}

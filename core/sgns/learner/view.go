// Package learner implements the token- and sentence-level SGNS training
// orchestration, plus a read-side nearest-neighbor
// inspection utility layered over the same mutable state.
//
// The cyclic Model<->Learner back-reference is
// eliminated: rather than a learner storing a non-owning pointer back to
// its owning Model (which must be re-installed after every Model move),
// every learner method takes the Model's capability surface as an
// explicit parameter — ModelView — on each call. Nothing here stores a
// Model reference, so there is nothing to reinstall.
package learner

import (
	"github.com/google/uuid"

	"github.com/adalundhe/sgns/core/sgns/context"
	"github.com/adalundhe/sgns/core/sgns/factorization"
	"github.com/adalundhe/sgns/core/sgns/lm"
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgns/sampling"
	"github.com/adalundhe/sgns/core/sgns/sgd"
)

// ModelView exposes the capability surface learners need from a Model,
// without learner depending on the model package (which depends on
// learner) — this is what lets Model own the learners without the
// learners owning a reference back.
type ModelView interface {
	LM() lm.LanguageModel
	Sampler() sampling.Strategy
	ContextStrategy() context.Strategy
	Factorization() *factorization.WordContextFactorization
	SGD() *sgd.SGD
	RNG() *rng.Source
}

// SentenceTrainer is satisfied by both SGNSSentenceLearner and
// SubsamplingSGNSSentenceLearner, letting Model select between them at
// construction time without a type switch on every call.
type SentenceTrainer interface {
	SentenceTrain(mv ModelView, words []string) error
}

// generationSource is implemented by language models that recycle indices
// (SpaceSavingLanguageModel); NearestNeighborIndex uses it to build cache
// keys that invalidate themselves the moment a slot changes identity.
type generationSource interface {
	ExternalID(idx int) (uuid.UUID, error)
}

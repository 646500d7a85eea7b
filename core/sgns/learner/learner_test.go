package learner

import (
	"testing"

	"github.com/adalundhe/sgns/core/sgns/context"
	"github.com/adalundhe/sgns/core/sgns/factorization"
	lmpkg "github.com/adalundhe/sgns/core/sgns/lm"
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgns/sampling"
	"github.com/adalundhe/sgns/core/sgns/sgd"
)

// fakeModel is a minimal ModelView used across learner tests.
type fakeModel struct {
	lm   lmpkg.LanguageModel
	samp sampling.Strategy
	ctx  context.Strategy
	fact *factorization.WordContextFactorization
	s    *sgd.SGD
	src  *rng.Source
}

func (f *fakeModel) LM() lmpkg.LanguageModel             { return f.lm }
func (f *fakeModel) Sampler() sampling.Strategy          { return f.samp }
func (f *fakeModel) ContextStrategy() context.Strategy   { return f.ctx }
func (f *fakeModel) Factorization() *factorization.WordContextFactorization { return f.fact }
func (f *fakeModel) SGD() *sgd.SGD                       { return f.s }
func (f *fakeModel) RNG() *rng.Source                    { return f.src }

func newFakeModel(t *testing.T, vocabDim, embeddingDim int, words []string) *fakeModel {
	t.Helper()
	src := rng.New(7)
	naive := lmpkg.NewNaive(1e-3, src)
	for _, w := range words {
		naive.Increment(w)
	}
	fact, err := factorization.New(vocabDim, embeddingDim, true, src)
	if err != nil {
		t.Fatalf("factorization.New: %v", err)
	}
	s, err := sgd.New(1, 0, 0.75, 0.01)
	if err != nil {
		t.Fatalf("sgd.New: %v", err)
	}
	return &fakeModel{
		lm:   naive,
		samp: sampling.NewUniform(src),
		ctx:  context.Static{SymmContext: 2},
		fact: fact,
		s:    s,
		src:  src,
	}
}

package learner

import (
	"math"

	"github.com/adalundhe/sgns/core/sgns/vecmath"
	"github.com/adalundhe/sgns/core/sgnserr"
)

// sigmoid is the logistic function used to turn a dot product into the
// "probability context is real" SGNS trains against.
// Kept local rather than sourced from a third-party numerical library:
// it's a single stdlib math.Exp call.
func sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

// SGNSTokenLearner trains one (target, context) pair against K negative
// samples. It holds no state of its own — every method takes
// the Model capability surface it needs as an explicit ModelView argument,
// so a single zero-value SGNSTokenLearner can serve any number of models.
type SGNSTokenLearner struct{}

// NewTokenLearner constructs an SGNSTokenLearner.
func NewTokenLearner() *SGNSTokenLearner { return &SGNSTokenLearner{} }

// ComputeGradientCoeff returns sigmoid(W[target].C[context]) - label, where
// label is 1 for a true (positive) pair and 0 for a negative sample.
func (t *SGNSTokenLearner) ComputeGradientCoeff(mv ModelView, target, context int, negative bool) float32 {
	f := mv.Factorization()
	dot := vecmath.Dot(f.GetWordEmbedding(target), f.GetContextEmbedding(context))
	label := float32(1)
	if negative {
		label = 0
	}
	return sigmoid(dot) - label
}

// TokenTrain runs one SGD step over the (target, context) pair and k freshly
// drawn negative samples. Context and negative rows are updated
// immediately; the target row accumulates all K+1 contributions and is
// written once, matching word2vec's neu1e accumulation pattern.
func (t *SGNSTokenLearner) TokenTrain(mv ModelView, target, context, k int) error {
	f := mv.Factorization()
	vocab := f.GetVocabDim()
	if target < 0 || target >= vocab || context < 0 || context >= vocab {
		return sgnserr.New(sgnserr.OutOfRange, "SGNSTokenLearner.TokenTrain", "target/context index out of range")
	}
	if k < 0 {
		return sgnserr.New(sgnserr.InvalidConfig, "SGNSTokenLearner.TokenTrain", "k must be non-negative")
	}

	s := mv.SGD()
	rho := float32(s.GetRho(0))

	grad := make([]float32, f.GetEmbeddingDim())
	wTarget := f.GetWordEmbedding(target)

	coeff := t.ComputeGradientCoeff(mv, target, context, false)
	vecmath.ScaleAccumulate(grad, coeff, f.GetContextEmbedding(context))
	vecmath.AxpyInPlace(f.GetContextEmbedding(context), rho*coeff, wTarget)

	sampler := mv.Sampler()
	lmv := mv.LM()
	for i := 0; i < k; i++ {
		negIdx := sampler.SampleIdx(lmv)
		negCoeff := t.ComputeGradientCoeff(mv, target, negIdx, true)
		vecmath.ScaleAccumulate(grad, negCoeff, f.GetContextEmbedding(negIdx))
		vecmath.AxpyInPlace(f.GetContextEmbedding(negIdx), rho*negCoeff, wTarget)
	}

	vecmath.AxpyInPlace(wTarget, rho, grad)
	s.Step(0)
	return nil
}

// ResetWord reinitializes idx's embedding rows and learning-rate schedule,
// used after a Space-Saving eviction hands the slot to a new word. Resets
// the single global dimension-0 schedule.
func (t *SGNSTokenLearner) ResetWord(mv ModelView, idx int) {
	mv.Factorization().ResetRow(idx)
	mv.SGD().Reset(0)
}

// ComputeSimilarity returns the cosine similarity between the word
// embeddings of a and b.
func (t *SGNSTokenLearner) ComputeSimilarity(mv ModelView, a, b int) (float64, error) {
	f := mv.Factorization()
	vocab := f.GetVocabDim()
	if a < 0 || a >= vocab || b < 0 || b >= vocab {
		return 0, sgnserr.New(sgnserr.OutOfRange, "SGNSTokenLearner.ComputeSimilarity", "index out of range")
	}
	return vecmath.CosineSimilarity(f.GetWordEmbedding(a), f.GetWordEmbedding(b)), nil
}

// FindNearestNeighborIdx returns the live word index (excluding i itself)
// whose word embedding has the highest cosine similarity to i's.
func (t *SGNSTokenLearner) FindNearestNeighborIdx(mv ModelView, i int) (int, error) {
	size := mv.LM().Size()
	if i < 0 || i >= size {
		return -1, sgnserr.New(sgnserr.OutOfRange, "SGNSTokenLearner.FindNearestNeighborIdx", "index out of range")
	}
	if size < 2 {
		return -1, sgnserr.New(sgnserr.InvalidConfig, "SGNSTokenLearner.FindNearestNeighborIdx", "vocabulary too small")
	}

	f := mv.Factorization()
	wi := f.GetWordEmbedding(i)
	best, bestSim := -1, -math.MaxFloat64
	for j := 0; j < size; j++ {
		if j == i {
			continue
		}
		sim := vecmath.CosineSimilarity(wi, f.GetWordEmbedding(j))
		if sim > bestSim {
			bestSim, best = sim, j
		}
	}
	return best, nil
}

// ContextContainsOOV reports whether ids (word indices resolved from a
// context window) contains an out-of-vocabulary marker (-1).
func ContextContainsOOV(ids []int) bool {
	for _, id := range ids {
		if id < 0 {
			return true
		}
	}
	return false
}

// FindContextNearestNeighborIdx returns the live word index j maximizing
// sum_{k in wordIDs} log(sigmoid(W[j] . C[k])) — the word whose embedding
// best predicts every context word in wordIDs as a true SGNS pair, not the
// word nearest some averaged context vector.
func (t *SGNSTokenLearner) FindContextNearestNeighborIdx(mv ModelView, wordIDs []int) (int, error) {
	if ContextContainsOOV(wordIDs) || len(wordIDs) == 0 {
		return -1, sgnserr.New(sgnserr.InvalidConfig, "SGNSTokenLearner.FindContextNearestNeighborIdx", "context contains no resolvable word ids")
	}
	f := mv.Factorization()
	size := mv.LM().Size()
	best, bestScore := -1, -math.MaxFloat64
	for j := 0; j < size; j++ {
		wj := f.GetWordEmbedding(j)
		score := float64(0)
		for _, id := range wordIDs {
			dot := vecmath.Dot(wj, f.GetContextEmbedding(id))
			score += math.Log(float64(sigmoid(dot)))
		}
		if score > bestScore {
			bestScore, best = score, j
		}
	}
	if best < 0 {
		return -1, sgnserr.New(sgnserr.InvalidConfig, "SGNSTokenLearner.FindContextNearestNeighborIdx", "empty vocabulary")
	}
	return best, nil
}

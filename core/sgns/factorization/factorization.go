// Package factorization implements the two dense word/context embedding
// tables: flat, optionally SIMD-aligned buffers of
// vocab_dim*actual_embedding_dim float32s each.
package factorization

import (
	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgns/vecmath"
	"github.com/adalundhe/sgns/core/sgnserr"
)

// WordContextFactorization owns the word and context embedding tables.
type WordContextFactorization struct {
	vocabDim           int
	embeddingDim       int
	actualEmbeddingDim int
	align              bool
	wordEmbeddings     *vecmath.AlignedVector
	contextEmbeddings  *vecmath.AlignedVector
	src                *rng.Source
}

// New allocates a factorization for vocabDim words at embeddingDim
// dimensions. Word rows are filled with small uniform values in
// [-0.5/D, 0.5/D) (word2vec convention); context rows start at zero.
func New(vocabDim, embeddingDim int, align bool, src *rng.Source) (*WordContextFactorization, error) {
	if vocabDim <= 0 || embeddingDim <= 0 {
		return nil, sgnserr.New(sgnserr.InvalidConfig, "factorization.New", "vocab_dim and embedding_dim must be positive")
	}
	if src == nil {
		src = rng.Default()
	}

	actual := embeddingDim
	if align {
		granule := vecmath.AlignmentBytes / 4
		actual = vecmath.RoundUp(embeddingDim, granule)
	}

	f := &WordContextFactorization{
		vocabDim:           vocabDim,
		embeddingDim:       embeddingDim,
		actualEmbeddingDim: actual,
		align:              align,
		wordEmbeddings:     vecmath.NewAlignedVector(vocabDim*actual, align),
		contextEmbeddings:  vecmath.NewAlignedVector(vocabDim*actual, align),
		src:                src,
	}
	f.initWordEmbeddings()
	return f, nil
}

func (f *WordContextFactorization) initWordEmbeddings() {
	bound := 0.5 / float64(f.embeddingDim)
	for row := 0; row < f.vocabDim; row++ {
		vec := f.GetWordEmbedding(row)
		for k := range vec {
			vec[k] = float32(f.src.Float64()*2*bound - bound)
		}
	}
}

// GetWordEmbedding returns a view of the first EmbeddingDim floats of
// word row idx.
func (f *WordContextFactorization) GetWordEmbedding(idx int) []float32 {
	off := idx * f.actualEmbeddingDim
	return f.wordEmbeddings.Data[off : off+f.embeddingDim]
}

// GetContextEmbedding returns a view of the first EmbeddingDim floats of
// context row idx.
func (f *WordContextFactorization) GetContextEmbedding(idx int) []float32 {
	off := idx * f.actualEmbeddingDim
	return f.contextEmbeddings.Data[off : off+f.embeddingDim]
}

// ResetRow re-initializes word row idx to the same uniform scheme as
// construction and zeroes context row idx (used by SGNSTokenLearner.ResetWord
// on Space-Saving eviction).
func (f *WordContextFactorization) ResetRow(idx int) {
	bound := 0.5 / float64(f.embeddingDim)
	w := f.GetWordEmbedding(idx)
	for k := range w {
		w[k] = float32(f.src.Float64()*2*bound - bound)
	}
	vecmath.Zero(f.GetContextEmbedding(idx))
}

// GetEmbeddingDim returns the semantically meaningful row width.
func (f *WordContextFactorization) GetEmbeddingDim() int { return f.embeddingDim }

// GetActualEmbeddingDim returns the padded row stride.
func (f *WordContextFactorization) GetActualEmbeddingDim() int { return f.actualEmbeddingDim }

// GetVocabDim returns the number of rows allocated.
func (f *WordContextFactorization) GetVocabDim() int { return f.vocabDim }

// Compact rewrites rows in place according to remap (old index -> new
// index, -1 meaning dropped), used after NaiveLanguageModel.Truncate or
// Sort to keep embedding rows aligned with the LM's index space.
func (f *WordContextFactorization) Compact(remap []int) {
	newSize := 0
	for _, v := range remap {
		if v >= newSize {
			newSize = v + 1
		}
	}
	if newSize == 0 {
		return
	}

	newWord := vecmath.NewAlignedVector(f.vocabDim*f.actualEmbeddingDim, f.align)
	newContext := vecmath.NewAlignedVector(f.vocabDim*f.actualEmbeddingDim, f.align)

	for oldIdx, newIdx := range remap {
		if newIdx < 0 {
			continue
		}
		srcOff := oldIdx * f.actualEmbeddingDim
		dstOff := newIdx * f.actualEmbeddingDim
		copy(newWord.Data[dstOff:dstOff+f.actualEmbeddingDim], f.wordEmbeddings.Data[srcOff:srcOff+f.actualEmbeddingDim])
		copy(newContext.Data[dstOff:dstOff+f.actualEmbeddingDim], f.contextEmbeddings.Data[srcOff:srcOff+f.actualEmbeddingDim])
	}

	f.wordEmbeddings = newWord
	f.contextEmbeddings = newContext
}

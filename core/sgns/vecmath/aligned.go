// Package vecmath provides SIMD-friendly aligned vector storage and the
// dot-product / scale-and-accumulate kernels the factorization and token
// learner run on their hot paths, plus the count-to-probability
// normalization used by the empirical and reservoir sampling strategies.
package vecmath

import (
	"math"
	"unsafe"

	"github.com/viterin/vek/vek32"
)

// AlignmentBytes is the SIMD alignment granule rows are padded to when
// alignment is enabled via the align_each_embedding option.
const AlignmentBytes = 32

const float32Size = 4

// AlignedVector is a contiguous buffer of float32s whose first element sits
// on an AlignmentBytes boundary. It backs the flat embedding tables in
// factorization.WordContextFactorization.
type AlignedVector struct {
	backing []float32 // over-allocated; Data is a sub-slice of this
	Data    []float32
}

// NewAlignedVector allocates a buffer of n float32s aligned to
// AlignmentBytes. If align is false, no padding/offsetting is performed and
// Data aliases a plain make([]float32, n).
func NewAlignedVector(n int, align bool) *AlignedVector {
	if !align {
		buf := make([]float32, n)
		return &AlignedVector{backing: buf, Data: buf}
	}
	granule := AlignmentBytes / float32Size
	backing := make([]float32, n+granule)
	off := alignmentOffset(backing, AlignmentBytes)
	return &AlignedVector{backing: backing, Data: backing[off : off+n]}
}

func alignmentOffset(buf []float32, alignBytes uintptr) int {
	if len(buf) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	rem := addr % alignBytes
	if rem == 0 {
		return 0
	}
	pad := alignBytes - rem
	return int(pad / float32Size)
}

// RoundUp rounds n up to the next multiple of granule elements. Used to
// compute actual_embedding_dim from embedding_dim.
func RoundUp(n, granule int) int {
	if granule <= 0 || n%granule == 0 {
		return n
	}
	return ((n / granule) + 1) * granule
}

// Dot computes the dot product of two equal-length float32 rows using the
// SIMD kernel.
func Dot(a, b []float32) float32 {
	return vek32.Dot(a, b)
}

// AxpyInPlace computes x[k] -= alpha * y[k] for k in [0, len(x)), the shape
// every embedding-row update in the token learner reduces to.
func AxpyInPlace(x []float32, alpha float32, y []float32) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	for k := 0; k < n; k++ {
		x[k] -= alpha * y[k]
	}
}

// ScaleAccumulate computes acc[k] += alpha * y[k] for k in [0, len(acc)),
// used to build the target-word gradient across the positive pair and all
// K negatives before a single write to W[target].
func ScaleAccumulate(acc []float32, alpha float32, y []float32) {
	n := len(acc)
	if len(y) < n {
		n = len(y)
	}
	for k := 0; k < n; k++ {
		acc[k] += alpha * y[k]
	}
}

// Zero clears a row to zeroes.
func Zero(x []float32) {
	for i := range x {
		x[i] = 0
	}
}

// CosineSimilarity returns the cosine similarity between two equal-length
// rows. Returns 0 if either is the zero vector.
func CosineSimilarity(a, b []float32) float64 {
	dot := float64(Dot(a, b))
	magA := float64(vek32.Dot(a, a))
	magB := float64(vek32.Dot(b, b))
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

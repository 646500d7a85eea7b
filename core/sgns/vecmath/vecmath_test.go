package vecmath

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func addrOf(v []float32) uintptr {
	if len(v) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&v[0]))
}

func TestAlignedVector_Alignment(t *testing.T) {
	v := NewAlignedVector(37, true)
	require.Len(t, v.Data, 37)
	require.Zero(t, addrOf(v.Data)%AlignmentBytes)
}

func TestAlignedVector_Unaligned(t *testing.T) {
	v := NewAlignedVector(5, false)
	require.Len(t, v.Data, 5)
}

func TestRoundUp(t *testing.T) {
	require.Equal(t, 8, RoundUp(5, 8))
	require.Equal(t, 8, RoundUp(8, 8))
	require.Equal(t, 16, RoundUp(9, 8))
}

func TestDotAndAxpy(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{4, 5, 6}
	require.InDelta(t, 32.0, Dot(a, b), 1e-6)

	x := []float32{1, 1, 1}
	AxpyInPlace(x, 2, []float32{1, 1, 1})
	require.Equal(t, []float32{-1, -1, -1}, x)
}

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	// property 3: cosine(W[i], W[i]) == 1.0 for nonzero vectors.
	v := []float32{0.3, -0.1, 0.9}
	require.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-6)
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	require.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}

func TestCountNormalizer_SumsToOne(t *testing.T) {
	n := NewCountNormalizer()
	weights := n.Normalize([]uint64{5, 3, 1, 0})
	var sum float64
	for _, w := range weights {
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestCountNormalizer_EmptyCounts(t *testing.T) {
	n := NewCountNormalizer()
	require.Empty(t, n.Normalize(nil))
}

func TestCountNormalizer_AllZero(t *testing.T) {
	n := NewCountNormalizer()
	weights := n.Normalize([]uint64{0, 0, 0})
	require.InDelta(t, 1.0/3.0, weights[0], 1e-9)
}

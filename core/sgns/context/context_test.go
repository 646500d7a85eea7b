package context

import (
	"testing"

	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/stretchr/testify/require"
)

func TestStatic_S3(t *testing.T) {
	// S3: symm_context=3, sentence length 5.
	s := Static{SymmContext: 3}

	l, r := s.Size(2, 2) // position 2
	require.Equal(t, 2, l)
	require.Equal(t, 2, r)

	l, r = s.Size(0, 4) // position 0
	require.Equal(t, 0, l)
	require.Equal(t, 3, r)
}

func TestStatic_ZeroWindow(t *testing.T) {
	s := Static{SymmContext: 0}
	l, r := s.Size(5, 5)
	require.Equal(t, 0, l)
	require.Equal(t, 0, r)
}

func TestDynamic_NeverExceedsBounds(t *testing.T) {
	d := NewDynamic(3, rng.New(11))
	for i := 0; i < 200; i++ {
		l, r := d.Size(2, 1)
		require.LessOrEqual(t, l, 2)
		require.LessOrEqual(t, r, 1)
		require.LessOrEqual(t, l, 3)
		require.LessOrEqual(t, r, 3)
		require.GreaterOrEqual(t, l, 0)
		require.GreaterOrEqual(t, r, 0)
	}
}

func TestDynamic_ZeroWindow(t *testing.T) {
	d := NewDynamic(0, rng.New(1))
	l, r := d.Size(5, 5)
	require.Equal(t, 0, l)
	require.Equal(t, 0, r)
}

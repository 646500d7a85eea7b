package corpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceStream_YieldsInOrderThenExhausts(t *testing.T) {
	s := NewSliceStream([][]string{
		{"the", "quick", "fox"},
		{"brown", "dog"},
	})

	sentence, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, []string{"the", "quick", "fox"}, sentence)

	sentence, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, []string{"brown", "dog"}, sentence)

	_, ok = s.Next()
	require.False(t, ok)
}

func TestSliceStream_EmptyStreamExhaustsImmediately(t *testing.T) {
	s := NewSliceStream(nil)
	_, ok := s.Next()
	require.False(t, ok)
}

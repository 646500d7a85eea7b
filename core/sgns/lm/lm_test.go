package lm

import (
	"testing"

	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/stretchr/testify/require"
)

func TestNaiveLanguageModel_Basic(t *testing.T) {
	// S1: ingest ["a","b","a","c","a","b"]
	m := NewNaive(DefaultSubsampleThreshold, rng.New(1))
	for _, w := range []string{"a", "b", "a", "c", "a", "b"} {
		m.Increment(w)
	}

	require.Equal(t, 3, m.Size())
	require.Equal(t, uint64(6), m.Total())

	a := m.Lookup("a")
	b := m.Lookup("b")
	c := m.Lookup("c")

	countA, err := m.Count(a)
	require.NoError(t, err)
	require.Equal(t, uint64(3), countA)

	countB, err := m.Count(b)
	require.NoError(t, err)
	require.Equal(t, uint64(2), countB)

	countC, err := m.Count(c)
	require.NoError(t, err)
	require.Equal(t, uint64(1), countC)

	require.Equal(t, []uint64{3, 2, 1}, m.OrderedCounts())
}

func TestNaiveLanguageModel_ReverseLookupRoundTrip(t *testing.T) {
	m := NewNaive(DefaultSubsampleThreshold, rng.New(1))
	m.Increment("hello")
	m.Increment("world")

	for i := 0; i < m.Size(); i++ {
		w, err := m.ReverseLookup(i)
		require.NoError(t, err)
		require.Equal(t, i, m.Lookup(w))
	}
}

func TestNaiveLanguageModel_ReverseLookupOutOfRange(t *testing.T) {
	m := NewNaive(DefaultSubsampleThreshold, rng.New(1))
	m.Increment("only")

	_, err := m.ReverseLookup(5)
	require.Error(t, err)
}

func TestNaiveLanguageModel_SumInvariant(t *testing.T) {
	m := NewNaive(DefaultSubsampleThreshold, rng.New(7))
	words := []string{"x", "y", "x", "x", "z", "y", "w"}
	for _, w := range words {
		m.Increment(w)
	}

	var sum uint64
	for _, c := range m.Counts() {
		sum += c
	}
	require.Equal(t, m.Total(), sum)
	require.Equal(t, 4, m.Size())
}

func TestNaiveLanguageModel_Truncate(t *testing.T) {
	m := NewNaive(DefaultSubsampleThreshold, rng.New(1))
	for _, w := range []string{"a", "a", "a", "b", "b", "c"} {
		m.Increment(w)
	}
	aIdx, bIdx, cIdx := m.Lookup("a"), m.Lookup("b"), m.Lookup("c")

	remap := m.Truncate(2)
	require.LessOrEqual(t, m.Size(), 2)
	require.NotEqual(t, -1, remap[aIdx])
	require.NotEqual(t, -1, remap[bIdx])
	require.Equal(t, -1, remap[cIdx])
}

func TestSpaceSavingLanguageModel_Eviction(t *testing.T) {
	// S2: capacity=2, ingest ["a","b","a","c"]
	m := NewSpaceSaving(2, DefaultSubsampleThreshold, rng.New(1))
	ejectedIdx, ejectedWord := -2, ""
	for _, w := range []string{"a", "b", "a", "c"} {
		ejectedIdx, ejectedWord = m.Increment(w)
	}

	require.GreaterOrEqual(t, ejectedIdx, 0)
	require.Equal(t, "b", ejectedWord)
	require.LessOrEqual(t, m.Size(), 2)
	require.Equal(t, uint64(4), m.Total())

	aIdx := m.Lookup("a")
	cIdx := m.Lookup("c")
	require.NotEqual(t, -1, aIdx)
	require.NotEqual(t, -1, cIdx)

	countA, _ := m.Count(aIdx)
	countC, _ := m.Count(cIdx)
	require.Equal(t, uint64(2), countA) // "a" occurs twice in the input
	require.Equal(t, uint64(2), countC) // 1 (b's count) + 1 overestimate
}

func TestSpaceSavingLanguageModel_NeverExceedsCapacity(t *testing.T) {
	m := NewSpaceSaving(3, DefaultSubsampleThreshold, rng.New(3))
	words := []string{"a", "b", "c", "d", "e", "f", "a", "d", "z"}
	for _, w := range words {
		m.Increment(w)
		require.LessOrEqual(t, m.Size(), m.Capacity())
	}
}

func TestSpaceSavingLanguageModel_EvictionAlwaysReturnsIndexAfterFull(t *testing.T) {
	m := NewSpaceSaving(2, DefaultSubsampleThreshold, rng.New(9))
	m.Increment("a")
	m.Increment("b")
	for _, w := range []string{"c", "d", "e"} {
		idx, word := m.Increment(w)
		require.GreaterOrEqual(t, idx, 0)
		require.NotEmpty(t, word)
	}
}

func TestSpaceSavingLanguageModel_Truncate(t *testing.T) {
	m := NewSpaceSaving(8, DefaultSubsampleThreshold, rng.New(1))
	for _, w := range []string{"a", "a", "a", "b", "b", "c"} {
		m.Increment(w)
	}
	aIdx, bIdx, cIdx := m.Lookup("a"), m.Lookup("b"), m.Lookup("c")
	aExtID, _ := m.ExternalID(aIdx)

	remap := m.Truncate(2)
	require.LessOrEqual(t, m.Size(), 2)
	require.NotEqual(t, -1, remap[aIdx])
	require.NotEqual(t, -1, remap[bIdx])
	require.Equal(t, -1, remap[cIdx])

	newAIdx := remap[aIdx]
	newAExtID, err := m.ExternalID(newAIdx)
	require.NoError(t, err)
	require.Equal(t, aExtID, newAExtID) // survivor keeps its identity across the remap

	countA, err := m.Count(newAIdx)
	require.NoError(t, err)
	require.Equal(t, uint64(3), countA)

	// the freed slot is usable again, exactly like a slot never filled
	// since construction.
	m.Increment("d")
	require.NotEqual(t, -1, m.Lookup("d"))
	require.LessOrEqual(t, m.Size(), m.Capacity())
}

func TestSpaceSavingLanguageModel_ExternalIDChangesOnEviction(t *testing.T) {
	m := NewSpaceSaving(1, DefaultSubsampleThreshold, rng.New(2))
	m.Increment("a")
	before, err := m.ExternalID(0)
	require.NoError(t, err)

	m.Increment("b") // evicts "a" from slot 0
	after, err := m.ExternalID(0)
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

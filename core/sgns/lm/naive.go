package lm

import (
	"sort"

	"github.com/adalundhe/sgns/core/sgns/rng"
)

// NaiveLanguageModel is an exact streaming vocabulary: every
// distinct word gets its own dense index, counts are exact, and no
// eviction ever happens.
type NaiveLanguageModel struct {
	subsampleThreshold float64
	total              uint64
	wordToIdx          map[string]int
	idxToWord          []string
	counters           []uint64
	src                *rng.Source
}

// NewNaive constructs an empty NaiveLanguageModel with the given subsample
// threshold, drawing subsampling randomness from src.
func NewNaive(subsampleThreshold float64, src *rng.Source) *NaiveLanguageModel {
	if src == nil {
		src = rng.Default()
	}
	return &NaiveLanguageModel{
		subsampleThreshold: subsampleThreshold,
		wordToIdx:          make(map[string]int),
		src:                src,
	}
}

// Increment ingests one occurrence of word. NaiveLanguageModel never
// evicts, so the returned ejected index is always -1.
func (m *NaiveLanguageModel) Increment(word string) (int, string) {
	m.total++
	if idx, ok := m.wordToIdx[word]; ok {
		m.counters[idx]++
		return -1, ""
	}
	idx := len(m.idxToWord)
	m.wordToIdx[word] = idx
	m.idxToWord = append(m.idxToWord, word)
	m.counters = append(m.counters, 1)
	return -1, ""
}

// Lookup returns word's index, or -1 if word is unknown.
func (m *NaiveLanguageModel) Lookup(word string) int {
	if idx, ok := m.wordToIdx[word]; ok {
		return idx
	}
	return -1
}

// ReverseLookup returns the word at idx.
func (m *NaiveLanguageModel) ReverseLookup(idx int) (string, error) {
	if idx < 0 || idx >= len(m.idxToWord) {
		return "", outOfRange("NaiveLanguageModel.ReverseLookup")
	}
	return m.idxToWord[idx], nil
}

// Count returns the exact occurrence count for idx.
func (m *NaiveLanguageModel) Count(idx int) (uint64, error) {
	if idx < 0 || idx >= len(m.counters) {
		return 0, outOfRange("NaiveLanguageModel.Count")
	}
	return m.counters[idx], nil
}

// Counts returns the live counter vector in index order. Callers must not
// mutate the returned slice.
func (m *NaiveLanguageModel) Counts() []uint64 { return m.counters }

// OrderedCounts returns counts sorted descending.
func (m *NaiveLanguageModel) OrderedCounts() []uint64 { return ordered(m.counters) }

// Size returns the current distinct vocabulary size.
func (m *NaiveLanguageModel) Size() int { return len(m.idxToWord) }

// Total returns the sum of all observed tokens.
func (m *NaiveLanguageModel) Total() uint64 { return m.total }

// Subsample reports whether idx should be retained under frequency-based
// subsampling.
func (m *NaiveLanguageModel) Subsample(idx int) (bool, error) {
	if idx < 0 || idx >= len(m.counters) {
		return false, outOfRange("NaiveLanguageModel.Subsample")
	}
	return subsampleKeep(m.counters[idx], m.total, m.subsampleThreshold, m.src), nil
}

// Sort reorders the vocabulary by descending count, returning the
// old-index -> new-index permutation so callers can migrate parallel state
// (e.g. embedding rows).
func (m *NaiveLanguageModel) Sort() []int {
	n := len(m.idxToWord)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return m.counters[order[a]] > m.counters[order[b]]
	})

	newWords := make([]string, n)
	newCounters := make([]uint64, n)
	remap := make([]int, n) // remap[oldIdx] = newIdx
	for newIdx, oldIdx := range order {
		newWords[newIdx] = m.idxToWord[oldIdx]
		newCounters[newIdx] = m.counters[oldIdx]
		remap[oldIdx] = newIdx
	}
	m.idxToWord = newWords
	m.counters = newCounters
	for word, oldIdx := range m.wordToIdx {
		m.wordToIdx[word] = remap[oldIdx]
	}
	return remap
}

// Truncate drops the lowest-count entries until Size() <= maxSize,
// renumbering survivors densely while preserving their relative order. It
// returns remap where remap[oldIdx] is the survivor's new index, or -1 if
// oldIdx was dropped. Callers (Model.Truncate) use remap to compact parallel
// embedding rows before treating the LM's own tables as authoritative.
func (m *NaiveLanguageModel) Truncate(maxSize int) []int {
	n := len(m.idxToWord)
	remap := make([]int, n)
	if maxSize >= n {
		for i := range remap {
			remap[i] = i
		}
		return remap
	}
	if maxSize < 0 {
		maxSize = 0
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Stable sort by descending count so ties keep original relative order,
	// then keep the top maxSize by count while preserving original index
	// order among survivors.
	sort.SliceStable(order, func(a, b int) bool {
		return m.counters[order[a]] > m.counters[order[b]]
	})
	keep := make(map[int]bool, maxSize)
	for _, idx := range order[:maxSize] {
		keep[idx] = true
	}

	newWords := make([]string, 0, maxSize)
	newCounters := make([]uint64, 0, maxSize)
	for i := range remap {
		remap[i] = -1
	}
	for oldIdx := 0; oldIdx < n; oldIdx++ {
		if !keep[oldIdx] {
			continue
		}
		newIdx := len(newWords)
		newWords = append(newWords, m.idxToWord[oldIdx])
		newCounters = append(newCounters, m.counters[oldIdx])
		remap[oldIdx] = newIdx
	}

	m.idxToWord = newWords
	m.counters = newCounters
	m.wordToIdx = make(map[string]int, len(newWords))
	for idx, w := range newWords {
		m.wordToIdx[w] = idx
	}
	return remap
}

package lm

import (
	"sort"

	"github.com/google/uuid"

	"github.com/adalundhe/sgns/core/sgns/rng"
)

// SpaceSavingLanguageModel is a bounded-memory approximate counter
// (Metwally et al.), holding at most Capacity live entries.
//
// Design decision (see DESIGN.md): the `int` index this type hands out
// through Increment/Lookup/ReverseLookup/Count is the *internal slot*
// address, dense in [0, capacity), since an eviction replaces the evicted
// slot at the same index only if the index space returned to callers is
// the physical slot, not an ever-growing identity, and the factorization's
// fixed vocab_dim rows require a bounded index space to address
// regardless. The external-id concept is retained as supplemental bookkeeping via
// ExternalID, a monotonically increasing per-slot generation counter used
// to detect staleness (e.g. a cache keyed on (idx, externalID) invalidates
// itself the moment a slot is recycled) without being the address space
// itself. The generation counter is a UUIDv7 (time-ordered) rather than a
// plain incrementing integer, so an external id sorts by assignment time
// even if compared outside this process.
type SpaceSavingLanguageModel struct {
	subsampleThreshold float64
	capacity           int
	total              uint64
	size               int
	wordToIdx          map[string]int
	words              []string
	counters           []uint64
	externalID         []uuid.UUID
	minIdx             int
	src                *rng.Source
}

// NewSpaceSaving constructs an empty SpaceSavingLanguageModel with the
// given capacity and subsample threshold.
func NewSpaceSaving(capacity int, subsampleThreshold float64, src *rng.Source) *SpaceSavingLanguageModel {
	if src == nil {
		src = rng.Default()
	}
	return &SpaceSavingLanguageModel{
		subsampleThreshold: subsampleThreshold,
		capacity:           capacity,
		wordToIdx:          make(map[string]int, capacity),
		words:              make([]string, capacity),
		counters:           make([]uint64, capacity),
		externalID:         make([]uuid.UUID, capacity),
		minIdx:             0,
		src:                src,
	}
}

// Capacity returns the configured maximum number of live entries.
func (m *SpaceSavingLanguageModel) Capacity() int { return m.capacity }

// Increment ingests one occurrence of word. If the vocabulary
// is full and word is unknown, the lowest-count slot is evicted and
// overwritten (its counter seeded with count+1, the Space-Saving
// overestimate); the evicted slot's index and former word are returned.
func (m *SpaceSavingLanguageModel) Increment(word string) (int, string) {
	m.total++

	if idx, ok := m.wordToIdx[word]; ok {
		m.counters[idx]++
		m.refreshMinAfter(idx)
		return -1, ""
	}

	if m.size < m.capacity {
		idx := m.size
		m.size++
		m.words[idx] = word
		m.counters[idx] = 1
		m.externalID[idx] = newExternalID()
		m.wordToIdx[word] = idx
		m.refreshMinAfter(idx)
		return -1, ""
	}

	victimIdx := m.minIdx
	victimWord := m.words[victimIdx]
	delete(m.wordToIdx, victimWord)

	m.words[victimIdx] = word
	m.counters[victimIdx] = m.counters[victimIdx] + 1
	m.externalID[victimIdx] = newExternalID()
	m.wordToIdx[word] = victimIdx

	m.refreshMinAfter(victimIdx)
	return victimIdx, victimWord
}

// refreshMinAfter recomputes minIdx if slot's count is no longer the
// unique minimum after being touched, scanning live slots. Ties break
// toward the lowest slot index.
func (m *SpaceSavingLanguageModel) refreshMinAfter(touched int) {
	if m.size == 0 {
		m.minIdx = 0
		return
	}
	if touched != m.minIdx && m.counters[touched] >= m.counters[m.minIdx] {
		return
	}
	best := 0
	for i := 1; i < m.size; i++ {
		if m.counters[i] < m.counters[best] {
			best = i
		}
	}
	m.minIdx = best
}

// Lookup returns word's slot index, or -1 if word is not currently tracked.
func (m *SpaceSavingLanguageModel) Lookup(word string) int {
	if idx, ok := m.wordToIdx[word]; ok {
		return idx
	}
	return -1
}

// ReverseLookup returns the word occupying slot idx.
func (m *SpaceSavingLanguageModel) ReverseLookup(idx int) (string, error) {
	if idx < 0 || idx >= m.size {
		return "", outOfRange("SpaceSavingLanguageModel.ReverseLookup")
	}
	return m.words[idx], nil
}

// Count returns the (possibly overestimated) count at slot idx.
func (m *SpaceSavingLanguageModel) Count(idx int) (uint64, error) {
	if idx < 0 || idx >= m.size {
		return 0, outOfRange("SpaceSavingLanguageModel.Count")
	}
	return m.counters[idx], nil
}

// Counts returns the live counter vector across occupied slots.
func (m *SpaceSavingLanguageModel) Counts() []uint64 { return m.counters[:m.size] }

// OrderedCounts returns counts sorted descending.
func (m *SpaceSavingLanguageModel) OrderedCounts() []uint64 { return ordered(m.counters[:m.size]) }

// Size returns the number of live entries (<= capacity).
func (m *SpaceSavingLanguageModel) Size() int { return m.size }

// Total returns the sum of all observed tokens, including those absorbed
// by eviction overestimates.
func (m *SpaceSavingLanguageModel) Total() uint64 { return m.total }

// Subsample reports whether idx should be retained under frequency-based
// subsampling.
func (m *SpaceSavingLanguageModel) Subsample(idx int) (bool, error) {
	if idx < 0 || idx >= m.size {
		return false, outOfRange("SpaceSavingLanguageModel.Subsample")
	}
	return subsampleKeep(m.counters[idx], m.total, m.subsampleThreshold, m.src), nil
}

// ExternalID returns the generation id currently occupying slot idx — it
// changes every time the slot is (re)assigned to a word, and never repeats.
// Supplemental to the core LanguageModel surface; used by callers (e.g.
// learner.NearestNeighborIndex) that want to detect whether a cached index
// still refers to the word it was cached for.
func (m *SpaceSavingLanguageModel) ExternalID(idx int) (uuid.UUID, error) {
	if idx < 0 || idx >= m.size {
		return uuid.UUID{}, outOfRange("SpaceSavingLanguageModel.ExternalID")
	}
	return m.externalID[idx], nil
}

// Truncate drops the lowest-count live slots until Size() <= maxSize,
// renumbering survivors densely while preserving their relative order and
// retaining each survivor's existing ExternalID. It returns remap where
// remap[oldIdx] is the survivor's new index, or -1 if oldIdx was dropped,
// the same contract as NaiveLanguageModel.Truncate. Freed slots beyond the
// new size remain available for future Increment calls exactly as they
// were after construction.
func (m *SpaceSavingLanguageModel) Truncate(maxSize int) []int {
	n := m.size
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
	sort.SliceStable(order, func(a, b int) bool {
		return m.counters[order[a]] > m.counters[order[b]]
	})
	keep := make(map[int]bool, maxSize)
	for _, idx := range order[:maxSize] {
		keep[idx] = true
	}

	newWords := make([]string, m.capacity)
	newCounters := make([]uint64, m.capacity)
	newExternalID := make([]uuid.UUID, m.capacity)
	for i := range remap {
		remap[i] = -1
	}
	newSize := 0
	for oldIdx := 0; oldIdx < n; oldIdx++ {
		if !keep[oldIdx] {
			continue
		}
		newIdx := newSize
		newWords[newIdx] = m.words[oldIdx]
		newCounters[newIdx] = m.counters[oldIdx]
		newExternalID[newIdx] = m.externalID[oldIdx]
		remap[oldIdx] = newIdx
		newSize++
	}

	m.words = newWords
	m.counters = newCounters
	m.externalID = newExternalID
	m.wordToIdx = make(map[string]int, newSize)
	for idx := 0; idx < newSize; idx++ {
		m.wordToIdx[m.words[idx]] = idx
	}
	m.size = newSize
	m.minIdx = 0
	m.refreshMinAfter(0)
	return remap
}

// newExternalID mints a time-ordered external id for a freshly (re)assigned
// slot. uuid.NewV7 only errors if the system clock is unavailable; falling
// back to a random v4 keeps Increment from ever failing on that account.
func newExternalID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

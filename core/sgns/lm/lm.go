// Package lm implements the streaming vocabulary models this training core
// runs on: an exact NaiveLanguageModel and a bounded-memory approximate
// SpaceSavingLanguageModel, both satisfying the LanguageModel capability
// set {increment, lookup, counts, size, total, subsample}.
package lm

import (
	"math"
	"sort"

	"github.com/adalundhe/sgns/core/sgns/rng"
	"github.com/adalundhe/sgns/core/sgnserr"
)

// DefaultSubsampleThreshold is the default value for subsample_threshold.
const DefaultSubsampleThreshold = 1e-3

// LanguageModel is the capability set every variant satisfies.
type LanguageModel interface {
	// Increment ingests one occurrence of word, returning the ejected
	// (index, word) pair if ingestion evicted an existing entry, or
	// (-1, "") otherwise.
	Increment(word string) (ejectedIdx int, ejectedWord string)
	Lookup(word string) int
	ReverseLookup(idx int) (string, error)
	Count(idx int) (uint64, error)
	Counts() []uint64
	OrderedCounts() []uint64
	Size() int
	Total() uint64
	Subsample(idx int) (bool, error)
}

// subsampleKeep returns true (retain) with probability
// min(1, sqrt(threshold/f)) where f is the relative frequency.
func subsampleKeep(count, total uint64, threshold float64, src *rng.Source) bool {
	if total == 0 || count == 0 {
		return true
	}
	f := float64(count) / float64(total)
	if f <= 0 {
		return true
	}
	ratio := threshold / f
	if ratio < 0 {
		return true
	}
	p := math.Sqrt(ratio)
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// ordered returns counts sorted descending, leaving the input untouched.
func ordered(counts []uint64) []uint64 {
	out := make([]uint64, len(counts))
	copy(out, counts)
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

func outOfRange(op string) error {
	return sgnserr.New(sgnserr.OutOfRange, op, "index out of range")
}

// Package context implements the context-window selectors this training
// core trains against: Static returns a fixed symmetric window, Dynamic
// draws a uniform window size per call (word2vec's "dynamic window"
// trick).
package context

import "github.com/adalundhe/sgns/core/sgns/rng"

// Strategy chooses a (left, right) context window given how many positions
// are actually available on each side.
type Strategy interface {
	// Size returns (left, right), never exceeding (availLeft, availRight)
	// or the configured symmetric window.
	Size(availLeft, availRight int) (int, int)
}

// Static always returns min(S, avail) on each side.
type Static struct {
	SymmContext int
}

// Size implements Strategy.
func (s Static) Size(availLeft, availRight int) (int, int) {
	if s.SymmContext == 0 {
		return 0, 0
	}
	return min(s.SymmContext, availLeft), min(s.SymmContext, availRight)
}

// Dynamic draws window size s uniformly from [1, S] on every call, then
// returns min(s, avail) on each side.
type Dynamic struct {
	SymmContext int
	src         *rng.Source
}

// NewDynamic constructs a Dynamic context strategy drawing window sizes
// from src.
func NewDynamic(symmContext int, src *rng.Source) *Dynamic {
	if src == nil {
		src = rng.Default()
	}
	return &Dynamic{SymmContext: symmContext, src: src}
}

// Size implements Strategy.
func (d *Dynamic) Size(availLeft, availRight int) (int, int) {
	if d.SymmContext == 0 {
		return 0, 0
	}
	s := d.src.IntRange(1, d.SymmContext)
	return min(s, availLeft), min(s, availRight)
}

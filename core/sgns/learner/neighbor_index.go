package learner

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"

	"github.com/adalundhe/sgns/core/sgnserr"
)

// neighborKey identifies a cached nearest-neighbor result. generation is
// the word's external id when the backing language model recycles slots
// (SpaceSavingLanguageModel); a cache entry keyed by (idx, generation)
// invalidates itself automatically the moment idx is evicted and reused by
// a different word, since the new occupant gets a new external id.
type neighborKey struct {
	idx        int
	generation uuid.UUID
}

// NearestNeighborIndex is a read-side LRU cache over
// SGNSTokenLearner.FindNearestNeighborIdx, for inspection workloads that
// repeatedly query the same handful of words while training continues
// elsewhere. It is not part of the
// training core's correctness surface: a cache miss always falls through
// to a live scan, so staleness only costs a slightly outdated answer
// between invalidations, never a wrong one about vocabulary membership.
type NearestNeighborIndex struct {
	token *SGNSTokenLearner
	cache *lru.Cache[neighborKey, int]
}

// NewNearestNeighborIndex constructs a NearestNeighborIndex backed by an
// LRU of the given size.
func NewNearestNeighborIndex(token *SGNSTokenLearner, size int) (*NearestNeighborIndex, error) {
	if size <= 0 {
		return nil, sgnserr.New(sgnserr.InvalidConfig, "learner.NewNearestNeighborIndex", "size must be positive")
	}
	c, err := lru.New[neighborKey, int](size)
	if err != nil {
		return nil, sgnserr.Wrap(sgnserr.InvalidConfig, "learner.NewNearestNeighborIndex", err)
	}
	return &NearestNeighborIndex{token: token, cache: c}, nil
}

func (n *NearestNeighborIndex) key(mv ModelView, idx int) neighborKey {
	if gs, ok := mv.LM().(generationSource); ok {
		if gen, err := gs.ExternalID(idx); err == nil {
			return neighborKey{idx: idx, generation: gen}
		}
	}
	return neighborKey{idx: idx, generation: uuid.UUID{}}
}

// FindNearestNeighborIdx returns the cached nearest neighbor for idx if
// present and still fresh, otherwise computes and caches it.
func (n *NearestNeighborIndex) FindNearestNeighborIdx(mv ModelView, idx int) (int, error) {
	key := n.key(mv, idx)
	if v, ok := n.cache.Get(key); ok {
		return v, nil
	}
	result, err := n.token.FindNearestNeighborIdx(mv, idx)
	if err != nil {
		return -1, err
	}
	n.cache.Add(key, result)
	return result, nil
}

// Invalidate drops idx's cached entry, used by callers that know training
// just touched idx's embedding row.
func (n *NearestNeighborIndex) Invalidate(idx int) {
	for _, k := range n.cache.Keys() {
		if k.idx == idx {
			n.cache.Remove(k)
		}
	}
}

// InvalidateAll clears the cache.
func (n *NearestNeighborIndex) InvalidateAll() {
	n.cache.Purge()
}

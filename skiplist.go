package coredsa

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SKIPLIST: A Probabilistic Ordered Map
// ═══════════════════════════════════════════════════════════════════════════════
// A skip list keeps keys in sorted order using towers of forward pointers
// instead of tree rotations: every node has a randomly chosen height, and a
// node of height h is linked into levels 0 through h. Level 0 holds every
// key; each level above it holds roughly half as many, so searching drops a
// level whenever it can't advance any further — an express lane over the
// sorted list below it.
//
// RANDOM HEIGHT:
// --------------
// A new node's height comes from a sequence of coin flips: start at height
// 0, and keep incrementing while a fresh uniform draw is less than the
// configured promotion probability p (and the ceiling MaxLevel hasn't been
// hit). With p = 0.5 that's the classic "50% stay at height 0, 25% reach
// height 1, 12.5% reach height 2, …" distribution that gives O(log n)
// expected search.
// ═══════════════════════════════════════════════════════════════════════════════

const defaultMaxLevel = 65535

// SkipListConfig tunes a SkipList's promotion behavior and random source.
type SkipListConfig struct {
	Fraction float64 // promotion probability p, in (0, 1)
	MaxLevel int      // ceiling on tower height
	Sampler  Sampler  // uniform [0, 1) source; defaults to NewDefaultSampler()
}

// DefaultSkipListConfig returns p = 0.5 with a generous height ceiling and a
// process-local math/rand sampler, matching the classic skip list tuning.
func DefaultSkipListConfig() SkipListConfig {
	return SkipListConfig{
		Fraction: 0.5,
		MaxLevel: defaultMaxLevel,
		Sampler:  NewDefaultSampler(),
	}
}

// skipNode is one entry in a SkipList. tower[l] is the next node at level l;
// height = len(tower) - 1.
type skipNode[V any] struct {
	key   int64
	value V
	tower []*skipNode[V]
}

// SkipList is an ordered map from int64 key to a value of type V.
type SkipList[V any] struct {
	head     *skipNode[V] // sentinel; key = math.MaxInt64, never reported to callers
	cfg      SkipListConfig
	curLevel int
	len      int
}

// NewSkipList constructs a SkipList with the given configuration.
func NewSkipList[V any](cfg SkipListConfig) *SkipList[V] {
	if cfg.Sampler == nil {
		cfg.Sampler = NewDefaultSampler()
	}
	head := &skipNode[V]{
		key:   math.MaxInt64,
		tower: make([]*skipNode[V], cfg.MaxLevel+1),
	}
	return &SkipList[V]{head: head, cfg: cfg}
}

// NewDefaultSkipList constructs a SkipList with DefaultSkipListConfig().
func NewDefaultSkipList[V any]() *SkipList[V] {
	return NewSkipList[V](DefaultSkipListConfig())
}

// Len reports the number of keys stored.
func (sl *SkipList[V]) Len() int { return sl.len }

// CurLevel reports the highest occupied level (0 if empty).
func (sl *SkipList[V]) CurLevel() int { return sl.curLevel }

// MaxLevel reports the configured height ceiling.
func (sl *SkipList[V]) MaxLevel() int { return sl.cfg.MaxLevel }

// ═══════════════════════════════════════════════════════════════════════════════
// SEARCH: The Core Operation
// ═══════════════════════════════════════════════════════════════════════════════
// search walks from the sentinel head, dropping a level whenever it can't
// advance further, and records in journey[l] the last node visited at each
// level — the predecessor that insert/remove will splice around. journey
// covers levels 0 through curLevel; Insert extends it when it samples a
// height above curLevel.
// ═══════════════════════════════════════════════════════════════════════════════
func (sl *SkipList[V]) search(key int64) (found *skipNode[V], journey []*skipNode[V]) {
	// Sized to curLevel+1, not the configured ceiling: a search only ever
	// needs a predecessor for levels that currently exist. Insert grows
	// this slice itself once it knows the new node's sampled height.
	journey = make([]*skipNode[V], sl.curLevel+1)
	current := sl.head

	for level := sl.curLevel; level >= 0; level-- {
		for current.tower[level] != nil && current.tower[level].key < key {
			current = current.tower[level]
		}
		journey[level] = current
	}

	candidate := journey[0].tower[0]
	if candidate != nil && candidate.key == key {
		found = candidate
	}
	return found, journey
}

// Find reports the value stored at key, if any.
func (sl *SkipList[V]) Find(key int64) (V, bool) {
	found, _ := sl.search(key)
	if found == nil {
		var zero V
		return zero, false
	}
	return found.value, true
}

// ═══════════════════════════════════════════════════════════════════════════════
// RANDOM HEIGHT
// ═══════════════════════════════════════════════════════════════════════════════
func (sl *SkipList[V]) randomHeight() int {
	height := 0
	for sl.cfg.Sampler.Sample() < sl.cfg.Fraction && height < sl.cfg.MaxLevel {
		height++
	}
	return height
}

// Insert adds key -> value. It returns ErrKeyExists without modifying the
// list if key is already present — SkipList never silently overwrites.
func (sl *SkipList[V]) Insert(key int64, value V) error {
	found, journey := sl.search(key)
	if found != nil {
		return ErrKeyExists
	}

	height := sl.randomHeight()
	if height > sl.curLevel {
		for height >= len(journey) {
			journey = append(journey, nil)
		}
		for level := sl.curLevel + 1; level <= height; level++ {
			journey[level] = sl.head
		}
		sl.curLevel = height
		slog.Debug("skip list height grew", slog.Int("height", height))
	}

	node := &skipNode[V]{key: key, value: value, tower: make([]*skipNode[V], height+1)}
	for level := 0; level <= height; level++ {
		predecessor := journey[level]
		node.tower[level] = predecessor.tower[level]
		predecessor.tower[level] = node
	}

	sl.len++
	return nil
}

// Remove deletes key, if present, and reports whether it was found.
func (sl *SkipList[V]) Remove(key int64) bool {
	found, journey := sl.search(key)
	if found == nil {
		return false
	}

	for level := 0; level <= sl.curLevel; level++ {
		if journey[level].tower[level] != found {
			break
		}
		journey[level].tower[level] = found.tower[level]
	}

	for sl.curLevel > 0 && sl.head.tower[sl.curLevel] == nil {
		sl.curLevel--
	}

	sl.len--
	return true
}

// Keys returns a snapshot roaring bitmap of every key currently stored,
// letting callers intersect/union key sets across skip lists without
// walking either one by hand. Each key is converted with uint32(), so a key
// outside [0, 2^32) is recorded as its truncated low 32 bits.
func (sl *SkipList[V]) Keys() *roaring.Bitmap {
	bm := roaring.New()
	for n := sl.head.tower[0]; n != nil; n = n.tower[0] {
		bm.Add(uint32(n.key))
	}
	return bm
}

// SkipListIterator walks a SkipList's level-0 chain in ascending key order.
type SkipListIterator[V any] struct {
	current *skipNode[V]
}

// Iterator returns a fresh ascending-key iterator. Mutating the SkipList
// invalidates any outstanding iterator (spec §5: no structural mutation
// safety across iteration).
func (sl *SkipList[V]) Iterator() *SkipListIterator[V] {
	return &SkipListIterator[V]{current: sl.head.tower[0]}
}

// HasNext reports whether Next would return another element.
func (it *SkipListIterator[V]) HasNext() bool {
	return it.current != nil
}

// Next returns the current (key, value) and advances.
func (it *SkipListIterator[V]) Next() (int64, V) {
	n := it.current
	it.current = n.tower[0]
	return n.key, n.value
}

// String renders every level as "Lv{ℓ} - k1 k2 …", a debug affordance that
// may be pinned by snapshot tests but isn't part of the data contract.
func (sl *SkipList[V]) String() string {
	var b strings.Builder
	for level := 0; level <= sl.curLevel; level++ {
		if level > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Lv%d - ", level)
		for n := sl.head.tower[level]; n != nil; n = n.tower[level] {
			fmt.Fprintf(&b, "%d", n.key)
			if n.tower[level] != nil {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

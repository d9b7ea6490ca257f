package coredsa

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ═══════════════════════════════════════════════════════════════════════════════
// MULTILIST: A Tree Of SubLists
// ═══════════════════════════════════════════════════════════════════════════════
// A MultiList is a rooted tree whose levels are themselves SubLists: level 0
// is always exactly one SubList (the root), and level ℓ+1 is the
// concatenation, in parent order, of every non-empty child SubList belonging
// to a node on level ℓ.
//
// ADDRESSING:
// -----------
// A Position{Level, Node} names a slot within the concatenation of every
// SubList recorded at that level, left to right. For level 2 with two
// recorded SubLists of length 3 and 2, Node 0-2 address the first SubList,
// Node 3-4 the second, and Node 5 is the one-past-end insertion slot on the
// last SubList.
//
// WHY A DERIVED INDEX INSTEAD OF PARENT POINTERS?
// -------------------------------------------------
// Nodes only ever point down (to a child SubList), never up. The level
// index is what lets Levels()/LevelSize()/dump answer "what's on level ℓ"
// without walking the whole tree from the root every time. It's a cache,
// not a second source of truth — it is always rederived from the tree's own
// child pointers by rebuildLevel/rebuildCascade, never mutated independently.
// ═══════════════════════════════════════════════════════════════════════════════

// Position addresses a node within a MultiList: Level is the 0-based tree
// depth, Node is the 0-based offset within that level's concatenated
// SubLists. An offset equal to the level's total length is a valid
// insertion slot on the tail SubList but names no node.
type Position struct {
	Level int
	Node  int
}

// MultiList is a tree whose levels are SubLists of T.
type MultiList[T any] struct {
	len            int
	levelIndex     map[int][]*SubList[T]
	occupiedLevels *bitset.BitSet // mirrors the keys of levelIndex; level 0 always set
}

// NewMultiList returns a MultiList with a single empty root SubList at
// level 0.
func NewMultiList[T any]() *MultiList[T] {
	occupied := bitset.New(8)
	occupied.Set(0)
	return &MultiList[T]{
		levelIndex:     map[int][]*SubList[T]{0: {NewSubList[T]()}},
		occupiedLevels: occupied,
	}
}

// Len reports the total element count across every level.
func (m *MultiList[T]) Len() int { return m.len }

// Levels reports the number of recorded levels (the highest non-empty level
// plus one; level 0 always counts even when its root SubList is empty).
func (m *MultiList[T]) Levels() int {
	max := 0
	for level := range m.levelIndex {
		if level > max {
			max = level
		}
	}
	return max + 1
}

// LevelSize reports the total element count across every SubList recorded
// at level. Returns ErrPositionUnresolved if level isn't currently recorded.
func (m *MultiList[T]) LevelSize(level int) (int, error) {
	lists, ok := m.levelIndex[level]
	if !ok {
		return 0, ErrPositionUnresolved
	}
	total := 0
	for _, l := range lists {
		total += l.Len()
	}
	return total, nil
}

// OccupiedLevels returns a snapshot bitset of which levels currently hold at
// least one SubList (level 0 is always set). Querying this instead of
// Levels() in a loop avoids re-deriving the max level on every call.
func (m *MultiList[T]) OccupiedLevels() *bitset.BitSet {
	return m.occupiedLevels.Clone()
}

// resolve finds the SubList and in-list offset addressed by pos, accepting
// a one-past-end offset on the last SubList of the level as a valid
// insertion slot.
func (m *MultiList[T]) resolve(pos Position) (*SubList[T], int, error) {
	lists, ok := m.levelIndex[pos.Level]
	if !ok {
		return nil, 0, ErrPositionUnresolved
	}

	local := pos.Node
	for i, list := range lists {
		n := list.Len()
		isLast := i == len(lists)-1
		if local < n || (isLast && local == n) {
			return list, local, nil
		}
		local -= n
	}
	return nil, 0, ErrPositionUnresolved
}

// resolveNode is like resolve but rejects the one-past-end insertion slot:
// the position must name an actual node.
func (m *MultiList[T]) resolveNode(pos Position) (*SubList[T], int, error) {
	list, local, err := m.resolve(pos)
	if err != nil {
		return nil, 0, err
	}
	if local >= list.Len() {
		return nil, 0, ErrOutOfRange
	}
	return list, local, nil
}

// Insert places x at pos. pos.Node equal to the level's total length is
// accepted as the tail insertion slot.
func (m *MultiList[T]) Insert(pos Position, x T) error {
	list, local, err := m.resolve(pos)
	if err != nil {
		return err
	}
	list.InsertAt(x, local)
	m.len++
	return nil
}

// InsertAfter places x immediately after the node at (pos.Level, pos.Node-1).
// pos.Node must be at least 1.
func (m *MultiList[T]) InsertAfter(pos Position, x T) error {
	if pos.Node < 1 {
		return ErrNodeIndexTooSmall
	}
	list, local, err := m.resolveNode(Position{Level: pos.Level, Node: pos.Node - 1})
	if err != nil {
		return err
	}
	list.InsertAt(x, local+1)
	m.len++
	return nil
}

// AttachChild gives the node at pos a new singleton child SubList [x]. The
// node must not already own a child.
func (m *MultiList[T]) AttachChild(pos Position, x T) error {
	list, local, err := m.resolveNode(pos)
	if err != nil {
		return err
	}
	node := list.NodeAt(local)
	if node.child != nil {
		return ErrChildExists
	}

	child := NewSubList[T]()
	child.PushBack(x)
	node.child = child

	// Attaching only ever creates one new level: a brand-new child is a
	// singleton with no grandchildren, so nothing deeper can be affected.
	m.rebuildLevel(pos.Level + 1)
	m.len++
	return nil
}

// DetachChild clears the child link of the node at pos, dropping its entire
// subtree from the level index.
func (m *MultiList[T]) DetachChild(pos Position) error {
	list, local, err := m.resolveNode(pos)
	if err != nil {
		return err
	}
	node := list.NodeAt(local)
	node.child = nil

	m.rebuildCascade(pos.Level + 1)
	m.recountLen()
	slog.Debug("level removed by detach", slog.Int("level", pos.Level+1))
	return nil
}

// Pop removes the node at pos (which must be a real node, not the tail
// insertion slot) and, implicitly, its entire child subtree.
func (m *MultiList[T]) Pop(pos Position) (T, error) {
	list, local, err := m.resolveNode(pos)
	if err != nil {
		var zero T
		return zero, err
	}

	removed := list.popNodeAt(local)

	// Popping can leave list itself empty, and list is some node's child one
	// level up (unless pos.Level is the root, which is always recorded
	// regardless of emptiness) — that emptied sub-list has to be pruned from
	// the index, and its parent's child link cleared, by rebuilding from
	// pos.Level itself, not just the level below it.
	if pos.Level == 0 {
		m.rebuildCascade(pos.Level + 1)
	} else {
		m.rebuildCascade(pos.Level)
	}
	m.recountLen()
	return removed.elem, nil
}

// RemoveLevel drops level and every deeper level from the index. Removing
// level 0 is equivalent to Clear. For level > 0, every node recorded at
// level has its own child link cleared first (severing level+1 and beyond),
// and so does every node at level-1 (severing level itself), before the
// index entries for level, level+1, … are dropped.
func (m *MultiList[T]) RemoveLevel(level int) error {
	if level < 0 || level >= m.Levels() {
		return ErrLevelOutOfRange
	}
	if level == 0 {
		m.Clear()
		return nil
	}

	for _, list := range m.levelIndex[level] {
		for n := list.head; n != nil; n = n.next {
			n.child = nil
		}
	}
	for _, list := range m.levelIndex[level-1] {
		for n := list.head; n != nil; n = n.next {
			n.child = nil
		}
	}
	m.dropLevelsFrom(level)
	m.recountLen()
	slog.Debug("level removed", slog.Int("level", level))
	return nil
}

// Move relocates the node at src to the insertion position dst, carrying
// its child subtree along intact. src must name a real node; dst is
// resolved (and may be a tail insertion slot) after src has been detached.
func (m *MultiList[T]) Move(src, dst Position) error {
	srcList, srcLocal, err := m.resolveNode(src)
	if err != nil {
		return err
	}

	node := srcList.popNodeAt(srcLocal)

	dstList, dstLocal, err := m.resolve(dst)
	if err != nil {
		// Leave the container bitwise-equivalent to its pre-call state:
		// put the node back where it came from.
		srcList.insertNodeAt(node, srcLocal)
		return err
	}

	dstList.insertNodeAt(node, dstLocal)
	m.rebuildCascade(1)
	m.recountLen()
	return nil
}

// Clear resets the MultiList to a single empty root SubList at level 0.
func (m *MultiList[T]) Clear() {
	occupied := bitset.New(8)
	occupied.Set(0)
	m.len = 0
	m.levelIndex = map[int][]*SubList[T]{0: {NewSubList[T]()}}
	m.occupiedLevels = occupied
}

// Clone produces an independent deep copy. The root SubList's own Clone
// already recurses through every child link, duplicating the whole subtree;
// Clone then re-derives the copy's level index top-down from that new root,
// the same machinery every structural mutator uses to keep the index
// consistent.
func (m *MultiList[T]) Clone() *MultiList[T] {
	root := m.levelIndex[0][0].Clone()
	occupied := bitset.New(8)
	occupied.Set(0)

	out := &MultiList[T]{
		len:            m.len,
		levelIndex:     map[int][]*SubList[T]{0: {root}},
		occupiedLevels: occupied,
	}

	for level := 1; ; level++ {
		if _, ok := out.levelIndex[level-1]; !ok {
			break
		}
		out.rebuildLevel(level)
		if _, ok := out.levelIndex[level]; !ok {
			break
		}
	}
	return out
}

// String renders the tree level by level: "Lv0 - <root>" then, for each
// deeper level, "Lv{ℓ} - i:<sublist>  j:<sublist>  …" where i, j, … are the
// parent offsets (at level ℓ-1) whose children populate this level. This is
// a debug affordance, not part of the data contract.
func (m *MultiList[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lv0 - %s", m.levelIndex[0][0].String())

	for level := 1; ; level++ {
		lists, ok := m.levelIndex[level]
		if !ok {
			break
		}
		offsets := m.parentOffsets(level)
		fmt.Fprintf(&b, "\nLv%d - ", level)
		for i, list := range lists {
			fmt.Fprintf(&b, "%d:%s", offsets[i], list.String())
			if i != len(lists)-1 {
				b.WriteString("  ")
			}
		}
	}
	return b.String()
}

// parentOffsets returns, for every SubList recorded at level, the 0-based
// offset (within level-1's concatenation) of the parent node whose child it
// is.
func (m *MultiList[T]) parentOffsets(level int) []int {
	parentLists := m.levelIndex[level-1]
	offsets := make([]int, 0, len(m.levelIndex[level]))

	globalIdx := 0
	for _, parentList := range parentLists {
		for n := parentList.head; n != nil; n = n.next {
			if n.child != nil && !n.child.IsEmpty() {
				offsets = append(offsets, globalIdx)
			}
			globalIdx++
		}
	}
	return offsets
}

// rebuildLevel rederives levelIndex[level] from the children of
// levelIndex[level-1]'s nodes, in parent order, dropping the child link of
// any node whose child SubList turns out to be empty (policy: an empty
// child is never recorded in the index).
func (m *MultiList[T]) rebuildLevel(level int) {
	parentLists, ok := m.levelIndex[level-1]
	if !ok {
		m.dropLevel(level)
		return
	}

	var seq []*SubList[T]
	for _, parentList := range parentLists {
		for n := parentList.head; n != nil; n = n.next {
			if n.child == nil {
				continue
			}
			if n.child.IsEmpty() {
				n.child = nil
				continue
			}
			seq = append(seq, n.child)
		}
	}

	if len(seq) == 0 {
		m.dropLevel(level)
		return
	}
	m.levelIndex[level] = seq
	m.occupiedLevels.Set(uint(level))
	slog.Debug("rebuilding level index", slog.Int("level", level))
}

// rebuildCascade rebuilds levelIndex[fromLevel] and every level beneath it,
// stopping as soon as a level comes back empty (at which point nothing
// deeper could have survived either, so any stale entries are dropped).
func (m *MultiList[T]) rebuildCascade(fromLevel int) {
	level := fromLevel
	for {
		if _, ok := m.levelIndex[level-1]; !ok {
			m.dropLevelsFrom(level)
			return
		}

		_, existedBefore := m.levelIndex[level]
		m.rebuildLevel(level)
		if _, ok := m.levelIndex[level]; !ok {
			if existedBefore {
				m.dropLevelsFrom(level + 1)
			}
			return
		}
		level++
	}
}

func (m *MultiList[T]) dropLevel(level int) {
	delete(m.levelIndex, level)
	m.occupiedLevels.Clear(uint(level))
}

func (m *MultiList[T]) dropLevelsFrom(level int) {
	for {
		if _, ok := m.levelIndex[level]; !ok {
			return
		}
		m.dropLevel(level)
		level++
	}
}

func (m *MultiList[T]) recountLen() {
	total := 0
	for _, lists := range m.levelIndex {
		for _, l := range lists {
			total += l.Len()
		}
	}
	m.len = total
}

package coredsa

import "errors"

// ═══════════════════════════════════════════════════════════════════════════════
// ERROR KINDS: A Closed, Human-Readable Set
// ═══════════════════════════════════════════════════════════════════════════════
// Every fallible operation in this package returns one of the sentinels below
// (or nil). They're package-level vars, not per-call strings, so callers can
// compare with errors.Is and never have to parse a message.
//
// "Not found" is deliberately NOT in this list: SkipList.Find and the SubList
// peek/pop methods report absence through a comma-ok boolean, the same shape a
// Go map read uses, since a missing key is an expected outcome rather than a
// failure. SparseMatrix.Get reports an unstored cell as a zero value.
// ═══════════════════════════════════════════════════════════════════════════════
var (
	// ErrPositionUnresolved: a MultiList position names a level that isn't
	// recorded, or an offset past the end of that level's concatenated length.
	ErrPositionUnresolved = errors.New("no list at index")

	// ErrOutOfRange: Pop or InsertAfter addressed a slot at or past the tail
	// where an existing node was required.
	ErrOutOfRange = errors.New("index out of range")

	// ErrChildExists: AttachChild on a node that already owns a child SubList.
	ErrChildExists = errors.New("child already exists")

	// ErrNodeIndexTooSmall: InsertAfter was asked to splice after node 0,
	// which has no predecessor within its level.
	ErrNodeIndexTooSmall = errors.New("node index must be at least 1")

	// ErrLevelOutOfRange: RemoveLevel named a level at or beyond the
	// MultiList's current level count.
	ErrLevelOutOfRange = errors.New("level out of range")

	// ErrKeyExists: SkipList.Insert was called with a key already present;
	// inserts never silently overwrite.
	ErrKeyExists = errors.New("key already exists")

	// ErrIncompatibleShapes: SparseMatrix.Add between matrices of different
	// (rows, cols).
	ErrIncompatibleShapes = errors.New("incompatible shapes")

	// ErrOutOfShape: SparseMatrix.Set/Get addressed a coordinate outside
	// the matrix's fixed (rows, cols) bounds.
	ErrOutOfShape = errors.New("coordinates out of shape")
)

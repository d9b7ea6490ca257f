// ═══════════════════════════════════════════════════════════════════════════════
// PACKAGE CORESDA: Pointer-Linked In-Memory Data Structures
// ═══════════════════════════════════════════════════════════════════════════════
// coredsa collects three node-graph data structures that don't fit neatly into
// a single owning tree of values:
//
//   - SubList    — a singly-linked sequence, the building block MultiList uses
//     for every level of its tree.
//   - MultiList  — a tree whose levels are themselves SubLists; a node on one
//     level may own a child SubList one level down.
//   - SkipList   — a probabilistic ordered map from an int64 key to a value,
//     built from towers of forward pointers (express lanes over a sorted list).
//   - SparseMatrix — a two-axis linked grid storing only non-zero cells, with
//     independent row and column traversal chains.
//
// WHY POINTER GRAPHS INSTEAD OF SLICES?
// --------------------------------------
// Each of these structures has cross-links that don't compress into a single
// owning slice: a MultiList node can own a whole child SubList; a SkipList
// node is reachable from several predecessor towers at once; a SparseMatrix
// cell sits in both a row chain and a column chain simultaneously. Modeling
// that with slices would mean re-deriving the cross-links on every read.
//
// CONCURRENCY
// -----------
// None of these types are safe for concurrent use. Every operation mutates
// shared pointer state without synchronization; callers needing concurrent
// access must hold their own lock around a container.
// ═══════════════════════════════════════════════════════════════════════════════
package coredsa

package coredsa

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SPARSEMATRIX: A Two-Axis Linked Grid Of Non-Zero Entries
// ═══════════════════════════════════════════════════════════════════════════════
// A SparseMatrix stores only the non-zero cells of a fixed (rows, cols)
// shape. Every stored cell is one node reachable two ways: forward along
// its row (nextInRow, in ascending column order) and forward along its
// column (nextInCol, in ascending row order). One sentinel node per row and
// one per column anchor the two families of chains.
//
// WHY TWO CHAINS INSTEAD OF ONE?
// -------------------------------
// A single row-major chain would make column iteration, column lookups, and
// transpose all O(size) scans. Keeping both chains consistent costs a
// second splice on every Set, but every other operation reads whichever
// axis is cheaper for it.
// ═══════════════════════════════════════════════════════════════════════════════

// Numeric is the closed set of element types SparseMatrix's arithmetic
// (Add, MulBy, zero detection) needs to support — no broader than the spec
// calls for.
type Numeric interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// matrixNode is one stored non-zero cell.
type matrixNode[T Numeric] struct {
	value                T
	row, col             int
	nextInRow, nextInCol *matrixNode[T]
}

// SparseMatrix is a rows x cols grid storing only non-zero entries.
type SparseMatrix[T Numeric] struct {
	rowHead []*matrixNode[T] // one sentinel per row
	colHead []*matrixNode[T] // one sentinel per column
	rows    int
	cols    int
	size    int

	nonEmptyRows *roaring.Bitmap
	nonEmptyCols *roaring.Bitmap
}

// NewSparseMatrix allocates an all-zero rows x cols matrix.
func NewSparseMatrix[T Numeric](rows, cols int) *SparseMatrix[T] {
	m := &SparseMatrix[T]{
		rowHead:      make([]*matrixNode[T], rows),
		colHead:      make([]*matrixNode[T], cols),
		rows:         rows,
		cols:         cols,
		nonEmptyRows: roaring.New(),
		nonEmptyCols: roaring.New(),
	}
	for i := range m.rowHead {
		m.rowHead[i] = &matrixNode[T]{row: -1, col: -1}
	}
	for j := range m.colHead {
		m.colHead[j] = &matrixNode[T]{row: -1, col: -1}
	}
	return m
}

// FromRows builds a SparseMatrix from a jagged 2-D sequence. Shape is
// (len(rows), the longest row); missing trailing cells read as zero.
func FromRows[T Numeric](rows [][]T) *SparseMatrix[T] {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	m := NewSparseMatrix[T](len(rows), cols)

	// Row-wise pass: chain non-zero cells onto each row sentinel in
	// ascending column order.
	for i, row := range rows {
		tail := m.rowHead[i]
		for j, value := range row {
			var zero T
			if value == zero {
				continue
			}
			node := &matrixNode[T]{value: value, row: i, col: j}
			tail.nextInRow = node
			tail = node
			m.size++
		}
	}

	// Single column-wise pass over the now-complete row chains: for each
	// row top-to-bottom and column left-to-right, if a node exists at
	// (i, j), append it to that column's running chain. Ascending row
	// order falls out of the outer loop order.
	colTail := make([]*matrixNode[T], cols)
	copy(colTail, m.colHead)
	for i := 0; i < m.rows; i++ {
		for n := m.rowHead[i].nextInRow; n != nil; n = n.nextInRow {
			colTail[n.col].nextInCol = n
			colTail[n.col] = n
		}
	}

	for i := 0; i < m.rows; i++ {
		if m.rowHead[i].nextInRow != nil {
			m.nonEmptyRows.Add(uint32(i))
		}
	}
	for j := 0; j < m.cols; j++ {
		if m.colHead[j].nextInCol != nil {
			m.nonEmptyCols.Add(uint32(j))
		}
	}

	return m
}

// Rows reports the fixed row count.
func (m *SparseMatrix[T]) Rows() int { return m.rows }

// Cols reports the fixed column count.
func (m *SparseMatrix[T]) Cols() int { return m.cols }

// Size reports the number of stored non-zero entries.
func (m *SparseMatrix[T]) Size() int { return m.size }

// Sparsity is the fraction of cells that are not stored.
func (m *SparseMatrix[T]) Sparsity() float64 {
	total := float64(m.rows) * float64(m.cols)
	return (total - float64(m.size)) / total
}

// NonEmptyRows returns a snapshot bitmap of rows holding at least one
// stored entry.
func (m *SparseMatrix[T]) NonEmptyRows() *roaring.Bitmap { return m.nonEmptyRows.Clone() }

// NonEmptyCols returns a snapshot bitmap of columns holding at least one
// stored entry.
func (m *SparseMatrix[T]) NonEmptyCols() *roaring.Bitmap { return m.nonEmptyCols.Clone() }

// rowPredecessor returns the last node in row i with column < col, or the
// row sentinel if none.
func (m *SparseMatrix[T]) rowPredecessor(row, col int) *matrixNode[T] {
	n := m.rowHead[row]
	for n.nextInRow != nil && n.nextInRow.col < col {
		n = n.nextInRow
	}
	return n
}

// colPredecessor returns the last node in column j with row < row, or the
// column sentinel if none.
func (m *SparseMatrix[T]) colPredecessor(col, row int) *matrixNode[T] {
	n := m.colHead[col]
	for n.nextInCol != nil && n.nextInCol.row < row {
		n = n.nextInCol
	}
	return n
}

// Get returns the value at (row, col), or zero if unstored.
func (m *SparseMatrix[T]) Get(row, col int) (T, error) {
	var zero T
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return zero, ErrOutOfShape
	}

	// The row chain is usually no longer than the column chain (rows
	// typically dominate in the matrices this type targets), so prefer
	// it; either axis gives the same answer.
	pred := m.rowPredecessor(row, col)
	if pred.nextInRow != nil && pred.nextInRow.col == col {
		return pred.nextInRow.value, nil
	}
	return zero, nil
}

// Set stores value at (row, col). A zero value unlinks any existing node
// (SparseMatrix never stores zeros); a non-zero value overwrites an
// existing node in place or splices in a new one.
func (m *SparseMatrix[T]) Set(value T, row, col int) error {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return ErrOutOfShape
	}

	rowPred := m.rowPredecessor(row, col)
	existing := rowPred.nextInRow
	hasExisting := existing != nil && existing.col == col

	var zero T
	if value == zero {
		if !hasExisting {
			return nil
		}
		colPred := m.colPredecessor(col, row)
		rowPred.nextInRow = existing.nextInRow
		colPred.nextInCol = existing.nextInCol
		m.size--
		if m.rowHead[row].nextInRow == nil {
			m.nonEmptyRows.Remove(uint32(row))
		}
		if m.colHead[col].nextInCol == nil {
			m.nonEmptyCols.Remove(uint32(col))
		}
		return nil
	}

	if hasExisting {
		existing.value = value
		return nil
	}

	node := &matrixNode[T]{value: value, row: row, col: col}
	node.nextInRow = rowPred.nextInRow
	rowPred.nextInRow = node

	colPred := m.colPredecessor(col, row)
	node.nextInCol = colPred.nextInCol
	colPred.nextInCol = node

	m.size++
	m.nonEmptyRows.Add(uint32(row))
	m.nonEmptyCols.Add(uint32(col))
	return nil
}

// RowIterator emits a row's values left to right, zero-padded to Cols().
type RowIterator[T Numeric] struct {
	cursor *matrixNode[T]
	col    int
	cols   int
}

// RowIter returns a RowIterator over row i.
func (m *SparseMatrix[T]) RowIter(row int) *RowIterator[T] {
	return &RowIterator[T]{cursor: m.rowHead[row].nextInRow, cols: m.cols}
}

// HasNext reports whether Next would return another value.
func (it *RowIterator[T]) HasNext() bool { return it.col < it.cols }

// Next returns the value at the next column and advances.
func (it *RowIterator[T]) Next() T {
	var value T
	if it.cursor != nil && it.cursor.col == it.col {
		value = it.cursor.value
		it.cursor = it.cursor.nextInRow
	}
	it.col++
	return value
}

// ColIterator emits a column's values top to bottom, zero-padded to Rows().
type ColIterator[T Numeric] struct {
	cursor *matrixNode[T]
	row    int
	rows   int
}

// ColIter returns a ColIterator over column j.
func (m *SparseMatrix[T]) ColIter(col int) *ColIterator[T] {
	return &ColIterator[T]{cursor: m.colHead[col].nextInCol, rows: m.rows}
}

// HasNext reports whether Next would return another value.
func (it *ColIterator[T]) HasNext() bool { return it.row < it.rows }

// Next returns the value at the next row and advances.
func (it *ColIterator[T]) Next() T {
	var value T
	if it.cursor != nil && it.cursor.row == it.row {
		value = it.cursor.value
		it.cursor = it.cursor.nextInCol
	}
	it.row++
	return value
}

// rowValues materializes a zero-padded row, used by Clone/MulBy/Add to
// rebuild via FromRows (Transposed uses colValues).
func (m *SparseMatrix[T]) rowValues(row int) []T {
	out := make([]T, m.cols)
	it := m.RowIter(row)
	for i := 0; it.HasNext(); i++ {
		out[i] = it.Next()
	}
	return out
}

func (m *SparseMatrix[T]) colValues(col int) []T {
	out := make([]T, m.rows)
	it := m.ColIter(col)
	for i := 0; it.HasNext(); i++ {
		out[i] = it.Next()
	}
	return out
}

// Clone returns an independent deep copy.
func (m *SparseMatrix[T]) Clone() *SparseMatrix[T] {
	rows := make([][]T, m.rows)
	for i := range rows {
		rows[i] = m.rowValues(i)
	}
	return FromRows(rows)
}

// MulBy returns a new matrix with every entry multiplied by k. If k is
// zero the result is logically the zero matrix — FromRows' own zero-skip
// already prunes every node in that case, so no separate pass is needed.
func (m *SparseMatrix[T]) MulBy(k T) *SparseMatrix[T] {
	rows := make([][]T, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.rowValues(i)
		for j := range row {
			row[j] *= k
		}
		rows[i] = row
	}
	return FromRows(rows)
}

// Add returns the elementwise sum of m and other. Both must share the same
// shape.
func (m *SparseMatrix[T]) Add(other *SparseMatrix[T]) (*SparseMatrix[T], error) {
	if m.rows != other.rows || m.cols != other.cols {
		return nil, ErrIncompatibleShapes
	}

	rows := make([][]T, m.rows)
	for i := 0; i < m.rows; i++ {
		a := m.rowValues(i)
		b := other.rowValues(i)
		sum := make([]T, m.cols)
		for j := range sum {
			sum[j] = a[j] + b[j]
		}
		rows[i] = sum
	}
	return FromRows(rows), nil
}

// Transposed returns a new matrix with rows and columns swapped.
func (m *SparseMatrix[T]) Transposed() *SparseMatrix[T] {
	rows := make([][]T, m.cols)
	for j := 0; j < m.cols; j++ {
		rows[j] = m.colValues(j)
	}
	return FromRows(rows)
}

// String renders the matrix row by row, followed by its shape and
// sparsity — a debug affordance, not part of the data contract.
func (m *SparseMatrix[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.rows; i++ {
		fmt.Fprintf(&b, "%v", m.rowValues(i))
		if i != m.rows-1 {
			b.WriteString(",\n ")
		}
	}
	b.WriteByte(']')
	fmt.Fprintf(&b, "\nShape: %dx%d  Sparsity: %.2f", m.rows, m.cols, m.Sparsity())
	return b.String()
}

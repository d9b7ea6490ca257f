package coredsa

import (
	"reflect"
	"testing"
)

func matrixToRows[T Numeric](m *SparseMatrix[T]) [][]T {
	out := make([][]T, m.Rows())
	for i := range out {
		out[i] = m.rowValues(i)
	}
	return out
}

func TestSparseMatrixFromRowsAndGet(t *testing.T) {
	m := FromRows([][]int{
		{0, 0, 3},
		{0, 5, 0},
		{7, 0, 0},
	})

	if got, want := m.Rows(), 3; got != want {
		t.Fatalf("Rows() = %d, want %d", got, want)
	}
	if got, want := m.Size(), 3; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}

	tests := []struct{ row, col, want int }{
		{0, 2, 3},
		{1, 1, 5},
		{2, 0, 7},
		{0, 0, 0},
		{2, 2, 0},
	}
	for _, tt := range tests {
		got, err := m.Get(tt.row, tt.col)
		if err != nil {
			t.Fatalf("Get(%d,%d) error: %v", tt.row, tt.col, err)
		}
		if got != tt.want {
			t.Fatalf("Get(%d,%d) = %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestSparseMatrixGetOutOfShape(t *testing.T) {
	m := NewSparseMatrix[int](2, 2)
	if _, err := m.Get(5, 0); err != ErrOutOfShape {
		t.Fatalf("Get() error = %v, want ErrOutOfShape", err)
	}
	if err := m.Set(1, -1, 0); err != ErrOutOfShape {
		t.Fatalf("Set() error = %v, want ErrOutOfShape", err)
	}
}

func TestSparseMatrixSetOverwriteAndClear(t *testing.T) {
	m := NewSparseMatrix[int](2, 2)

	if err := m.Set(5, 0, 1); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got, _ := m.Get(0, 1); got != 5 {
		t.Fatalf("Get(0,1) = %d, want 5", got)
	}
	if m.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", m.Size())
	}

	// Overwrite in place.
	if err := m.Set(9, 0, 1); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got, _ := m.Get(0, 1); got != 9 {
		t.Fatalf("Get(0,1) = %d, want 9", got)
	}
	if m.Size() != 1 {
		t.Fatalf("Size() after overwrite = %d, want 1", m.Size())
	}

	// Setting to zero unlinks the node entirely.
	if err := m.Set(0, 0, 1); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if m.Size() != 0 {
		t.Fatalf("Size() after zeroing = %d, want 0", m.Size())
	}
	if got, _ := m.Get(0, 1); got != 0 {
		t.Fatalf("Get(0,1) after zeroing = %d, want 0", got)
	}
}

func TestSparseMatrixRowColIter(t *testing.T) {
	m := FromRows([][]int{
		{1, 0, 2},
		{0, 0, 0},
	})

	var row []int
	it := m.RowIter(0)
	for it.HasNext() {
		row = append(row, it.Next())
	}
	if want := []int{1, 0, 2}; !reflect.DeepEqual(row, want) {
		t.Fatalf("row 0 = %v, want %v", row, want)
	}

	var col []int
	cit := m.ColIter(2)
	for cit.HasNext() {
		col = append(col, cit.Next())
	}
	if want := []int{2, 0}; !reflect.DeepEqual(col, want) {
		t.Fatalf("col 2 = %v, want %v", col, want)
	}
}

func TestSparseMatrixAdd(t *testing.T) {
	a := FromRows([][]int{
		{1, 0},
		{0, 2},
	})
	b := FromRows([][]int{
		{0, 3},
		{4, 0},
	})

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	want := [][]int{
		{1, 3},
		{4, 2},
	}
	if got := matrixToRows(sum); !reflect.DeepEqual(got, want) {
		t.Fatalf("Add() = %v, want %v", got, want)
	}
}

func TestSparseMatrixAddIncompatibleShapes(t *testing.T) {
	a := NewSparseMatrix[int](2, 2)
	b := NewSparseMatrix[int](3, 2)
	if _, err := a.Add(b); err != ErrIncompatibleShapes {
		t.Fatalf("Add() error = %v, want ErrIncompatibleShapes", err)
	}
}

func TestSparseMatrixTransposeRoundTrip(t *testing.T) {
	m := FromRows([][]int{
		{1, 0, 2},
		{0, 3, 0},
	})

	transposed := m.Transposed()
	if got, want := transposed.Rows(), m.Cols(); got != want {
		t.Fatalf("Transposed().Rows() = %d, want %d", got, want)
	}
	if got, want := transposed.Cols(), m.Rows(); got != want {
		t.Fatalf("Transposed().Cols() = %d, want %d", got, want)
	}

	roundTripped := transposed.Transposed()
	if got, want := matrixToRows(roundTripped), matrixToRows(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("double transpose = %v, want %v", got, want)
	}
}

func TestSparseMatrixMulBy(t *testing.T) {
	m := FromRows([][]int{
		{1, 2},
		{0, 3},
	})

	scaled := m.MulBy(2)
	want := [][]int{
		{2, 4},
		{0, 6},
	}
	if got := matrixToRows(scaled); !reflect.DeepEqual(got, want) {
		t.Fatalf("MulBy(2) = %v, want %v", got, want)
	}

	zeroed := m.MulBy(0)
	if zeroed.Size() != 0 {
		t.Fatalf("MulBy(0).Size() = %d, want 0", zeroed.Size())
	}
}

func TestSparseMatrixSparsityAndNonEmptyAxes(t *testing.T) {
	m := FromRows([][]int{
		{1, 0},
		{0, 0},
	})

	if got, want := m.Sparsity(), 0.75; got != want {
		t.Fatalf("Sparsity() = %v, want %v", got, want)
	}

	rows := m.NonEmptyRows()
	if got := rows.GetCardinality(); got != 1 {
		t.Fatalf("NonEmptyRows() cardinality = %d, want 1", got)
	}
	if !rows.Contains(0) {
		t.Fatalf("NonEmptyRows() should contain row 0")
	}

	cols := m.NonEmptyCols()
	if got := cols.GetCardinality(); got != 1 {
		t.Fatalf("NonEmptyCols() cardinality = %d, want 1", got)
	}
	if !cols.Contains(0) {
		t.Fatalf("NonEmptyCols() should contain col 0")
	}
}

func TestSparseMatrixClone(t *testing.T) {
	m := FromRows([][]int{
		{1, 0},
		{0, 2},
	})
	clone := m.Clone()

	if got, want := matrixToRows(clone), matrixToRows(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("Clone() = %v, want %v", got, want)
	}

	if err := clone.Set(9, 0, 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got, _ := m.Get(0, 0); got != 1 {
		t.Fatalf("mutating clone changed original: Get(0,0) = %d, want 1", got)
	}
}

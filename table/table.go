// Package table holds feature-by-sample abundance tables. Rows are features
// (OTUs, ASVs), columns are samples. Callers work through the Table
// interface so that the storage layout stays an implementation detail.
package table

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrDuplicateID    = errors.New("duplicate identifier")
	ErrNegativeCount  = errors.New("negative count")
	ErrNonFiniteCount = errors.New("count is not a finite number")
	ErrShape          = errors.New("row does not match the number of columns")
)

// Table is the capability set the clustering code needs from an abundance
// table.
type Table interface {
	// RowIDs returns the feature identifiers in row order.
	RowIDs() []string

	// ColumnIDs returns the sample identifiers in column order.
	ColumnIDs() []string

	// RowIndex returns the row number of a feature identifier.
	RowIndex(id string) (int, bool)

	// At returns the count at row i, column j.
	At(i, j int) float64

	// FromRows builds a new table of the same kind over the same columns.
	FromRows(rowIDs []string, rows [][]float64) (Table, error)
}

// Row copies row i of t.
func Row(t Table, i int) []float64 {
	out := make([]float64, len(t.ColumnIDs()))
	for j := range out {
		out[j] = t.At(i, j)
	}
	return out
}

// RowSums returns the total count of each row, in row order.
func RowSums(t Table) []float64 {
	out := make([]float64, len(t.RowIDs()))
	for i := range out {
		out[i] = floats.Sum(Row(t, i))
	}
	return out
}

// ColumnSums returns the total count of each column, in column order.
func ColumnSums(t Table) []float64 {
	out := make([]float64, len(t.ColumnIDs()))
	for i := range t.RowIDs() {
		floats.Add(out, Row(t, i))
	}
	return out
}

// Equal reports whether a and b hold the same columns in the same order and
// the same rows, ignoring row order.
func Equal(a, b Table) bool {
	if !stringsEqual(a.ColumnIDs(), b.ColumnIDs()) {
		return false
	}
	if len(a.RowIDs()) != len(b.RowIDs()) {
		return false
	}

	for i, id := range a.RowIDs() {
		k, exists := b.RowIndex(id)
		if !exists {
			return false
		}
		if !floats.Equal(Row(a, i), Row(b, k)) {
			return false
		}
	}

	return true
}

// SortRows returns a copy of t whose rows follow order. Every row of t must
// appear in order exactly once.
func SortRows(t Table, order []string) (Table, error) {
	if len(order) != len(t.RowIDs()) {
		return nil, fmt.Errorf("SortRows: got %d identifiers for %d rows", len(order), len(t.RowIDs()))
	}

	rows := make([][]float64, 0, len(order))
	for _, id := range order {
		i, exists := t.RowIndex(id)
		if !exists {
			return nil, fmt.Errorf("SortRows: %s is not a row of this table", id)
		}
		rows = append(rows, Row(t, i))
	}

	return t.FromRows(order, rows)
}

func indexIDs(ids []string) (map[string]int, error) {
	out := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, exists := out[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		out[id] = i
	}
	return out, nil
}

func checkRows(rowIDs []string, nCols int, rows [][]float64) error {
	if len(rowIDs) != len(rows) {
		return fmt.Errorf("%w: %d identifiers for %d rows", ErrShape, len(rowIDs), len(rows))
	}
	for i, row := range rows {
		if len(row) != nCols {
			return fmt.Errorf("%w: row %s has %d values, expected %d", ErrShape, rowIDs[i], len(row), nCols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: row %s column %d is %v", ErrNonFiniteCount, rowIDs[i], j, v)
			}
			if v < 0 {
				return fmt.Errorf("%w: row %s column %d is %v", ErrNegativeCount, rowIDs[i], j, v)
			}
		}
	}
	return nil
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

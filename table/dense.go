package table

import (
	"gonum.org/v1/gonum/mat"
)

// Dense keeps every cell in a gonum matrix. It suits small, well-populated
// tables, and gives callers direct access to the matrix for linear algebra.
type Dense struct {
	rowIDs []string
	colIDs []string
	rowIdx map[string]int

	// m is nil when the table has no rows or no columns, since gonum does
	// not allow zero-sized matrices.
	m *mat.Dense
}

// NewDense builds a Dense table from rows.
func NewDense(rowIDs, colIDs []string, rows [][]float64) (*Dense, error) {
	rowIdx, err := indexIDs(rowIDs)
	if err != nil {
		return nil, err
	}
	if _, err := indexIDs(colIDs); err != nil {
		return nil, err
	}
	if err := checkRows(rowIDs, len(colIDs), rows); err != nil {
		return nil, err
	}

	d := &Dense{
		rowIDs: append([]string(nil), rowIDs...),
		colIDs: append([]string(nil), colIDs...),
		rowIdx: rowIdx,
	}

	if len(rows) == 0 || len(colIDs) == 0 {
		return d, nil
	}

	data := make([]float64, 0, len(rows)*len(colIDs))
	for _, row := range rows {
		data = append(data, row...)
	}
	d.m = mat.NewDense(len(rows), len(colIDs), data)

	return d, nil
}

// ToDense copies any table into a Dense table.
func ToDense(t Table) (*Dense, error) {
	if d, ok := t.(*Dense); ok {
		return d, nil
	}

	rows := make([][]float64, len(t.RowIDs()))
	for i := range rows {
		rows[i] = Row(t, i)
	}

	return NewDense(t.RowIDs(), t.ColumnIDs(), rows)
}

func (d *Dense) RowIDs() []string    { return d.rowIDs }
func (d *Dense) ColumnIDs() []string { return d.colIDs }

func (d *Dense) RowIndex(id string) (int, bool) {
	i, exists := d.rowIdx[id]
	return i, exists
}

func (d *Dense) At(i, j int) float64 {
	return d.m.At(i, j)
}

// Matrix exposes the underlying matrix. It is nil for an empty table.
func (d *Dense) Matrix() mat.Matrix {
	if d.m == nil {
		return nil
	}
	return d.m
}

func (d *Dense) FromRows(rowIDs []string, rows [][]float64) (Table, error) {
	return NewDense(rowIDs, d.colIDs, rows)
}

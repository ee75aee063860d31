package cluster

import (
	"fmt"

	"github.com/carbocation/featureclust/table"
	"gonum.org/v1/gonum/floats"
)

// Collapse sums the rows of each cluster's members into a single row named
// after the seed. Rows follow a.Seeds. The result is built with t.FromRows,
// so it has the same storage kind as t. Column totals are preserved.
func Collapse(t table.Table, a *Assignment) (table.Table, error) {
	nCols := len(t.ColumnIDs())

	rows := make([][]float64, 0, len(a.Seeds))
	for _, seed := range a.Seeds {
		row := make([]float64, nCols)
		for _, member := range a.Members[seed] {
			i, exists := t.RowIndex(member)
			if !exists {
				return nil, fmt.Errorf("Collapse: cluster %s member %s is not a row of the table", seed, member)
			}
			floats.Add(row, table.Row(t, i))
		}
		rows = append(rows, row)
	}

	return t.FromRows(a.Seeds, rows)
}

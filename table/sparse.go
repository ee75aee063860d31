package table

// Sparse stores only the non-zero cells of a table. All-zero rows are kept
// as rows; they simply have no stored cells.
type Sparse struct {
	rowIDs []string
	colIDs []string
	rowIdx map[string]int
	cells  []map[int]float64
}

// NewSparse builds a Sparse table from dense rows.
func NewSparse(rowIDs, colIDs []string, rows [][]float64) (*Sparse, error) {
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

	s := &Sparse{
		rowIDs: append([]string(nil), rowIDs...),
		colIDs: append([]string(nil), colIDs...),
		rowIdx: rowIdx,
		cells:  make([]map[int]float64, len(rows)),
	}

	for i, row := range rows {
		for j, v := range row {
			if v == 0 {
				continue
			}
			if s.cells[i] == nil {
				s.cells[i] = make(map[int]float64)
			}
			s.cells[i][j] = v
		}
	}

	return s, nil
}

func (s *Sparse) RowIDs() []string    { return s.rowIDs }
func (s *Sparse) ColumnIDs() []string { return s.colIDs }

func (s *Sparse) RowIndex(id string) (int, bool) {
	i, exists := s.rowIdx[id]
	return i, exists
}

func (s *Sparse) At(i, j int) float64 {
	return s.cells[i][j]
}

// NonZero returns the number of stored cells.
func (s *Sparse) NonZero() int {
	n := 0
	for _, row := range s.cells {
		n += len(row)
	}
	return n
}

func (s *Sparse) FromRows(rowIDs []string, rows [][]float64) (Table, error) {
	return NewSparse(rowIDs, s.colIDs, rows)
}

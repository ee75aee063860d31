// Package uchime reads the per-query statistics that vsearch --uchime_denovo
// writes with --uchimeout. Each line holds eighteen tab-separated fields and
// there is no header.
package uchime

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// ErrMalformedAuxiliaryRecord matches every MalformedRecordError.
var ErrMalformedAuxiliaryRecord = errors.New("malformed uchime stats record")

// MalformedRecordError reports the line of a record that could not be read.
type MalformedRecordError struct {
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("uchime stats line %d: %v", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedAuxiliaryRecord
}

// Stats is one line of the file. Most fields are "*" when the query is not
// chimeric, so only Score is numeric.
type Stats struct {
	Score     float64 `csv:"score"`
	FeatureID string  `csv:"feature-id"`
	A         string  `csv:"A"`
	B         string  `csv:"B"`
	T         string  `csv:"T"`
	IDQM      string  `csv:"idQM"`
	IDQA      string  `csv:"idQA"`
	IDQB      string  `csv:"idQB"`
	IDAB      string  `csv:"idAB"`
	IDQT      string  `csv:"idQT"`
	LY        string  `csv:"LY"`
	LN        string  `csv:"LN"`
	LA        string  `csv:"LA"`
	RY        string  `csv:"RY"`
	RN        string  `csv:"RN"`
	RA        string  `csv:"RA"`
	Div       string  `csv:"div"`
	YN        string  `csv:"YN"`
}

// NumFields is the number of columns on every line.
const NumFields = 18

// IndexColumn names the column that identifies each record.
const IndexColumn = "feature-id"

var columns = []string{"score", "A", "B", "T", "idQM", "idQA", "idQB", "idAB", "idQT", "LY", "LN", "LA", "RY", "RN", "RA", "div", "YN"}

func (s *Stats) field(column string) (string, bool) {
	switch column {
	case "score":
		return formatScore(s.Score), true
	case "A":
		return s.A, true
	case "B":
		return s.B, true
	case "T":
		return s.T, true
	case "idQM":
		return s.IDQM, true
	case "idQA":
		return s.IDQA, true
	case "idQB":
		return s.IDQB, true
	case "idAB":
		return s.IDAB, true
	case "idQT":
		return s.IDQT, true
	case "LY":
		return s.LY, true
	case "LN":
		return s.LN, true
	case "LA":
		return s.LA, true
	case "RY":
		return s.RY, true
	case "RN":
		return s.RN, true
	case "RA":
		return s.RA, true
	case "div":
		return s.Div, true
	case "YN":
		return s.YN, true
	}
	return "", false
}

// Metadata is a uchime stats file indexed by feature id.
type Metadata struct {
	ids   []string
	index map[string]int
	rows  []Stats
}

// IDs returns the feature ids in file order.
func (m *Metadata) IDs() []string {
	return append([]string(nil), m.ids...)
}

// Columns returns the names of the non-index columns, score first.
func (m *Metadata) Columns() []string {
	return append([]string(nil), columns...)
}

// Len returns the number of records.
func (m *Metadata) Len() int {
	return len(m.rows)
}

// Get returns one cell as it appeared in the file (score is reformatted).
func (m *Metadata) Get(id, column string) (string, bool) {
	rec, exists := m.Record(id)
	if !exists {
		return "", false
	}
	return rec.field(column)
}

// Score returns the chimera score of id.
func (m *Metadata) Score(id string) (float64, bool) {
	rec, exists := m.Record(id)
	if !exists {
		return 0, false
	}
	return rec.Score, true
}

func (m *Metadata) Record(id string) (*Stats, bool) {
	i, exists := m.index[id]
	if !exists {
		return nil, false
	}
	rec := m.rows[i]
	return &rec, true
}

// Read parses a uchime stats file. An empty input yields empty metadata.
func Read(r io.Reader) (*Metadata, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = NumFields

	records := []Stats{}
	if err := gocsv.UnmarshalCSVWithoutHeaders(cr, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return newMetadata(nil)
		}

		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &MalformedRecordError{Line: perr.Line, Err: err}
		}

		return nil, err
	}

	return newMetadata(records)
}

func newMetadata(records []Stats) (*Metadata, error) {
	m := &Metadata{
		ids:   make([]string, 0, len(records)),
		index: make(map[string]int, len(records)),
		rows:  records,
	}

	for i, rec := range records {
		if rec.FeatureID == "" {
			return nil, &MalformedRecordError{Line: i + 1, Err: fmt.Errorf("empty %s", IndexColumn)}
		}
		if prior, exists := m.index[rec.FeatureID]; exists {
			return nil, &MalformedRecordError{Line: i + 1, Err: fmt.Errorf("%s %s already seen on line %d", IndexColumn, rec.FeatureID, prior+1)}
		}
		m.index[rec.FeatureID] = i
		m.ids = append(m.ids, rec.FeatureID)
	}

	return m, nil
}

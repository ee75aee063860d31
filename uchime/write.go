package uchime

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// metadataRow is Stats laid out as a metadata table, identifier first.
type metadataRow struct {
	FeatureID string  `csv:"feature-id"`
	Score     float64 `csv:"score"`
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

func newMetadataRow(s *Stats) metadataRow {
	return metadataRow{
		FeatureID: s.FeatureID,
		Score:     s.Score,
		A:         s.A,
		B:         s.B,
		T:         s.T,
		IDQM:      s.IDQM,
		IDQA:      s.IDQA,
		IDQB:      s.IDQB,
		IDAB:      s.IDAB,
		IDQT:      s.IDQT,
		LY:        s.LY,
		LN:        s.LN,
		LA:        s.LA,
		RY:        s.RY,
		RN:        s.RN,
		RA:        s.RA,
		Div:       s.Div,
		YN:        s.YN,
	}
}

// WriteTSV writes m as a metadata table: a header naming feature-id and
// every column, then one row per record in file order.
func WriteTSV(w io.Writer, m *Metadata) error {
	rows := make([]metadataRow, len(m.rows))
	for i := range m.rows {
		rows[i] = newMetadataRow(&m.rows[i])
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	return pfx.Err(gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(cw)))
}

package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/featureclust"
	"github.com/carbocation/pfx"
)

const (
	// BIOMComment is the first line of a table converted from a BIOM file.
	BIOMComment = "# Constructed from biom file"

	// RowHeader labels the identifier column in the header line.
	RowHeader = "#OTU ID"
)

// ReadTSV reads a delimited abundance table: an optional comment line, a
// header line naming the samples, and one line per feature. The delimiter
// is detected from the content, so comma-separated tables are accepted too.
func ReadTSV(r io.Reader) (*Sparse, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Drop comment lines ahead of the header. "#OTU ID" is the header itself.
	for len(body) > 0 && body[0] == '#' && !bytes.HasPrefix(body, []byte(RowHeader)) {
		i := bytes.IndexByte(body, '\n')
		if i < 0 {
			body = nil
			break
		}
		body = body[i+1:]
	}

	cr := csv.NewReader(bytes.NewReader(body))
	cr.Comma = featureclust.DetermineDelimiter(bytes.NewReader(body))
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("ReadTSV: table has no header line")
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	colIDs := header[1:]

	rowIDs := make([]string, 0)
	rows := make([][]float64, 0)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		row := make([]float64, len(rec)-1)
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("ReadTSV: line %d column %d: %w", line, j+2, err)
			}
			row[j] = v
		}

		rowIDs = append(rowIDs, rec[0])
		rows = append(rows, row)
	}

	return NewSparse(rowIDs, colIDs, rows)
}

// WriteTSV writes t as a tab-delimited table with the BIOM comment line and
// a "#OTU ID" header. Counts are written in their shortest exact form, so
// whole numbers carry no decimal point.
func WriteTSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if _, err := io.WriteString(w, BIOMComment+"\n"); err != nil {
		return pfx.Err(err)
	}

	if err := cw.Write(append([]string{RowHeader}, t.ColumnIDs()...)); err != nil {
		return pfx.Err(err)
	}

	nCols := len(t.ColumnIDs())
	for i, id := range t.RowIDs() {
		rec := make([]string, 0, nCols+1)
		rec = append(rec, id)
		for j := 0; j < nCols; j++ {
			rec = append(rec, strconv.FormatFloat(t.At(i, j), 'f', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	return pfx.Err(cw.Error())
}

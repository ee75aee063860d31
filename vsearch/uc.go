package vsearch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// UC reads the cluster records that vsearch writes with --uc.
type UC struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	line    int
	err     error
}

func OpenUC(path string) (*UC, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	uc := NewUC(file)
	uc.path = path
	uc.file = file

	return uc, nil
}

// NewUC reads UC records from r. Close is a nop for readers made this way.
func NewUC(r io.Reader) *UC {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &UC{scanner: scanner}
}

func (u *UC) Close() error {
	if u.file == nil {
		return nil
	}
	return u.file.Close()
}

func (u *UC) Err() error {
	if u.err != nil {
		return u.err
	}

	return u.scanner.Err()
}

// Read returns the next S or H record. C records are skipped. It returns nil
// at the end of the input or on error; check Err to tell them apart.
func (u *UC) Read() *UCRow {
	for {
		if u.err != nil || !u.scanner.Scan() {
			return nil
		}
		u.line++

		data := strings.TrimRight(u.scanner.Text(), "\r")
		if data == "" {
			continue
		}

		cols := strings.Split(data, "\t")
		if len(cols) != TargetLabel+1 {
			u.err = fmt.Errorf("UC line %d has %d columns, expected %d", u.line, len(cols), TargetLabel+1)
			return nil
		}

		switch cols[RecordType] {
		case RecordCluster:
			continue
		case RecordSeed, RecordHit:
		default:
			u.err = fmt.Errorf("UC line %d has unexpected record type %q", u.line, cols[RecordType])
			return nil
		}

		clusterNumber, err := strconv.Atoi(cols[ClusterNumber])
		if err != nil {
			u.err = fmt.Errorf("UC line %d: cluster number: %w", u.line, err)
			return nil
		}

		row := &UCRow{
			Type:          cols[RecordType],
			ClusterNumber: clusterNumber,
			Query:         cols[QueryLabel],
			Target:        cols[TargetLabel],
			Line:          u.line,
		}

		if row.Type == RecordHit && row.Target == "*" {
			u.err = fmt.Errorf("UC line %d is a hit without a target", u.line)
			return nil
		}

		return row
	}
}

// ResolveLabels rewrites the labels of rows, which are the annotated labels
// vsearch echoes back, into bare feature identifiers using labels (see
// cluster.LabelIndex). A label that is not in the map is an error.
func ResolveLabels(rows []UCRow, labels map[string]string) ([]UCRow, error) {
	out := make([]UCRow, len(rows))
	for i, row := range rows {
		id, exists := labels[row.Query]
		if !exists {
			return nil, fmt.Errorf("UC line %d names %q, which was not clustered", row.Line, row.Query)
		}
		row.Query = id

		if row.Type == RecordHit {
			target, exists := labels[row.Target]
			if !exists {
				return nil, fmt.Errorf("UC line %d names %q, which was not clustered", row.Line, row.Target)
			}
			row.Target = target
		}

		out[i] = row
	}

	return out, nil
}

// ReadAll reads every remaining record.
func (u *UC) ReadAll() ([]UCRow, error) {
	out := make([]UCRow, 0)
	for row := u.Read(); row != nil; row = u.Read() {
		out = append(out, *row)
	}

	return out, u.Err()
}

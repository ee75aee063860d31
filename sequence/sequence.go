// Package sequence reads and writes the FASTA records that describe each
// feature.
package sequence

import (
	"fmt"
	"io"
	"math"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/carbocation/pfx"
)

// DefaultWidth is the line width used when writing FASTA.
const DefaultWidth = 80

// Record is one feature's sequence. ID is the first word of the FASTA
// header and Desc is whatever follows it.
type Record struct {
	ID   string
	Desc string
	Seq  string
}

// IDs returns the identifiers of recs in order.
func IDs(recs []Record) []string {
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.ID
	}
	return out
}

// ReadFASTA reads every record from r, in file order.
func ReadFASTA(r io.Reader) ([]Record, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))

	out := make([]Record, 0)
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("ReadFASTA: unexpected sequence type %T", sc.Seq())
		}

		out = append(out, Record{
			ID:   s.ID,
			Desc: s.Desc,
			Seq:  string(alphabet.LettersToBytes(s.Seq)),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// WriteFASTA writes recs to w, wrapping sequence lines at width letters. A
// width of zero or less writes each sequence on a single line.
func WriteFASTA(w io.Writer, recs []Record, width int) error {
	if width <= 0 {
		width = math.MaxInt32
	}

	fw := fasta.NewWriter(w, width)
	for _, rec := range recs {
		s := linear.NewSeq(rec.ID, alphabet.BytesToLetters([]byte(rec.Seq)), alphabet.DNA)
		s.Desc = rec.Desc
		if _, err := fw.Write(s); err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}

package cluster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/featureclust/sequence"
	"github.com/carbocation/featureclust/table"
)

// SizeAnnotation separates a feature identifier from its total abundance in
// an annotated label.
const SizeAnnotation = ";size="

// TotalAbundances maps each row identifier of t to the sum of its row.
func TotalAbundances(t table.Table) map[string]float64 {
	sums := table.RowSums(t)
	out := make(map[string]float64, len(sums))
	for i, id := range t.RowIDs() {
		out[id] = sums[i]
	}
	return out
}

// FormatAbundance renders v in its shortest exact decimal form. Whole
// numbers have no fractional part: 304 is "304", never "304.0".
func FormatAbundance(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AnnotateID returns id with its abundance appended, e.g. "feature1;size=304".
func AnnotateID(id string, abundance float64) string {
	return id + SizeAnnotation + FormatAbundance(abundance)
}

// splitAnnotation finds the annotation AnnotateID appends: the last
// ";size=" whose remainder is a number. Identifiers are opaque, so anything
// before it, semicolons included, belongs to the identifier.
func splitAnnotation(label string) (id string, abundance float64, ok bool) {
	i := strings.LastIndex(label, SizeAnnotation)
	if i < 0 {
		return label, 0, false
	}

	v, err := strconv.ParseFloat(label[i+len(SizeAnnotation):], 64)
	if err != nil {
		return label, 0, false
	}

	return label[:i], v, true
}

// StripAnnotation undoes AnnotateID. Labels without a size annotation are
// returned unchanged.
func StripAnnotation(label string) string {
	id, _, _ := splitAnnotation(label)
	return id
}

// ParseAbundance extracts the size annotation from a label. ok is false when
// the label carries none.
func ParseAbundance(label string) (abundance float64, ok bool) {
	_, abundance, ok = splitAnnotation(label)
	return abundance, ok
}

// LabelIndex returns the bare identifiers of annotated, in order, and a map
// from every label an engine may report back to the bare identifier: the
// annotated label, the annotated label with a trailing ";", and the bare
// identifier. When a bare identifier is spelled the same as another
// record's annotated label, the annotated label wins.
func LabelIndex(annotated []sequence.Record) (ids []string, labels map[string]string, err error) {
	ids = make([]string, len(annotated))
	labels = make(map[string]string, 3*len(annotated))

	for i, rec := range annotated {
		ids[i] = StripAnnotation(rec.ID)
		if _, exists := labels[ids[i]]; !exists {
			labels[ids[i]] = ids[i]
		}
	}

	seen := make(map[string]struct{}, len(annotated))
	for i, rec := range annotated {
		if _, exists := seen[rec.ID]; exists {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateFeature, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		labels[rec.ID] = ids[i]
		labels[rec.ID+";"] = ids[i]
	}

	return ids, labels, nil
}

// Annotate returns a copy of seqs whose identifiers carry their total
// abundance in t. Sequence content, descriptions and order are unchanged.
// Every identifier must be a row of t; run ValidateIdentifiers first.
func Annotate(seqs []sequence.Record, t table.Table) ([]sequence.Record, error) {
	totals := TotalAbundances(t)

	out := make([]sequence.Record, len(seqs))
	for i, rec := range seqs {
		total, exists := totals[rec.ID]
		if !exists {
			return nil, &FeaturePresentOnlyInSequencesError{ID: rec.ID}
		}

		out[i] = sequence.Record{
			ID:   AnnotateID(rec.ID, total),
			Desc: rec.Desc,
			Seq:  rec.Seq,
		}
	}

	return out, nil
}

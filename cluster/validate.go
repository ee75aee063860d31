package cluster

import (
	"fmt"
	"sort"

	"github.com/carbocation/featureclust/sequence"
	"github.com/carbocation/featureclust/table"
)

// ValidateIdentifiers checks that seqs and the rows of t name exactly the
// same features. It reports the first sequence (in input order) missing
// from the table before it reports table rows missing from the sequences.
func ValidateIdentifiers(seqs []sequence.Record, t table.Table) error {
	seen := make(map[string]struct{}, len(seqs))
	for _, rec := range seqs {
		if _, exists := seen[rec.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateFeature, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		if _, exists := t.RowIndex(rec.ID); !exists {
			return &FeaturePresentOnlyInSequencesError{ID: rec.ID}
		}
	}

	var extra []string
	for _, id := range t.RowIDs() {
		if _, exists := seen[id]; !exists {
			extra = append(extra, id)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return &FeaturesPresentOnlyInTableError{IDs: extra}
	}

	return nil
}

// ValidateThreshold rejects a percent identity outside (0, 1].
func ValidateThreshold(percIdentity float64) error {
	if !(percIdentity > 0 && percIdentity <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, percIdentity)
	}
	return nil
}

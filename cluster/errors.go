package cluster

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIdentifierSetMismatch is matched by both flavors of identifier
	// mismatch between sequences and table.
	ErrIdentifierSetMismatch = errors.New("identifier set mismatch")

	ErrDuplicateFeature = errors.New("duplicate feature identifier")

	ErrInvalidThreshold = errors.New("percent identity must be in (0, 1]")

	// ErrClusteringProcedureFailure is matched by every ClusteringProcedureError.
	ErrClusteringProcedureFailure = errors.New("clustering procedure failed")
)

// FeaturePresentOnlyInSequencesError names the first sequence whose
// identifier is not a row of the table.
type FeaturePresentOnlyInSequencesError struct {
	ID string
}

func (e *FeaturePresentOnlyInSequencesError) Error() string {
	return fmt.Sprintf("Feature %s is present in sequences, but not in table. The set of features in sequences must be identical to the set of features in table.", e.ID)
}

func (e *FeaturePresentOnlyInSequencesError) Is(target error) bool {
	return target == ErrIdentifierSetMismatch
}

// FeaturesPresentOnlyInTableError lists every table row that has no
// sequence.
type FeaturesPresentOnlyInTableError struct {
	IDs []string
}

func (e *FeaturesPresentOnlyInTableError) Error() string {
	return fmt.Sprintf("Some feature ids are present in table, but not in sequences. The set of features in sequences must be identical to the set of features in table. Feature ids present in table but not sequences are: %s", strings.Join(e.IDs, ", "))
}

func (e *FeaturesPresentOnlyInTableError) Is(target error) bool {
	return target == ErrIdentifierSetMismatch
}

// ClusteringProcedureError wraps a failure of the clustering engine with
// the parameters it was called with.
type ClusteringProcedureError struct {
	Engine       string
	Threshold    float64
	NumSequences int
	Err          error
}

func (e *ClusteringProcedureError) Error() string {
	return fmt.Sprintf("%s clustering of %d sequences at percent identity %v failed: %v", e.Engine, e.NumSequences, e.Threshold, e.Err)
}

func (e *ClusteringProcedureError) Unwrap() error {
	return e.Err
}

func (e *ClusteringProcedureError) Is(target error) bool {
	return target == ErrClusteringProcedureFailure
}

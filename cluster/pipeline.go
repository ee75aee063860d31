package cluster

import (
	"context"
	"fmt"

	"github.com/carbocation/featureclust/sequence"
	"github.com/carbocation/featureclust/table"
)

// EngineName returns a human readable name for e.
func EngineName(e Engine) string {
	if n, ok := e.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", e)
}

// ClusterFeaturesDenovo clusters seqs at percIdentity with engine and
// reconciles t with the result. It returns the collapsed table, the
// representative sequences (most abundant first) and the assignment the
// engine produced. Nothing is returned unless every step succeeds.
func ClusterFeaturesDenovo(ctx context.Context, seqs []sequence.Record, t table.Table, percIdentity float64, engine Engine) (table.Table, []sequence.Record, *Assignment, error) {
	if err := ValidateThreshold(percIdentity); err != nil {
		return nil, nil, nil, err
	}

	if err := ValidateIdentifiers(seqs, t); err != nil {
		return nil, nil, nil, err
	}

	annotated, err := Annotate(seqs, t)
	if err != nil {
		return nil, nil, nil, err
	}

	assignment, err := engine.Cluster(ctx, annotated, percIdentity)
	if err == nil && assignment == nil {
		err = fmt.Errorf("engine returned no assignment")
	}
	if err == nil {
		err = assignment.Covers(sequence.IDs(seqs))
	}
	if err != nil {
		return nil, nil, nil, &ClusteringProcedureError{
			Engine:       EngineName(engine),
			Threshold:    percIdentity,
			NumSequences: len(seqs),
			Err:          err,
		}
	}

	collapsed, err := Collapse(t, assignment)
	if err != nil {
		return nil, nil, nil, err
	}

	representatives, err := Representatives(assignment, seqs, t)
	if err != nil {
		return nil, nil, nil, err
	}

	return collapsed, representatives, assignment, nil
}

// Package greedy is an in-process clustering engine. Features are visited
// from most to least abundant; each one joins the first earlier seed it
// matches at the requested identity or else seeds a cluster of its own.
// This is the abundance-ordered centroid procedure that vsearch
// --cluster_size follows, without its k-mer prefilter.
package greedy

import (
	"context"
	"fmt"
	"sort"

	"github.com/BenLubar/memoize"
	"github.com/carbocation/featureclust/cluster"
	"github.com/carbocation/featureclust/sequence"
)

// Engine satisfies cluster.Engine.
type Engine struct {
	// identity replaces Identity when set.
	identity func(a, b string) (float64, error)
}

func (Engine) Name() string {
	return "greedy"
}

type candidate struct {
	id        string
	seq       string
	abundance float64
}

func (e Engine) Cluster(ctx context.Context, annotated []sequence.Record, percIdentity float64) (*cluster.Assignment, error) {
	ids, _, err := cluster.LabelIndex(annotated)
	if err != nil {
		return nil, err
	}

	if percIdentity >= 1 {
		return cluster.Singletons(ids)
	}

	candidates := make([]candidate, len(annotated))
	for i, rec := range annotated {
		abundance, ok := cluster.ParseAbundance(rec.ID)
		if !ok {
			return nil, fmt.Errorf("%s carries no size annotation", rec.ID)
		}

		seq, err := Normalize(rec.Seq)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ids[i], err)
		}

		candidates[i] = candidate{id: ids[i], seq: seq, abundance: abundance}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].abundance > candidates[j].abundance
	})

	fn := e.identity
	if fn == nil {
		fn = Identity
	}

	// Features that share a sequence (after normalization) repeat the same
	// comparisons against every seed; those come from the cache. The cache
	// lives for one call.
	identity := memoize.Memoize(fn).(func(string, string) (float64, error))

	seeds := make([]candidate, 0)
	links := make(map[string]string)

CandidateLoop:
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, seed := range seeds {
			id, err := identity(seed.seq, c.seq)
			if err != nil {
				return nil, fmt.Errorf("aligning %s to %s: %w", c.id, seed.id, err)
			}
			if id >= percIdentity {
				links[c.id] = seed.id
				continue CandidateLoop
			}
		}

		seeds = append(seeds, c)
	}

	seedIDs := make([]string, len(seeds))
	for i, seed := range seeds {
		seedIDs[i] = seed.id
	}

	return cluster.NewAssignment(ids, seedIDs, links)
}

package cluster

import (
	"fmt"
	"sort"

	"github.com/carbocation/featureclust/sequence"
	"github.com/carbocation/featureclust/table"
)

// Representatives returns the original record of every cluster seed, most
// abundant first. Abundance is the seed's own row total in t, the table from
// before collapsing. Seeds with equal abundance keep their order in seqs.
func Representatives(a *Assignment, seqs []sequence.Record, t table.Table) ([]sequence.Record, error) {
	totals := TotalAbundances(t)

	position := make(map[string]int, len(seqs))
	for i, rec := range seqs {
		position[rec.ID] = i
	}

	type ranked struct {
		rec       sequence.Record
		abundance float64
		index     int
	}

	out := make([]ranked, 0, len(a.Seeds))
	for _, seed := range a.Seeds {
		i, exists := position[seed]
		if !exists {
			return nil, fmt.Errorf("Representatives: seed %s has no sequence", seed)
		}
		abundance, exists := totals[seed]
		if !exists {
			return nil, fmt.Errorf("Representatives: seed %s is not a row of the table", seed)
		}
		out = append(out, ranked{rec: seqs[i], abundance: abundance, index: i})
	}

	// The index comparison makes the order independent of a.Seeds.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].abundance != out[j].abundance {
			return out[i].abundance > out[j].abundance
		}
		return out[i].index < out[j].index
	})

	recs := make([]sequence.Record, len(out))
	for i, r := range out {
		recs[i] = r.rec
	}

	return recs, nil
}

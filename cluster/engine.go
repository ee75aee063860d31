package cluster

import (
	"context"
	"fmt"

	"github.com/carbocation/featureclust/sequence"
	"github.com/theodesp/unionfind"
)

// Engine groups abundance-annotated sequences by similarity. Implementations
// choose the seed of every cluster. annotated carries identifiers of the
// form "<id>;size=<abundance>"; the returned Assignment uses the bare ids.
type Engine interface {
	Cluster(ctx context.Context, annotated []sequence.Record, percIdentity float64) (*Assignment, error)
}

// Assignment is a partition of feature identifiers into clusters, each
// headed by a seed.
type Assignment struct {
	// Seeds lists the cluster seeds in the order the engine discovered them.
	Seeds []string

	// Members maps each seed to its cluster. The seed is always the first
	// member.
	Members map[string][]string

	seedOf map[string]string
}

// SeedOf returns the seed of the cluster holding id.
func (a *Assignment) SeedOf(id string) (string, bool) {
	seed, exists := a.seedOf[id]
	return seed, exists
}

// Len returns the number of clusters.
func (a *Assignment) Len() int {
	return len(a.Seeds)
}

// Covers checks that the assignment partitions exactly ids.
func (a *Assignment) Covers(ids []string) error {
	if len(ids) != len(a.seedOf) {
		return fmt.Errorf("assignment holds %d identifiers, expected %d", len(a.seedOf), len(ids))
	}
	for _, id := range ids {
		if _, exists := a.seedOf[id]; !exists {
			return fmt.Errorf("%s was not assigned to any cluster", id)
		}
	}
	return nil
}

// Singletons puts every identifier in its own cluster.
func Singletons(ids []string) (*Assignment, error) {
	return NewAssignment(ids, ids, nil)
}

// NewAssignment partitions ids. seeds lists the cluster seeds in discovery
// order. links maps a non-seed identifier to the identifier it was matched
// against, which is usually its seed but may be any member of the same
// cluster. Every connected group of identifiers must contain exactly one
// seed, and every identifier must be reachable.
func NewAssignment(ids []string, seeds []string, links map[string]string) (*Assignment, error) {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, exists := index[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFeature, id)
		}
		index[id] = i
	}

	isSeed := make(map[string]bool, len(seeds))
	for _, seed := range seeds {
		if _, exists := index[seed]; !exists {
			return nil, fmt.Errorf("seed %s is not one of the clustered identifiers", seed)
		}
		if isSeed[seed] {
			return nil, fmt.Errorf("seed %s was reported twice", seed)
		}
		isSeed[seed] = true
	}

	uf := unionfind.New(len(ids))
	for member, target := range links {
		i, exists := index[member]
		if !exists {
			return nil, fmt.Errorf("%s was assigned a cluster but is not one of the clustered identifiers", member)
		}
		j, exists := index[target]
		if !exists {
			return nil, fmt.Errorf("%s was matched to %s, which is not one of the clustered identifiers", member, target)
		}
		uf.Union(i, j)
	}

	// Name every connected group by its seed.
	seedOfRoot := make(map[int]string, len(seeds))
	for _, seed := range seeds {
		root := uf.Root(index[seed])
		if other, exists := seedOfRoot[root]; exists {
			return nil, fmt.Errorf("seeds %s and %s ended up in the same cluster", other, seed)
		}
		seedOfRoot[root] = seed
	}

	a := &Assignment{
		Seeds:   append([]string(nil), seeds...),
		Members: make(map[string][]string, len(seeds)),
		seedOf:  make(map[string]string, len(ids)),
	}
	for _, seed := range seeds {
		a.Members[seed] = []string{seed}
		a.seedOf[seed] = seed
	}

	for i, id := range ids {
		if isSeed[id] {
			continue
		}
		seed, exists := seedOfRoot[uf.Root(i)]
		if !exists {
			return nil, fmt.Errorf("%s was not assigned to any cluster", id)
		}
		a.Members[seed] = append(a.Members[seed], id)
		a.seedOf[id] = seed
	}

	return a, nil
}

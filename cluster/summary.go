package cluster

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary describes the cluster sizes of an Assignment.
type Summary struct {
	Features   int
	Clusters   int
	Singletons int
	Largest    int
	MeanSize   float64
	MedianSize float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d features in %d clusters (%d singletons). Cluster size: largest %d, mean %.2f, median %.1f", s.Features, s.Clusters, s.Singletons, s.Largest, s.MeanSize, s.MedianSize)
}

// Summarize computes cluster size statistics for a.
func Summarize(a *Assignment) (Summary, error) {
	out := Summary{Clusters: a.Len()}
	if out.Clusters == 0 {
		return out, nil
	}

	sizes := make(stats.Float64Data, 0, a.Len())
	for _, seed := range a.Seeds {
		n := len(a.Members[seed])
		out.Features += n
		if n == 1 {
			out.Singletons++
		}
		if n > out.Largest {
			out.Largest = n
		}
		sizes = append(sizes, float64(n))
	}

	var err error
	if out.MeanSize, err = stats.Mean(sizes); err != nil {
		return out, err
	}
	if out.MedianSize, err = stats.Median(sizes); err != nil {
		return out, err
	}

	return out, nil
}

package rewardfactor

import (
	"slices"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// Percentile ranks for each cut point.
const (
	rankMean65     = 65
	rankMean85     = 85
	rankVariance30 = 30
	rankVariance70 = 70
)

// ComputeThresholds derives the population cut points from the contracts
// whose MeasureCount is greater than one. With no such contract every
// threshold is 0.
func ComputeThresholds(stats []types.ContractRatingStats) types.PercentileThresholds {
	means := make([]float64, 0, len(stats))
	variances := make([]float64, 0, len(stats))
	for _, s := range stats {
		if !qualifies(s) {
			continue
		}
		means = append(means, s.WeightedMean)
		variances = append(variances, s.WeightedVariance)
	}
	if len(means) == 0 {
		return types.PercentileThresholds{}
	}

	slices.Sort(means)
	slices.Sort(variances)

	return types.PercentileThresholds{
		Mean65th:     Percentile(means, rankMean65),
		Mean85th:     Percentile(means, rankMean85),
		Variance30th: Percentile(variances, rankVariance30),
		Variance70th: Percentile(variances, rankVariance70),
	}
}

// qualifies reports whether a contract has enough valid measures for its
// variance to mean anything.
func qualifies(s types.ContractRatingStats) bool {
	return s.MeasureCount > 1
}

package rewardfactor

import (
	"slices"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// Population is the reward factor outcome for a whole set of contracts.
type Population struct {
	RatingType     types.RatingType           `json:"rating_type"`
	FilterCategory string                     `json:"filter_category,omitempty"`
	Thresholds     types.PercentileThresholds `json:"thresholds"`

	// Stats and Results are sorted by contract ID.
	Stats   []types.ContractRatingStats `json:"stats"`
	Results []types.RewardFactorResult  `json:"results"`

	// Excluded lists contracts classified without contributing to the
	// thresholds because they have fewer than two valid measures.
	Excluded []string `json:"excluded,omitempty"`
}

// EvaluatePopulation computes statistics, thresholds and reward factors for
// every contract. baseRatings may be nil; a contract missing from it uses its
// weighted mean as the base rating.
func EvaluatePopulation(
	contracts map[string][]types.ContractMeasure,
	rt types.RatingType,
	filterCategory string,
	baseRatings map[string]float64,
) Population {
	stats := statsFor(contracts, filterCategory)
	ids := sortedKeys(stats)

	ordered := make([]types.ContractRatingStats, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, stats[id])
	}
	th := ComputeThresholds(ordered)

	pop := Population{
		RatingType:     rt,
		FilterCategory: filterCategory,
		Thresholds:     th,
		Stats:          ordered,
		Results:        make([]types.RewardFactorResult, 0, len(ordered)),
	}
	for _, s := range ordered {
		if !qualifies(s) {
			pop.Excluded = append(pop.Excluded, s.ContractID)
		}
		if base, ok := baseRatings[s.ContractID]; ok {
			pop.Results = append(pop.Results, RewardFactorWithBase(s, th, rt, base))
			continue
		}
		pop.Results = append(pop.Results, RewardFactor(s, th, rt))
	}
	return pop
}

// statsFor computes ContractStats for every contract in the map.
func statsFor(contracts map[string][]types.ContractMeasure, filterCategory string) map[string]types.ContractRatingStats {
	out := make(map[string]types.ContractRatingStats, len(contracts))
	for id, measures := range contracts {
		out[id] = ContractStats(id, measures, filterCategory)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

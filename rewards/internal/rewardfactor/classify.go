package rewardfactor

import "github.com/mrcherrywood/explore-sub002/pkg/types"

// Bounds for the adjusted rating.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// rFactorTable is the CMS reward factor lookup. A below-threshold mean never
// earns a reward.
var rFactorTable = map[types.MeanCategory]map[types.VarianceCategory]float64{
	types.MeanHigh: {
		types.VarianceLow:    0.4,
		types.VarianceMedium: 0.3,
		types.VarianceHigh:   0.0,
	},
	types.MeanRelativelyHigh: {
		types.VarianceLow:    0.2,
		types.VarianceMedium: 0.1,
		types.VarianceHigh:   0.0,
	},
	types.MeanBelowThreshold: {
		types.VarianceLow:    0.0,
		types.VarianceMedium: 0.0,
		types.VarianceHigh:   0.0,
	},
}

// ClassifyMean buckets a weighted mean. Both comparisons are inclusive.
func ClassifyMean(mean float64, th types.PercentileThresholds) types.MeanCategory {
	switch {
	case mean >= th.Mean85th:
		return types.MeanHigh
	case mean >= th.Mean65th:
		return types.MeanRelativelyHigh
	default:
		return types.MeanBelowThreshold
	}
}

// ClassifyVariance buckets a weighted variance. Both comparisons are strict.
func ClassifyVariance(variance float64, th types.PercentileThresholds) types.VarianceCategory {
	switch {
	case variance < th.Variance30th:
		return types.VarianceLow
	case variance < th.Variance70th:
		return types.VarianceMedium
	default:
		return types.VarianceHigh
	}
}

// RFactorFor looks up the reward for a bucket pair. Unknown categories earn 0.
func RFactorFor(mc types.MeanCategory, vc types.VarianceCategory) float64 {
	return rFactorTable[mc][vc]
}

// RewardFactor classifies stats against th and uses the contract's weighted
// mean as the base rating.
func RewardFactor(stats types.ContractRatingStats, th types.PercentileThresholds, rt types.RatingType) types.RewardFactorResult {
	return RewardFactorWithBase(stats, th, rt, stats.WeightedMean)
}

// RewardFactorWithBase classifies stats against th and adds the resulting
// r-factor to baseRating, clamped to [MinRating, MaxRating].
//
// Contracts with one or zero valid measures are still classified with a
// variance of 0. That is low unless the 30th percentile variance is itself 0,
// because the variance cut points are strict.
func RewardFactorWithBase(stats types.ContractRatingStats, th types.PercentileThresholds, rt types.RatingType, baseRating float64) types.RewardFactorResult {
	mc := ClassifyMean(stats.WeightedMean, th)
	vc := ClassifyVariance(stats.WeightedVariance, th)
	r := RFactorFor(mc, vc)

	return types.RewardFactorResult{
		ContractID:       stats.ContractID,
		RatingType:       rt,
		WeightedMean:     stats.WeightedMean,
		WeightedVariance: stats.WeightedVariance,
		MeanCategory:     mc,
		VarianceCategory: vc,
		RFactor:          r,
		BaseRating:       baseRating,
		AdjustedRating:   clampRating(baseRating + r),
	}
}

// clampRating restricts v to [MinRating, MaxRating].
func clampRating(v float64) float64 {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

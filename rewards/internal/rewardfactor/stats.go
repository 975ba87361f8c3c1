package rewardfactor

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// WeightedMean returns Σ(weight·star) / Σ(weight) over the valid measures,
// or 0 when no measure is valid.
func WeightedMean(measures []types.ContractMeasure) float64 {
	stars, weights := splitValid(measures)
	return weightedMean(stars, weights)
}

// WeightedVariance is WeightedVarianceAround using the measures' own
// weighted mean.
func WeightedVariance(measures []types.ContractMeasure) float64 {
	stars, weights := splitValid(measures)
	return weightedVariance(stars, weights, weightedMean(stars, weights))
}

// WeightedVarianceAround returns
//
//	n/(n-1) · Σ(weight·(star-mean)²) / Σ(weight)
//
// over the n valid measures, or 0 when n <= 1.
func WeightedVarianceAround(measures []types.ContractMeasure, mean float64) float64 {
	stars, weights := splitValid(measures)
	return weightedVariance(stars, weights, mean)
}

// ContractStats aggregates one contract's measures. A non-empty
// filterCategory restricts the measures to that category first.
func ContractStats(contractID string, measures []types.ContractMeasure, filterCategory string) types.ContractRatingStats {
	if filterCategory != "" {
		measures = byCategory(measures, filterCategory)
	}
	stars, weights := splitValid(measures)
	mean := weightedMean(stars, weights)

	return types.ContractRatingStats{
		ContractID:       contractID,
		WeightedMean:     mean,
		WeightedVariance: weightedVariance(stars, weights, mean),
		MeasureCount:     len(stars),
		TotalWeight:      sum(weights),
	}
}

func weightedMean(stars, weights []float64) float64 {
	if len(stars) == 0 {
		return 0
	}
	return stat.Mean(stars, weights)
}

func weightedVariance(stars, weights []float64, mean float64) float64 {
	n := len(stars)
	if n <= 1 {
		return 0
	}
	var sq float64
	for i, s := range stars {
		d := s - mean
		sq += weights[i] * d * d
	}
	bessel := float64(n) / float64(n-1)
	return bessel * (sq / sum(weights))
}

// splitValid returns parallel star and weight slices for the valid measures.
func splitValid(measures []types.ContractMeasure) (stars, weights []float64) {
	stars = make([]float64, 0, len(measures))
	weights = make([]float64, 0, len(measures))
	for _, m := range measures {
		if !m.Valid() {
			continue
		}
		stars = append(stars, m.StarValue)
		weights = append(weights, m.Weight)
	}
	return stars, weights
}

func byCategory(measures []types.ContractMeasure, category string) []types.ContractMeasure {
	out := make([]types.ContractMeasure, 0, len(measures))
	for _, m := range measures {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// sum adds left to right so totals match a plain running reduction.
func sum(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total
}

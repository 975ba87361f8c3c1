package types

import "math"

// Category labels used to split measures by plan part.
const (
	CategoryPartC = "Part C"
	CategoryPartD = "Part D"
)

// ContractMeasure is one measure's star performance for one contract in one
// reporting year. Absent measures are left out of the slice entirely rather
// than carried with a sentinel star value.
type ContractMeasure struct {
	Code      string  `yaml:"code" json:"code"`
	StarValue float64 `yaml:"star_value" json:"star_value"`
	Weight    float64 `yaml:"weight" json:"weight"`
	Category  string  `yaml:"category" json:"category"`
}

// Valid reports whether the measure takes part in aggregation: both the star
// value and the weight must be finite and strictly positive.
func (m ContractMeasure) Valid() bool {
	return isPositive(m.StarValue) && isPositive(m.Weight)
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ContractRatingStats is the weighted aggregate for one contract.
// WeightedVariance is 0 whenever MeasureCount <= 1.
type ContractRatingStats struct {
	ContractID       string  `yaml:"contract_id" json:"contract_id"`
	WeightedMean     float64 `yaml:"weighted_mean" json:"weighted_mean"`
	WeightedVariance float64 `yaml:"weighted_variance" json:"weighted_variance"`
	MeasureCount     int     `yaml:"measure_count" json:"measure_count"`
	TotalWeight      float64 `yaml:"total_weight" json:"total_weight"`
}

// PercentileThresholds are the population cut points used for classification.
type PercentileThresholds struct {
	Mean65th     float64 `yaml:"mean_65th" json:"mean_65th"`
	Mean85th     float64 `yaml:"mean_85th" json:"mean_85th"`
	Variance30th float64 `yaml:"variance_30th" json:"variance_30th"`
	Variance70th float64 `yaml:"variance_70th" json:"variance_70th"`
}

// Sub returns the element-wise difference t - o.
func (t PercentileThresholds) Sub(o PercentileThresholds) PercentileThresholds {
	return PercentileThresholds{
		Mean65th:     t.Mean65th - o.Mean65th,
		Mean85th:     t.Mean85th - o.Mean85th,
		Variance30th: t.Variance30th - o.Variance30th,
		Variance70th: t.Variance70th - o.Variance70th,
	}
}

// MeanCategory buckets a contract's weighted mean against the population.
type MeanCategory string

const (
	MeanHigh           MeanCategory = "high"
	MeanRelativelyHigh MeanCategory = "relatively_high"
	MeanBelowThreshold MeanCategory = "below_threshold"
)

// VarianceCategory buckets a contract's weighted variance against the population.
type VarianceCategory string

const (
	VarianceLow    VarianceCategory = "low"
	VarianceMedium VarianceCategory = "medium"
	VarianceHigh   VarianceCategory = "high"
)

// RatingType selects which official threshold column a computation is
// compared against. It does not change the computation itself.
type RatingType string

const (
	RatingPartC       RatingType = "part_c"
	RatingPartDMAPD   RatingType = "part_d_mapd"
	RatingPartDPDP    RatingType = "part_d_pdp"
	RatingOverallMAPD RatingType = "overall_mapd"
)

// RatingTypes lists every rating type in display order.
func RatingTypes() []RatingType {
	return []RatingType{RatingPartC, RatingPartDMAPD, RatingPartDPDP, RatingOverallMAPD}
}

// Valid reports whether r is one of the known rating types.
func (r RatingType) Valid() bool {
	switch r {
	case RatingPartC, RatingPartDMAPD, RatingPartDPDP, RatingOverallMAPD:
		return true
	}
	return false
}

// RewardFactorResult is the per-contract output of the reward factor calculation.
type RewardFactorResult struct {
	ContractID       string           `yaml:"contract_id" json:"contract_id"`
	RatingType       RatingType       `yaml:"rating_type" json:"rating_type"`
	WeightedMean     float64          `yaml:"weighted_mean" json:"weighted_mean"`
	WeightedVariance float64          `yaml:"weighted_variance" json:"weighted_variance"`
	MeanCategory     MeanCategory     `yaml:"mean_category" json:"mean_category"`
	VarianceCategory VarianceCategory `yaml:"variance_category" json:"variance_category"`
	RFactor          float64          `yaml:"r_factor" json:"r_factor"`
	BaseRating       float64          `yaml:"base_rating" json:"base_rating"`
	AdjustedRating   float64          `yaml:"adjusted_rating" json:"adjusted_rating"`
}

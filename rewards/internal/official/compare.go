package official

import (
	"math"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// Comparison diffs calculated thresholds against the official row.
type Comparison struct {
	Year                        int                        `json:"year"`
	RatingType                  types.RatingType           `json:"rating_type"`
	ImprovementMeasuresIncluded bool                       `json:"improvement_measures_included"`
	NewMeasuresIncluded         bool                       `json:"new_measures_included"`
	Calculated                  types.PercentileThresholds `json:"calculated"`
	Official                    types.PercentileThresholds `json:"official"`
	// Differences is calculated minus official.
	Differences types.PercentileThresholds `json:"differences"`
	// PercentDifferences is (calculated-official)/official*100, or 0 where
	// the official value is 0.
	PercentDifferences types.PercentileThresholds `json:"percent_differences"`

	// Verified is copied from the official row. Status is "published" for a
	// verified row and "provisional" otherwise.
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
}

const (
	StatusPublished   = "published"
	StatusProvisional = "provisional"
)

// Compare diffs calculated against the CurrentYear row for the scenario.
// It returns false when no such row exists.
func Compare(calculated types.PercentileThresholds, rt types.RatingType, improvementIncluded, newIncluded bool) (*Comparison, bool) {
	return CompareYear(CurrentYear, calculated, rt, improvementIncluded, newIncluded)
}

// CompareYear is Compare against a specific rating year.
func CompareYear(year int, calculated types.PercentileThresholds, rt types.RatingType, improvementIncluded, newIncluded bool) (*Comparison, bool) {
	row, ok := Lookup(year, improvementIncluded, newIncluded)
	if !ok {
		return nil, false
	}
	off := ToPercentileThresholds(row, rt)

	return &Comparison{
		Year:                        year,
		RatingType:                  rt,
		ImprovementMeasuresIncluded: improvementIncluded,
		NewMeasuresIncluded:         newIncluded,
		Calculated:                  calculated,
		Official:                    off,
		Differences:                 calculated.Sub(off),
		PercentDifferences: types.PercentileThresholds{
			Mean65th:     percentDiff(calculated.Mean65th, off.Mean65th),
			Mean85th:     percentDiff(calculated.Mean85th, off.Mean85th),
			Variance30th: percentDiff(calculated.Variance30th, off.Variance30th),
			Variance70th: percentDiff(calculated.Variance70th, off.Variance70th),
		},
		Verified: row.Verified,
		Status:   status(row.Verified),
	}, true
}

// MaxAbsPercentDifference returns the largest absolute percentage difference
// across the four thresholds.
func (c *Comparison) MaxAbsPercentDifference() float64 {
	p := c.PercentDifferences
	return math.Max(
		math.Max(math.Abs(p.Mean65th), math.Abs(p.Mean85th)),
		math.Max(math.Abs(p.Variance30th), math.Abs(p.Variance70th)),
	)
}

func status(verified bool) string {
	if verified {
		return StatusPublished
	}
	return StatusProvisional
}

func percentDiff(calc, official float64) float64 {
	if official == 0 {
		return 0
	}
	return (calc - official) / official * 100
}

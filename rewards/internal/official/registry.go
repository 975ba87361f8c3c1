package official

import (
	"slices"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// CurrentYear is the rating year Get looks up.
const CurrentYear = 2026

// OfficialThresholds is one scenario row of a published threshold table.
type OfficialThresholds struct {
	Year                        int                        `json:"year"`
	ImprovementMeasuresIncluded bool                       `json:"improvement_measures_included"`
	NewMeasuresIncluded         bool                       `json:"new_measures_included"`
	PartC                       types.PercentileThresholds `json:"part_c"`
	PartDMAPD                   types.PercentileThresholds `json:"part_d_mapd"`
	PartDPDP                    types.PercentileThresholds `json:"part_d_pdp"`
	OverallMAPD                 types.PercentileThresholds `json:"overall_mapd"`

	// Verified is set once every value in the row has been checked against
	// the published Technical Notes. Unverified rows are provisional.
	Verified bool `json:"verified"`
}

// registry maps a rating year to its scenario rows.
var registry = map[int][]OfficialThresholds{
	2026: thresholds2026[:],
}

// Years returns the rating years with a published table, ascending.
func Years() []int {
	years := make([]int, 0, len(registry))
	for y := range registry {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Get returns the CurrentYear row for the scenario.
func Get(improvementIncluded, newIncluded bool) (OfficialThresholds, bool) {
	return Lookup(CurrentYear, improvementIncluded, newIncluded)
}

// Lookup returns the row for year and scenario, or false when no such row
// is published.
func Lookup(year int, improvementIncluded, newIncluded bool) (OfficialThresholds, bool) {
	for _, row := range registry[year] {
		if row.ImprovementMeasuresIncluded == improvementIncluded && row.NewMeasuresIncluded == newIncluded {
			return row, true
		}
	}
	return OfficialThresholds{}, false
}

// ToPercentileThresholds projects a scenario row onto one rating type.
// An unknown rating type yields zero thresholds.
func ToPercentileThresholds(o OfficialThresholds, rt types.RatingType) types.PercentileThresholds {
	switch rt {
	case types.RatingPartC:
		return o.PartC
	case types.RatingPartDMAPD:
		return o.PartDMAPD
	case types.RatingPartDPDP:
		return o.PartDPDP
	case types.RatingOverallMAPD:
		return o.OverallMAPD
	default:
		return types.PercentileThresholds{}
	}
}

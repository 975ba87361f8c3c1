package rewardfactor

import (
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// Side names which half of an impact comparison dropped a contract.
type Side string

const (
	SideCurrent   Side = "current"
	SideProjected Side = "projected"
	SideBoth      Side = "both"
)

// CodeSet is a set of upper-case measure codes.
type CodeSet map[string]struct{}

// NewCodeSet builds a CodeSet, trimming and upper-casing each code and
// skipping blanks.
func NewCodeSet(codes ...string) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			s[c] = struct{}{}
		}
	}
	return s
}

// Has reports whether code, upper-cased, is in the set.
func (s CodeSet) Has(code string) bool {
	_, ok := s[strings.ToUpper(code)]
	return ok
}

// Codes returns the set members in sorted order.
func (s CodeSet) Codes() []string {
	return sortedKeys(s)
}

// FilterMeasures returns the measures whose code is not in removed.
// The input slice is not modified.
func FilterMeasures(measures []types.ContractMeasure, removed CodeSet) []types.ContractMeasure {
	out := make([]types.ContractMeasure, 0, len(measures))
	for _, m := range measures {
		if removed.Has(m.Code) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ContractImpact is one contract's before/after comparison.
type ContractImpact struct {
	ContractID    string                   `json:"contract_id"`
	Current       types.RewardFactorResult `json:"current"`
	Projected     types.RewardFactorResult `json:"projected"`
	RFactorChange float64                  `json:"r_factor_change"`
}

// DroppedContract records a contract left out of ContractResults because it
// had one or zero valid measures on at least one side.
type DroppedContract struct {
	ContractID string `json:"contract_id"`
	Side       Side   `json:"side"`
}

// ImpactSummary aggregates the per-contract changes.
type ImpactSummary struct {
	ContractsAnalyzed int     `json:"contracts_analyzed"`
	Improved          int     `json:"improved"`
	Declined          int     `json:"declined"`
	Unchanged         int     `json:"unchanged"`
	MeanRFactorChange float64 `json:"mean_r_factor_change"`
}

// ImpactAnalysis is the result of AnalyzeImpact.
type ImpactAnalysis struct {
	RatingType          types.RatingType           `json:"rating_type"`
	RemovedCodes        []string                   `json:"removed_codes"`
	CurrentThresholds   types.PercentileThresholds `json:"current_thresholds"`
	ProjectedThresholds types.PercentileThresholds `json:"projected_thresholds"`
	// ThresholdChanges is projected minus current.
	ThresholdChanges types.PercentileThresholds `json:"threshold_changes"`
	// ContractResults holds only the contracts with more than one valid
	// measure on both sides, sorted by contract ID.
	ContractResults []ContractImpact  `json:"contract_results"`
	Dropped         []DroppedContract `json:"dropped,omitempty"`
	Summary         ImpactSummary     `json:"summary"`
}

// AnalyzeImpact recomputes thresholds and reward factors with and without
// the removed measure codes and reports the differences.
//
// Each side's thresholds come only from that side's qualifying contracts,
// so the two populations may differ in membership. All thresholds are fixed
// before any contract is classified.
func AnalyzeImpact(
	contracts map[string][]types.ContractMeasure,
	removed CodeSet,
	rt types.RatingType,
	filterCategory string,
) ImpactAnalysis {
	current := make(map[string]types.ContractRatingStats, len(contracts))
	projected := make(map[string]types.ContractRatingStats, len(contracts))
	var dropped []DroppedContract

	for _, id := range sortedKeys(contracts) {
		measures := contracts[id]
		cur := ContractStats(id, measures, filterCategory)
		proj := ContractStats(id, FilterMeasures(measures, removed), filterCategory)

		curOK, projOK := qualifies(cur), qualifies(proj)
		if curOK {
			current[id] = cur
		}
		if projOK {
			projected[id] = proj
		}
		switch {
		case !curOK && !projOK:
			dropped = append(dropped, DroppedContract{ContractID: id, Side: SideBoth})
		case !curOK:
			dropped = append(dropped, DroppedContract{ContractID: id, Side: SideCurrent})
		case !projOK:
			dropped = append(dropped, DroppedContract{ContractID: id, Side: SideProjected})
		}
	}

	curTh := ComputeThresholds(values(current))
	projTh := ComputeThresholds(values(projected))

	out := ImpactAnalysis{
		RatingType:          rt,
		RemovedCodes:        removed.Codes(),
		CurrentThresholds:   curTh,
		ProjectedThresholds: projTh,
		ThresholdChanges:    projTh.Sub(curTh),
		ContractResults:     []ContractImpact{},
		Dropped:             dropped,
	}

	for _, id := range sortedKeys(current) {
		proj, ok := projected[id]
		if !ok {
			continue
		}
		before := RewardFactor(current[id], curTh, rt)
		after := RewardFactor(proj, projTh, rt)
		out.ContractResults = append(out.ContractResults, ContractImpact{
			ContractID:    id,
			Current:       before,
			Projected:     after,
			RFactorChange: after.RFactor - before.RFactor,
		})
	}
	out.Summary = summarize(out.ContractResults)
	return out
}

func summarize(results []ContractImpact) ImpactSummary {
	s := ImpactSummary{ContractsAnalyzed: len(results)}
	if len(results) == 0 {
		return s
	}
	changes := make([]float64, 0, len(results))
	for _, r := range results {
		switch {
		case r.RFactorChange > 0:
			s.Improved++
		case r.RFactorChange < 0:
			s.Declined++
		default:
			s.Unchanged++
		}
		changes = append(changes, r.RFactorChange)
	}
	s.MeanRFactorChange = stat.Mean(changes, nil)
	return s
}

// values returns the map's stats ordered by contract ID.
func values(m map[string]types.ContractRatingStats) []types.ContractRatingStats {
	out := make([]types.ContractRatingStats, 0, len(m))
	for _, id := range sortedKeys(m) {
		out = append(out, m[id])
	}
	return out
}

// ImpactedContracts returns the contracts whose r-factor changed, largest
// decline first.
func (a ImpactAnalysis) ImpactedContracts() []ContractImpact {
	var out []ContractImpact
	for _, r := range a.ContractResults {
		if r.RFactorChange != 0 {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(x, y ContractImpact) int {
		switch {
		case x.RFactorChange < y.RFactorChange:
			return -1
		case x.RFactorChange > y.RFactorChange:
			return 1
		}
		return strings.Compare(x.ContractID, y.ContractID)
	})
	return out
}

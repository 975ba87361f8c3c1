// Package analysis runs the reward factor pipeline over a loaded dataset:
// population evaluation, the optional comparison against the official CMS
// thresholds, and the optional measure-removal impact analysis.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/config"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/exposition"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/ingest"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/official"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/rewardfactor"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/store"
)

// ErrEmptyPopulation is returned when the dataset yields no contracts.
var ErrEmptyPopulation = errors.New("no contracts in dataset")

// Options selects what Run computes.
type Options struct {
	RatingType     types.RatingType
	FilterCategory string

	// Compare enables the official threshold comparison for Year and the
	// given scenario.
	Compare             bool
	Year                int
	ImprovementIncluded bool
	NewIncluded         bool

	// RemovedCodes enables the impact analysis when non-empty.
	RemovedCodes []string
}

// OptionsFromConfig maps a loaded Config onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RatingType:          cfg.RatingType,
		FilterCategory:      cfg.FilterCategory,
		Compare:             cfg.Official.Compare,
		Year:                cfg.Year,
		ImprovementIncluded: cfg.Official.ImprovementMeasuresIncluded,
		NewIncluded:         cfg.Official.NewMeasuresIncluded,
		RemovedCodes:        cfg.Impact.RemovedCodes,
	}
}

// Report is everything one Run produced.
type Report struct {
	RatingType     types.RatingType        `json:"rating_type"`
	FilterCategory string                  `json:"filter_category,omitempty"`
	Join           ingest.JoinStats        `json:"join"`
	Population     rewardfactor.Population `json:"population"`

	// Comparison is nil when comparison is disabled or the scenario is not
	// published for the requested year.
	Comparison *official.Comparison `json:"comparison,omitempty"`

	// Impact is nil when no codes were removed.
	Impact *rewardfactor.ImpactAnalysis `json:"impact,omitempty"`

	// Baseline is nil unless CompareBaseline was called.
	Baseline *BaselineDiff `json:"baseline,omitempty"`
}

// BaselineDiff compares a report with the results of an earlier run.
type BaselineDiff struct {
	Source string `json:"source"`

	// HasThresholds is false when the baseline lacked any cut point; the
	// threshold fields are then zero.
	HasThresholds    bool                       `json:"has_thresholds"`
	Thresholds       types.PercentileThresholds `json:"thresholds"`
	ThresholdChanges types.PercentileThresholds `json:"threshold_changes"`

	Changes []store.Change `json:"changes"`
}

// Run evaluates ds according to opts.
func Run(ds *ingest.Dataset, opts Options) (*Report, error) {
	contracts, join := ds.Contracts()
	if len(contracts) == 0 {
		return nil, ErrEmptyPopulation
	}
	if join.Skipped() > 0 {
		slog.Info("analysis: skipped metric rows",
			"rows", join.Rows,
			"no_star", join.NoStar,
			"unknown_measure", join.UnknownMeasure,
			"duplicate", join.Duplicate,
		)
	}

	pop := rewardfactor.EvaluatePopulation(contracts, opts.RatingType, opts.FilterCategory, ds.BaseRatings)
	slog.Info("analysis: population evaluated",
		"rating_type", opts.RatingType,
		"contracts", len(pop.Results),
		"excluded_from_thresholds", len(pop.Excluded),
		"mean_65th", pop.Thresholds.Mean65th,
		"mean_85th", pop.Thresholds.Mean85th,
		"variance_30th", pop.Thresholds.Variance30th,
		"variance_70th", pop.Thresholds.Variance70th,
	)
	for _, id := range pop.Excluded {
		slog.Debug("analysis: contract excluded from thresholds", "contract", id)
	}

	rep := &Report{
		RatingType:     opts.RatingType,
		FilterCategory: opts.FilterCategory,
		Join:           join,
		Population:     pop,
	}

	if opts.Compare {
		cmp, ok := official.CompareYear(opts.Year, pop.Thresholds, opts.RatingType, opts.ImprovementIncluded, opts.NewIncluded)
		if ok {
			rep.Comparison = cmp
			slog.Info("analysis: compared with official thresholds",
				"year", opts.Year,
				"max_abs_pct_diff", cmp.MaxAbsPercentDifference(),
				"status", cmp.Status,
			)
			if !cmp.Verified {
				slog.Warn("analysis: official thresholds are provisional, differences are indicative only",
					"year", opts.Year,
					"improvement_included", opts.ImprovementIncluded,
					"new_included", opts.NewIncluded,
				)
			}
		} else {
			slog.Warn("analysis: no official thresholds for scenario, skipping comparison",
				"year", opts.Year,
				"improvement_included", opts.ImprovementIncluded,
				"new_included", opts.NewIncluded,
			)
		}
	}

	removed := rewardfactor.NewCodeSet(opts.RemovedCodes...)
	if len(removed) > 0 {
		impact := rewardfactor.AnalyzeImpact(contracts, removed, opts.RatingType, opts.FilterCategory)
		for _, d := range impact.Dropped {
			slog.Warn("analysis: contract left out of impact results",
				"contract", d.ContractID,
				"side", d.Side,
				"reason", "fewer than two valid measures",
			)
		}
		slog.Info("analysis: impact analyzed",
			"removed", impact.RemovedCodes,
			"contracts", impact.Summary.ContractsAnalyzed,
			"improved", impact.Summary.Improved,
			"declined", impact.Summary.Declined,
		)
		rep.Impact = &impact
	}

	return rep, nil
}

// CompareBaseline diffs the population results against b, restricted to the
// report's rating type, and attaches the outcome as r.Baseline.
func (r *Report) CompareBaseline(source string, b *exposition.Baseline) {
	prev := b.Results(r.RatingType)
	if len(prev) == 0 {
		slog.Warn("analysis: baseline has no results for rating type", "path", source, "rating_type", r.RatingType)
	}

	results := store.New()
	results.Replace(prev)
	diff := &BaselineDiff{
		Source:  source,
		Changes: results.Replace(r.Population.Results),
	}
	if th, ok := b.Thresholds(); ok {
		diff.HasThresholds = true
		diff.Thresholds = th
		diff.ThresholdChanges = r.Population.Thresholds.Sub(th)
	}
	slog.Info("analysis: compared with baseline",
		"path", source,
		"baseline_contracts", len(prev),
		"changed", len(diff.Changes),
	)
	r.Baseline = diff
}

// Describe is a one-line summary of a report, used in log messages.
func (r *Report) Describe() string {
	s := fmt.Sprintf("%d contracts (%s)", len(r.Population.Results), r.RatingType)
	if r.Impact != nil {
		s += fmt.Sprintf(", %d impacted", len(r.Impact.ImpactedContracts()))
	}
	if r.Baseline != nil {
		s += fmt.Sprintf(", %d changed since baseline", len(r.Baseline.Changes))
	}
	return s
}

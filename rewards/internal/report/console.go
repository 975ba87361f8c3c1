package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/analysis"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/official"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/rewardfactor"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/store"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	gainStyle   = cellStyle.Foreground(lipgloss.Color("10")) // green
	lossStyle   = cellStyle.Foreground(lipgloss.Color("9"))  // red
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// Console renders a report as lipgloss tables.
type Console struct {
	HideContracts bool
}

// Render writes the population, comparison and impact sections that are
// present in rep.
func (c *Console) Render(w io.Writer, rep *analysis.Report) error {
	pop := rep.Population

	title := fmt.Sprintf("Reward factors (%s)", rep.RatingType)
	if rep.FilterCategory != "" {
		title += " " + rep.FilterCategory
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"%d contracts, %d excluded from thresholds, %d rows skipped",
		len(pop.Results), len(pop.Excluded), rep.Join.Skipped())))
	fmt.Fprintln(w, thresholdTable(pop.Thresholds))

	if !c.HideContracts {
		fmt.Fprintln(w, resultsTable(pop.Results))
	}
	if rep.Comparison != nil {
		title := fmt.Sprintf("Official %d thresholds (improvement=%t, new=%t)",
			rep.Comparison.Year, rep.Comparison.ImprovementMeasuresIncluded, rep.Comparison.NewMeasuresIncluded)
		if !rep.Comparison.Verified {
			title += " [provisional]"
		}
		fmt.Fprintln(w, titleStyle.Render(title))
		if !rep.Comparison.Verified {
			fmt.Fprintln(w, mutedStyle.Render("Official values not yet checked against the published Technical Notes."))
		}
		fmt.Fprintln(w, comparisonTable(rep.Comparison))
	}
	if rep.Impact != nil {
		renderImpact(w, rep.Impact)
	}
	if rep.Baseline != nil {
		renderBaseline(w, rep.Population.Thresholds, rep.Baseline)
	}
	return nil
}

func thresholdTable(th types.PercentileThresholds) string {
	return newTable("MEAN 65TH", "MEAN 85TH", "VARIANCE 30TH", "VARIANCE 70TH").
		Row(num(th.Mean65th), num(th.Mean85th), num(th.Variance30th), num(th.Variance70th)).
		String()
}

func resultsTable(results []types.RewardFactorResult) string {
	t := newTable("CONTRACT", "MEAN", "VARIANCE", "MEAN CATEGORY", "VARIANCE CATEGORY", "R-FACTOR", "BASE", "ADJUSTED")
	for _, r := range results {
		t.Row(
			r.ContractID,
			num(r.WeightedMean),
			num(r.WeightedVariance),
			string(r.MeanCategory),
			string(r.VarianceCategory),
			strconv.FormatFloat(r.RFactor, 'f', 1, 64),
			num(r.BaseRating),
			num(r.AdjustedRating),
		)
	}
	return t.String()
}

func comparisonTable(c *official.Comparison) string {
	rows := []struct {
		cut             string
		calc, off, diff float64
		pct             float64
	}{
		{"mean_65th", c.Calculated.Mean65th, c.Official.Mean65th, c.Differences.Mean65th, c.PercentDifferences.Mean65th},
		{"mean_85th", c.Calculated.Mean85th, c.Official.Mean85th, c.Differences.Mean85th, c.PercentDifferences.Mean85th},
		{"variance_30th", c.Calculated.Variance30th, c.Official.Variance30th, c.Differences.Variance30th, c.PercentDifferences.Variance30th},
		{"variance_70th", c.Calculated.Variance70th, c.Official.Variance70th, c.Differences.Variance70th, c.PercentDifferences.Variance70th},
	}
	t := newTable("CUT", "CALCULATED", "OFFICIAL", "DIFF", "DIFF %")
	for _, r := range rows {
		t.Row(r.cut, num(r.calc), num(r.off), signed(r.diff), strconv.FormatFloat(r.pct, 'f', 2, 64)+"%")
	}
	return t.String()
}

func renderImpact(w io.Writer, a *rewardfactor.ImpactAnalysis) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Impact of removing %v", a.RemovedCodes)))

	changes := newTable("CUT", "CURRENT", "PROJECTED", "CHANGE").
		Row("mean_65th", num(a.CurrentThresholds.Mean65th), num(a.ProjectedThresholds.Mean65th), signed(a.ThresholdChanges.Mean65th)).
		Row("mean_85th", num(a.CurrentThresholds.Mean85th), num(a.ProjectedThresholds.Mean85th), signed(a.ThresholdChanges.Mean85th)).
		Row("variance_30th", num(a.CurrentThresholds.Variance30th), num(a.ProjectedThresholds.Variance30th), signed(a.ThresholdChanges.Variance30th)).
		Row("variance_70th", num(a.CurrentThresholds.Variance70th), num(a.ProjectedThresholds.Variance70th), signed(a.ThresholdChanges.Variance70th))
	fmt.Fprintln(w, changes.String())

	impacted := a.ImpactedContracts()
	t := newTable("CONTRACT", "CURRENT", "PROJECTED", "CHANGE")
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 3 && row < len(impacted) {
			if impacted[row].RFactorChange > 0 {
				return gainStyle
			}
			return lossStyle
		}
		return cellStyle
	})
	for _, r := range impacted {
		t.Row(r.ContractID,
			fmt.Sprintf("%.1f %s/%s", r.Current.RFactor, r.Current.MeanCategory, r.Current.VarianceCategory),
			fmt.Sprintf("%.1f %s/%s", r.Projected.RFactor, r.Projected.MeanCategory, r.Projected.VarianceCategory),
			signed(r.RFactorChange),
		)
	}
	if len(impacted) > 0 {
		fmt.Fprintln(w, t.String())
	}

	s := a.Summary
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"%d analyzed: %d improved, %d declined, %d unchanged (mean change %s)",
		s.ContractsAnalyzed, s.Improved, s.Declined, s.Unchanged, signed(s.MeanRFactorChange))))
	for _, d := range a.Dropped {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
			"%s left out: fewer than two valid measures (%s)", d.ContractID, d.Side)))
	}
}

func renderBaseline(w io.Writer, current types.PercentileThresholds, d *analysis.BaselineDiff) {
	fmt.Fprintln(w, titleStyle.Render("Changes since "+d.Source))

	if d.HasThresholds {
		fmt.Fprintln(w, newTable("CUT", "BASELINE", "CURRENT", "CHANGE").
			Row("mean_65th", num(d.Thresholds.Mean65th), num(current.Mean65th), signed(d.ThresholdChanges.Mean65th)).
			Row("mean_85th", num(d.Thresholds.Mean85th), num(current.Mean85th), signed(d.ThresholdChanges.Mean85th)).
			Row("variance_30th", num(d.Thresholds.Variance30th), num(current.Variance30th), signed(d.ThresholdChanges.Variance30th)).
			Row("variance_70th", num(d.Thresholds.Variance70th), num(current.Variance70th), signed(d.ThresholdChanges.Variance70th)).
			String())
	}

	if len(d.Changes) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no reward factor changes"))
		return
	}
	t := newTable("CONTRACT", "CHANGE", "BASELINE", "CURRENT")
	for _, c := range d.Changes {
		prev, cur := strconv.FormatFloat(c.Previous, 'f', 1, 64), strconv.FormatFloat(c.Current, 'f', 1, 64)
		switch c.Kind {
		case store.ChangeAdded:
			prev = "-"
		case store.ChangeRemoved:
			cur = "-"
		}
		t.Row(c.ContractID, string(c.Kind), prev, cur)
	}
	fmt.Fprintln(w, t.String())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func signed(v float64) string {
	if v > 0 {
		return "+" + num(v)
	}
	return num(v)
}

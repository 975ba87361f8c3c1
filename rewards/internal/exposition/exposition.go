// Package exposition renders reward factor results in the Prometheus text
// exposition format, so a file written by the CLI can be picked up by a
// node_exporter textfile collector, and reads such files back as a baseline
// for later runs.
package exposition

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/rewardfactor"
)

// Metric family names written by this package.
const (
	MetricRFactor          = "reward_factor"
	MetricAdjustedRating   = "reward_factor_adjusted_rating"
	MetricWeightedMean     = "reward_factor_weighted_mean"
	MetricWeightedVariance = "reward_factor_weighted_variance"
	MetricThreshold        = "reward_factor_threshold"
	MetricRFactorChange    = "reward_factor_impact_change"
	MetricImpactThreshold  = "reward_factor_impact_threshold"
	MetricThresholdChange  = "reward_factor_impact_threshold_change"
)

// WriteResults writes one sample per contract for each per-contract family,
// followed by the four population thresholds.
func WriteResults(w io.Writer, results []types.RewardFactorResult, th types.PercentileThresholds) error {
	rf := gauge(MetricRFactor, "CMS reward factor awarded to the contract.")
	adj := gauge(MetricAdjustedRating, "Base rating plus reward factor, clamped to [1, 5].")
	mean := gauge(MetricWeightedMean, "Weighted mean of the contract's valid measure stars.")
	variance := gauge(MetricWeightedVariance, "Bessel-corrected weighted variance of the contract's measure stars.")

	for _, r := range results {
		id, rt := r.ContractID, string(r.RatingType)
		addSample(rf, r.RFactor,
			"contract_id", id, "rating_type", rt,
			"mean_category", string(r.MeanCategory), "variance_category", string(r.VarianceCategory))
		addSample(adj, r.AdjustedRating, "contract_id", id, "rating_type", rt)
		addSample(mean, r.WeightedMean, "contract_id", id, "rating_type", rt)
		addSample(variance, r.WeightedVariance, "contract_id", id, "rating_type", rt)
	}

	thr := gauge(MetricThreshold, "Population percentile cut point.")
	addThresholds(thr, th)

	return write(w, rf, adj, mean, variance, thr)
}

// WriteImpact writes the per-contract r-factor change and the threshold
// values for both sides of an impact analysis.
func WriteImpact(w io.Writer, a rewardfactor.ImpactAnalysis) error {
	change := gauge(MetricRFactorChange, "Projected minus current reward factor.")
	for _, r := range a.ContractResults {
		addSample(change, r.RFactorChange, "contract_id", r.ContractID, "rating_type", string(a.RatingType))
	}

	thr := gauge(MetricImpactThreshold, "Percentile cut point on each side of the impact analysis.")
	addThresholds(thr, a.CurrentThresholds, "side", "current")
	addThresholds(thr, a.ProjectedThresholds, "side", "projected")

	delta := gauge(MetricThresholdChange, "Projected minus current percentile cut point.")
	addThresholds(delta, a.ThresholdChanges)

	return write(w, change, thr, delta)
}

// ErrNoResults is returned when an exposition holds no reward factor samples
// and no thresholds.
var ErrNoResults = errors.New("no reward factor results in exposition")

// Baseline is a results exposition written by an earlier run.
type Baseline struct {
	families map[string]*dto.MetricFamily
}

// LoadBaseline reads the exposition file at path.
func LoadBaseline(path string) (*Baseline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("exposition: open baseline: %w", err)
	}
	defer f.Close()
	return ReadBaseline(f)
}

// ReadBaseline parses a results exposition from r.
func ReadBaseline(r io.Reader) (*Baseline, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("exposition: parse text: %w", err)
	}
	if mfs[MetricRFactor] == nil && mfs[MetricThreshold] == nil {
		return nil, ErrNoResults
	}
	return &Baseline{families: mfs}, nil
}

// Results rebuilds the per-contract results of rating type rt, sorted by
// contract ID. Fields absent from the exposition stay zero.
func (b *Baseline) Results(rt types.RatingType) []types.RewardFactorResult {
	var out []types.RewardFactorResult
	for _, m := range b.families[MetricRFactor].GetMetric() {
		if labelValue(m, "rating_type") != string(rt) {
			continue
		}
		id := labelValue(m, "contract_id")
		if id == "" {
			continue
		}
		match := map[string]string{"contract_id": id, "rating_type": string(rt)}
		res := types.RewardFactorResult{
			ContractID:       id,
			RatingType:       rt,
			MeanCategory:     types.MeanCategory(labelValue(m, "mean_category")),
			VarianceCategory: types.VarianceCategory(labelValue(m, "variance_category")),
			RFactor:          sampleValue(m),
		}
		res.AdjustedRating, _ = lookup(b.families[MetricAdjustedRating], match)
		res.WeightedMean, _ = lookup(b.families[MetricWeightedMean], match)
		res.WeightedVariance, _ = lookup(b.families[MetricWeightedVariance], match)
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContractID < out[j].ContractID })
	return out
}

// Thresholds returns the population thresholds, or false when any of the
// four cut points is missing.
func (b *Baseline) Thresholds() (types.PercentileThresholds, bool) {
	mf := b.families[MetricThreshold]
	var th types.PercentileThresholds
	for _, c := range []struct {
		name string
		dst  *float64
	}{
		{"mean_65th", &th.Mean65th},
		{"mean_85th", &th.Mean85th},
		{"variance_30th", &th.Variance30th},
		{"variance_70th", &th.Variance70th},
	} {
		v, ok := lookup(mf, map[string]string{"cut": c.name})
		if !ok {
			return types.PercentileThresholds{}, false
		}
		*c.dst = v
	}
	return th, true
}

// lookup returns the value of the first sample in mf whose labels include
// every pair in match.
func lookup(mf *dto.MetricFamily, match map[string]string) (float64, bool) {
	for _, m := range mf.GetMetric() {
		if hasLabels(m, match) {
			return sampleValue(m), true
		}
	}
	return 0, false
}

// sampleValue reads gauge or untyped samples; hand-edited files may drop the
// TYPE line.
func sampleValue(m *dto.Metric) float64 {
	if m.Gauge != nil {
		return m.Gauge.GetValue()
	}
	return m.GetUntyped().GetValue()
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func hasLabels(m *dto.Metric, match map[string]string) bool {
	found := 0
	for _, lp := range m.GetLabel() {
		if want, ok := match[lp.GetName()]; ok {
			if lp.GetValue() != want {
				return false
			}
			found++
		}
	}
	return found == len(match)
}

func addThresholds(mf *dto.MetricFamily, th types.PercentileThresholds, extra ...string) {
	cuts := []struct {
		name string
		v    float64
	}{
		{"mean_65th", th.Mean65th},
		{"mean_85th", th.Mean85th},
		{"variance_30th", th.Variance30th},
		{"variance_70th", th.Variance70th},
	}
	for _, c := range cuts {
		addSample(mf, c.v, append([]string{"cut", c.name}, extra...)...)
	}
}

func gauge(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: &name,
		Help: &help,
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

// addSample appends a gauge sample; labels are name/value pairs.
func addSample(mf *dto.MetricFamily, v float64, labels ...string) {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: &v}}
	for i := 0; i+1 < len(labels); i += 2 {
		name, value := labels[i], labels[i+1]
		m.Label = append(m.Label, &dto.LabelPair{Name: &name, Value: &value})
	}
	sort.Slice(m.Label, func(i, j int) bool { return m.Label[i].GetName() < m.Label[j].GetName() })
	mf.Metric = append(mf.Metric, m)
}

func write(w io.Writer, families ...*dto.MetricFamily) error {
	for _, mf := range families {
		if len(mf.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("exposition: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

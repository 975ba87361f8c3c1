package exposition

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/common/expfmt"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/rewardfactor"
)

var sampleResults = []types.RewardFactorResult{
	{
		ContractID: "H0001", RatingType: types.RatingPartC,
		WeightedMean: 4.75, WeightedVariance: 0.25,
		MeanCategory: types.MeanHigh, VarianceCategory: types.VarianceLow,
		RFactor: 0.4, BaseRating: 4.75, AdjustedRating: 5,
	},
	{
		ContractID: "H0002", RatingType: types.RatingPartC,
		WeightedMean: 3.5, WeightedVariance: 1.5,
		MeanCategory: types.MeanBelowThreshold, VarianceCategory: types.VarianceHigh,
		RFactor: 0, BaseRating: 3.5, AdjustedRating: 3.5,
	},
}

var sampleThresholds = types.PercentileThresholds{Mean65th: 3.9, Mean85th: 4.3, Variance30th: 0.6, Variance70th: 1.1}

func TestWriteResults_ReadBack(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, sampleResults, sampleThresholds); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	b, err := ReadBaseline(&buf)
	if err != nil {
		t.Fatalf("ReadBaseline: %v", err)
	}

	// The base rating is not exported; only the adjusted rating is.
	got := b.Results(types.RatingPartC)
	if diff := cmp.Diff(sampleResults, got, cmpopts.IgnoreFields(types.RewardFactorResult{}, "BaseRating")); diff != "" {
		t.Errorf("Results mismatch (-want +got):\n%s", diff)
	}
	th, ok := b.Thresholds()
	if !ok || th != sampleThresholds {
		t.Errorf("Thresholds() = %+v, %v, want %+v", th, ok, sampleThresholds)
	}
	if other := b.Results(types.RatingPartDPDP); len(other) != 0 {
		t.Errorf("Results(part_d_pdp) = %+v, want none", other)
	}
}

func TestReadBaseline_UntypedAndPartial(t *testing.T) {
	in := `reward_factor{contract_id="H0009",rating_type="part_c"} 0.2
reward_factor_threshold{cut="mean_65th"} 3.9
`
	b, err := ReadBaseline(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadBaseline: %v", err)
	}
	got := b.Results(types.RatingPartC)
	if len(got) != 1 || got[0].ContractID != "H0009" || got[0].RFactor != 0.2 {
		t.Errorf("Results = %+v", got)
	}
	if _, ok := b.Thresholds(); ok {
		t.Error("Thresholds() should report missing cut points")
	}
}

func TestReadBaseline_NoResults(t *testing.T) {
	in := "# TYPE other_metric gauge\nother_metric 1\n"
	if _, err := ReadBaseline(strings.NewReader(in)); !errors.Is(err, ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults", err)
	}
}

func TestLoadBaseline_MissingFile(t *testing.T) {
	if _, err := LoadBaseline(filepath.Join(t.TempDir(), "absent.prom")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, nil, types.PercentileThresholds{}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, MetricRFactor+"{") {
		t.Errorf("per-contract samples written for empty results:\n%s", out)
	}
	if !strings.Contains(out, MetricThreshold) {
		t.Errorf("thresholds missing:\n%s", out)
	}
}

func TestWriteImpact(t *testing.T) {
	a := rewardfactor.ImpactAnalysis{
		RatingType:          types.RatingPartDMAPD,
		CurrentThresholds:   sampleThresholds,
		ProjectedThresholds: types.PercentileThresholds{Mean65th: 4.0, Mean85th: 4.3, Variance30th: 0.5, Variance70th: 1.1},
		ContractResults: []rewardfactor.ContractImpact{
			{ContractID: "H0001", RFactorChange: -0.1},
		},
	}
	a.ThresholdChanges = a.ProjectedThresholds.Sub(a.CurrentThresholds)

	var buf bytes.Buffer
	if err := WriteImpact(&buf, a); err != nil {
		t.Fatalf("WriteImpact: %v", err)
	}
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if v, ok := lookup(mfs[MetricRFactorChange], map[string]string{"contract_id": "H0001", "rating_type": "part_d_mapd"}); !ok || v != -0.1 {
		t.Errorf("impact change = %v (found %v), want -0.1", v, ok)
	}
	if v, ok := lookup(mfs[MetricImpactThreshold], map[string]string{"cut": "mean_65th", "side": "projected"}); !ok || v != 4.0 {
		t.Errorf("projected mean_65th = %v (found %v), want 4.0", v, ok)
	}
	if v, ok := lookup(mfs[MetricImpactThreshold], map[string]string{"cut": "mean_65th", "side": "current"}); !ok || v != 3.9 {
		t.Errorf("current mean_65th = %v (found %v), want 3.9", v, ok)
	}
	if _, ok := lookup(mfs[MetricThresholdChange], map[string]string{"cut": "variance_30th"}); !ok {
		t.Error("threshold change sample missing")
	}
}

func TestLookup_NilFamily(t *testing.T) {
	if _, ok := lookup(nil, map[string]string{"cut": "mean_65th"}); ok {
		t.Error("lookup(nil) should report not found")
	}
}

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mrcherrywood/explore-sub002/rewards/internal/analysis"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/config"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/store"
)

const testDataset = `
year: 2026
measures:
  - {code: C01, weight: 1}
  - {code: C02, weight: 1}
  - {code: C03, weight: 1}
metrics:
  - {contract_id: H0001, measure_code: C01, star_rating: "5"}
  - {contract_id: H0001, measure_code: C02, star_rating: "5"}
  - {contract_id: H0001, measure_code: C03, star_rating: "4"}
  - {contract_id: H0002, measure_code: C01, star_rating: "3"}
  - {contract_id: H0002, measure_code: C02, star_rating: "4"}
  - {contract_id: H0002, measure_code: C03, star_rating: "5"}
  - {contract_id: H0003, measure_code: C01, star_rating: "2"}
  - {contract_id: H0003, measure_code: C03, star_rating: "3"}
`

// writeFixture lays out a config and dataset in a temp dir and returns the
// config path and an output path.
func writeFixture(t *testing.T, extra string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "measures.yaml"), []byte(testDataset), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := "inputs:\n  measures: measures.yaml\nlog:\n  level: error\n" + extra
	cfgPath := filepath.Join(dir, "rewardfactor.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, filepath.Join(dir, "out.json")
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func readReport(t *testing.T, path string) analysis.Report {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var rep analysis.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return rep
}

func TestCompute_WritesJSON(t *testing.T) {
	cfgPath, out := writeFixture(t, "")
	if err := execute(t, "compute", "--config", cfgPath, "--format", "json", "--output", out); err != nil {
		t.Fatalf("compute: %v", err)
	}
	rep := readReport(t, out)
	if len(rep.Population.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(rep.Population.Results))
	}
	if rep.Population.Results[0].ContractID != "H0001" {
		t.Errorf("first result = %q, want H0001", rep.Population.Results[0].ContractID)
	}
	if rep.Impact != nil || rep.Comparison != nil {
		t.Error("impact and comparison should be absent by default")
	}
}

func TestCompute_Baseline(t *testing.T) {
	cfgPath, out := writeFixture(t, "")
	base := filepath.Join(filepath.Dir(out), "base.prom")
	if err := execute(t, "compute", "--config", cfgPath, "-f", "prometheus", "-o", base); err != nil {
		t.Fatalf("compute prometheus: %v", err)
	}
	if err := execute(t, "compute", "--config", cfgPath, "-f", "json", "-o", out, "--baseline", base); err != nil {
		t.Fatalf("compute with baseline: %v", err)
	}

	rep := readReport(t, out)
	if rep.Baseline == nil {
		t.Fatal("baseline missing from report")
	}
	if rep.Baseline.Source != base || !rep.Baseline.HasThresholds {
		t.Errorf("baseline = %+v", rep.Baseline)
	}
	if len(rep.Baseline.Changes) != 0 {
		t.Errorf("unchanged dataset reported changes: %+v", rep.Baseline.Changes)
	}
	if rep.Baseline.ThresholdChanges != (rep.Population.Thresholds.Sub(rep.Population.Thresholds)) {
		t.Errorf("threshold changes = %+v, want zero", rep.Baseline.ThresholdChanges)
	}
}

func TestCompute_MissingBaseline(t *testing.T) {
	cfgPath, out := writeFixture(t, "")
	missing := filepath.Join(filepath.Dir(out), "absent.prom")
	if err := execute(t, "compute", "--config", cfgPath, "-o", out, "--baseline", missing); err == nil {
		t.Fatal("expected error for a missing baseline file")
	}
}

func TestReload_AppliesLogSettings(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfgPath, out := writeFixture(t, "")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	root := &rootOptions{configPath: cfgPath, format: "json", output: out}
	results := store.New()

	ctx := context.Background()
	tests := []struct {
		level, format string
		debug         bool
	}{
		{"debug", "text", true},
		{"error", "json", false},
	}
	for _, tc := range tests {
		cfg.Log = config.LogConfig{Level: tc.level, Format: tc.format}
		root.reload(cfg, results)
		if got := slog.Default().Enabled(ctx, slog.LevelDebug); got != tc.debug {
			t.Errorf("log.level %s: debug enabled = %v, want %v", tc.level, got, tc.debug)
		}
	}
	if results.Count() != 3 {
		t.Errorf("store holds %d contracts, want 3", results.Count())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestImpact_RemoveFlagOverridesConfig(t *testing.T) {
	cfgPath, out := writeFixture(t, "impact:\n  removed_codes: [C01]\n")
	if err := execute(t, "impact", "--config", cfgPath, "-f", "json", "-o", out, "--remove", "c02"); err != nil {
		t.Fatalf("impact: %v", err)
	}
	rep := readReport(t, out)
	if rep.Impact == nil {
		t.Fatal("impact missing from report")
	}
	if !slices.Equal(rep.Impact.RemovedCodes, []string{"C02"}) {
		t.Errorf("removed codes = %v, want [C02]", rep.Impact.RemovedCodes)
	}
	// H0003 never rated C02, so it keeps two measures on both sides.
	if got := rep.Impact.Summary.ContractsAnalyzed; got != 3 {
		t.Errorf("contracts analyzed = %d, want 3", got)
	}
}

func TestImpact_NoCodes(t *testing.T) {
	cfgPath, out := writeFixture(t, "")
	if err := execute(t, "impact", "--config", cfgPath, "-o", out); err == nil {
		t.Fatal("expected error when no codes are given")
	}
}

func TestCompare_IncludesComparison(t *testing.T) {
	cfgPath, out := writeFixture(t, "official:\n  improvement_measures_included: true\n  new_measures_included: true\n")
	if err := execute(t, "compare", "--config", cfgPath, "-f", "json", "-o", out); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if rep := readReport(t, out); rep.Comparison == nil {
		t.Error("comparison missing from report")
	}
}

func TestMissingConfig(t *testing.T) {
	if err := execute(t, "compute", "--config", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestSplitCodes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"C01", []string{"C01"}},
		{" C01, D04 ,,", []string{"C01", "D04"}},
	}
	for _, tc := range tests {
		if got := splitCodes(tc.in); !slices.Equal(got, tc.want) {
			t.Errorf("splitCodes(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

package rewardfactor

import (
	"math"
	"testing"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

func TestWeightedMean(t *testing.T) {
	tests := []struct {
		name     string
		measures []types.ContractMeasure
		want     float64
	}{
		{"empty", nil, 0},
		{"equal weights", measuresOf(2, 4), 3},
		{
			name: "weights pull toward heavier measure",
			measures: []types.ContractMeasure{
				{Code: "C01", StarValue: 5, Weight: 3},
				{Code: "C02", StarValue: 1, Weight: 1},
			},
			want: 4,
		},
		{
			name: "invalid measures ignored",
			measures: []types.ContractMeasure{
				{Code: "C01", StarValue: 4, Weight: 1},
				{Code: "C02", StarValue: 0, Weight: 5},
				{Code: "C03", StarValue: 1, Weight: 0},
				{Code: "C04", StarValue: math.NaN(), Weight: 1},
				{Code: "C05", StarValue: 2, Weight: math.Inf(1)},
			},
			want: 4,
		},
		{
			name: "no valid measure",
			measures: []types.ContractMeasure{
				{Code: "C01", StarValue: -1, Weight: 1},
				{Code: "C02", StarValue: 3, Weight: -2},
			},
			want: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeightedMean(tc.measures); !almostEqual(got, tc.want, 1e-12) {
				t.Errorf("WeightedMean = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWeightedMean_WithinStarRange(t *testing.T) {
	cases := [][]types.ContractMeasure{
		measuresOf(1, 5),
		measuresOf(3, 3, 3, 4),
		{
			{Code: "C01", StarValue: 2, Weight: 1.5},
			{Code: "C02", StarValue: 5, Weight: 3},
			{Code: "D01", StarValue: 4, Weight: 0.5},
		},
	}
	for _, measures := range cases {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, m := range measures {
			lo = math.Min(lo, m.StarValue)
			hi = math.Max(hi, m.StarValue)
		}
		got := WeightedMean(measures)
		if got < lo || got > hi {
			t.Errorf("WeightedMean %v outside [%v, %v] for %+v", got, lo, hi, measures)
		}
	}
}

func TestWeightedVariance_BesselCorrection(t *testing.T) {
	// mean 3, Σw(s-m)²/Σw = 1, n/(n-1) = 2 → exactly 2.
	got := WeightedVariance(measuresOf(2, 4))
	if got != 2.0 {
		t.Errorf("WeightedVariance({2,4}) = %v, want exactly 2", got)
	}
}

func TestWeightedVariance_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		measures []types.ContractMeasure
	}{
		{"empty", nil},
		{"single", measuresOf(4)},
		{"one valid of three", []types.ContractMeasure{
			{Code: "C01", StarValue: 4, Weight: 1},
			{Code: "C02", StarValue: 0, Weight: 1},
			{Code: "C03", StarValue: 2, Weight: 0},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeightedVariance(tc.measures); got != 0 {
				t.Errorf("WeightedVariance = %v, want 0", got)
			}
		})
	}
}

func TestWeightedVariance_NonNegative(t *testing.T) {
	cases := [][]types.ContractMeasure{
		measuresOf(5, 5, 5),
		measuresOf(1, 5, 1, 5),
		measuresOf(3.5, 4.25, 2.75),
	}
	for _, m := range cases {
		if got := WeightedVariance(m); got < 0 {
			t.Errorf("WeightedVariance(%+v) = %v, want >= 0", m, got)
		}
	}
}

func TestWeightedVarianceAround_UsesSuppliedMean(t *testing.T) {
	m := measuresOf(2, 4)
	// Around 2: deviations 0 and 2 → (0+4)/2 = 2, times 2 → 4.
	if got := WeightedVarianceAround(m, 2); got != 4 {
		t.Errorf("WeightedVarianceAround(mean=2) = %v, want 4", got)
	}
}

func TestContractStats(t *testing.T) {
	measures := []types.ContractMeasure{
		{Code: "C01", StarValue: 2, Weight: 1, Category: types.CategoryPartC},
		{Code: "C02", StarValue: 4, Weight: 1, Category: types.CategoryPartC},
		{Code: "D01", StarValue: 5, Weight: 3, Category: types.CategoryPartD},
		{Code: "D02", StarValue: 0, Weight: 1, Category: types.CategoryPartD},
	}

	t.Run("no filter", func(t *testing.T) {
		s := ContractStats("H1234", measures, "")
		if s.ContractID != "H1234" {
			t.Errorf("ContractID = %q", s.ContractID)
		}
		if s.MeasureCount != 3 {
			t.Errorf("MeasureCount = %d, want 3", s.MeasureCount)
		}
		if s.TotalWeight != 5 {
			t.Errorf("TotalWeight = %v, want 5", s.TotalWeight)
		}
		// (2+4+15)/5 = 4.2
		if !almostEqual(s.WeightedMean, 4.2, 1e-12) {
			t.Errorf("WeightedMean = %v, want 4.2", s.WeightedMean)
		}
	})

	t.Run("Part C only", func(t *testing.T) {
		s := ContractStats("H1234", measures, types.CategoryPartC)
		if s.MeasureCount != 2 || s.WeightedMean != 3 || s.WeightedVariance != 2 {
			t.Errorf("Part C stats = %+v, want count 2 mean 3 variance 2", s)
		}
	})

	t.Run("Part D leaves one valid measure", func(t *testing.T) {
		s := ContractStats("H1234", measures, types.CategoryPartD)
		if s.MeasureCount != 1 {
			t.Errorf("MeasureCount = %d, want 1", s.MeasureCount)
		}
		if s.WeightedVariance != 0 {
			t.Errorf("WeightedVariance = %v, want 0 for a single measure", s.WeightedVariance)
		}
	})
}

package types

import (
	"math"
	"testing"
)

func TestContractMeasure_Valid(t *testing.T) {
	tests := []struct {
		name string
		m    ContractMeasure
		want bool
	}{
		{"ordinary", ContractMeasure{Code: "C01", StarValue: 4, Weight: 1}, true},
		{"zero weight", ContractMeasure{Code: "C01", StarValue: 4, Weight: 0}, false},
		{"negative weight", ContractMeasure{Code: "C01", StarValue: 4, Weight: -1}, false},
		{"zero star", ContractMeasure{Code: "C01", StarValue: 0, Weight: 1}, false},
		{"NaN star", ContractMeasure{Code: "C01", StarValue: math.NaN(), Weight: 1}, false},
		{"Inf weight", ContractMeasure{Code: "C01", StarValue: 3, Weight: math.Inf(1)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPercentileThresholds_Sub(t *testing.T) {
	a := PercentileThresholds{Mean65th: 4, Mean85th: 4.5, Variance30th: 0.5, Variance70th: 1}
	b := PercentileThresholds{Mean65th: 3.5, Mean85th: 4.5, Variance30th: 0.25, Variance70th: 1.5}
	got := a.Sub(b)
	want := PercentileThresholds{Mean65th: 0.5, Mean85th: 0, Variance30th: 0.25, Variance70th: -0.5}
	if got != want {
		t.Errorf("Sub() = %+v, want %+v", got, want)
	}
}

func TestRatingType_Valid(t *testing.T) {
	for _, rt := range RatingTypes() {
		if !rt.Valid() {
			t.Errorf("%q should be valid", rt)
		}
	}
	if RatingType("part_e").Valid() {
		t.Error("part_e should not be valid")
	}
}

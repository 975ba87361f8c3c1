package rewardfactor

import (
	"fmt"
	"math"

	"github.com/mrcherrywood/explore-sub002/pkg/types"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// measuresOf builds equally weighted Part C measures C01, C02, ... from stars.
func measuresOf(stars ...float64) []types.ContractMeasure {
	out := make([]types.ContractMeasure, 0, len(stars))
	for i, s := range stars {
		out = append(out, types.ContractMeasure{
			Code:      fmt.Sprintf("C%02d", i+1),
			StarValue: s,
			Weight:    1,
			Category:  types.CategoryPartC,
		})
	}
	return out
}

// fiveContracts is a small population with distinct star patterns:
//
//	H0001 5,5,5  mean 5.000  var 0
//	H0002 4,4,5  mean 4.333  var 1/3
//	H0003 3,4,5  mean 4.000  var 1
//	H0004 2,3,4  mean 3.000  var 1
//	H0005 1,3,5  mean 3.000  var 4
func fiveContracts() map[string][]types.ContractMeasure {
	return map[string][]types.ContractMeasure{
		"H0001": measuresOf(5, 5, 5),
		"H0002": measuresOf(4, 4, 5),
		"H0003": measuresOf(3, 4, 5),
		"H0004": measuresOf(2, 3, 4),
		"H0005": measuresOf(1, 3, 5),
	}
}

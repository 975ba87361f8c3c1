package rewardfactor

import "math"

// Percentile returns the p-th percentile (0–100) of sortedAsc using linear
// interpolation between the closest ranks. sortedAsc must already be sorted
// ascending. Empty input or a NaN p yields 0; p outside [0, 100] is clamped.
func Percentile(sortedAsc []float64, p float64) float64 {
	n := len(sortedAsc)
	switch n {
	case 0:
		return 0
	case 1:
		return sortedAsc[0]
	}

	if math.IsNaN(p) {
		return 0
	}
	p = math.Max(0, math.Min(100, p))
	idx := (p / 100) * float64(n-1)
	lower := math.Floor(idx)
	upper := math.Ceil(idx)
	frac := idx - lower

	lo, hi := sortedAsc[int(lower)], sortedAsc[int(upper)]
	return lo + frac*(hi-lo)
}

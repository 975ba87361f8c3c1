package official

import "github.com/mrcherrywood/explore-sub002/pkg/types"

// thresholds2026 is the 2026 reward factor threshold table, one row per
// improvement/new measure scenario. Values are literal constants, not derived.
//
// Only the Part C 65th percentile mean of the first row has been checked
// against the published attachment, so every row is marked unverified.
var thresholds2026 = [...]OfficialThresholds{
	{
		Year:                        2026,
		ImprovementMeasuresIncluded: true,
		NewMeasuresIncluded:         true,
		PartC:                       types.PercentileThresholds{Mean65th: 3.695652, Mean85th: 3.966667, Variance30th: 0.826580, Variance70th: 1.202128},
		PartDMAPD:                   types.PercentileThresholds{Mean65th: 3.820000, Mean85th: 4.137931, Variance30th: 0.561368, Variance70th: 1.067961},
		PartDPDP:                    types.PercentileThresholds{Mean65th: 3.586207, Mean85th: 3.896552, Variance30th: 0.522487, Variance70th: 1.043478},
		OverallMAPD:                 types.PercentileThresholds{Mean65th: 3.734375, Mean85th: 3.992754, Variance30th: 0.855337, Variance70th: 1.190385},
		Verified:                    false,
	},
	{
		Year:                        2026,
		ImprovementMeasuresIncluded: true,
		NewMeasuresIncluded:         false,
		PartC:                       types.PercentileThresholds{Mean65th: 3.704545, Mean85th: 3.977778, Variance30th: 0.823050, Variance70th: 1.196429},
		PartDMAPD:                   types.PercentileThresholds{Mean65th: 3.833333, Mean85th: 4.148148, Variance30th: 0.554656, Variance70th: 1.060000},
		PartDPDP:                    types.PercentileThresholds{Mean65th: 3.592593, Mean85th: 3.907407, Variance30th: 0.517647, Variance70th: 1.038462},
		OverallMAPD:                 types.PercentileThresholds{Mean65th: 3.743590, Mean85th: 4.003021, Variance30th: 0.850758, Variance70th: 1.183673},
		Verified:                    false,
	},
	{
		Year:                        2026,
		ImprovementMeasuresIncluded: false,
		NewMeasuresIncluded:         true,
		PartC:                       types.PercentileThresholds{Mean65th: 3.714286, Mean85th: 4.000000, Variance30th: 0.853333, Variance70th: 1.243590},
		PartDMAPD:                   types.PercentileThresholds{Mean65th: 3.851852, Mean85th: 4.166667, Variance30th: 0.579710, Variance70th: 1.103896},
		PartDPDP:                    types.PercentileThresholds{Mean65th: 3.600000, Mean85th: 3.920000, Variance30th: 0.541353, Variance70th: 1.080000},
		OverallMAPD:                 types.PercentileThresholds{Mean65th: 3.757143, Mean85th: 4.017241, Variance30th: 0.881356, Variance70th: 1.226190},
		Verified:                    false,
	},
	{
		Year:                        2026,
		ImprovementMeasuresIncluded: false,
		NewMeasuresIncluded:         false,
		PartC:                       types.PercentileThresholds{Mean65th: 3.725000, Mean85th: 4.012821, Variance30th: 0.849462, Variance70th: 1.238095},
		PartDMAPD:                   types.PercentileThresholds{Mean65th: 3.863636, Mean85th: 4.181818, Variance30th: 0.572917, Variance70th: 1.096154},
		PartDPDP:                    types.PercentileThresholds{Mean65th: 3.608696, Mean85th: 3.934783, Variance30th: 0.535714, Variance70th: 1.073171},
		OverallMAPD:                 types.PercentileThresholds{Mean65th: 3.767857, Mean85th: 4.028169, Variance30th: 0.876190, Variance70th: 1.219512},
		Verified:                    false,
	},
}

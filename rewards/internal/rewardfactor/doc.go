// Package rewardfactor implements the CMS Star Ratings reward factor
// methodology.
//
// percentile.go provides the linear-interpolation percentile used for every
// population cut point (same rule as NumPy's default "linear" method).
//
// stats.go computes a contract's weighted mean and weighted variance over its
// valid measures. The variance is the weighted population variance scaled by
// n/(n-1); CMS's published thresholds are calibrated against exactly that
// form, so it must not be swapped for another unbiased estimator.
//
// thresholds.go reduces a population of contract statistics to the four cut
// points (mean 65th/85th, variance 30th/70th). Contracts with fewer than two
// valid measures never contribute.
//
// classify.go buckets a contract against those cut points and maps the bucket
// pair to an r-factor through a fixed table.
//
// impact.go compares a population before and after a set of measures is
// removed. population.go evaluates a whole population in one pass.
//
// Everything here is pure: no I/O, no clock, no shared state.
package rewardfactor

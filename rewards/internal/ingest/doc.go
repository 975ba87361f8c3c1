// Package ingest loads star-rating datasets exported from the upstream
// measure and metric tables and turns them into per-contract measure lists.
//
// A dataset file (YAML, or JSON since YAML is a superset) carries three
// sections mirroring the source tables:
//
//	measures      code, weight, category   (ma_measures)
//	metrics       contract_id, measure_code, star_rating
//	base_ratings  contract_id → published summary rating (optional)
//
// Dataset.Contracts joins metrics to measure weights. Rows whose star rating
// is not a number in [1, 5], or whose measure code has no weight, are left
// out of the result rather than carried with a placeholder value.
package ingest

// Package types defines the shared Go types used by the reward factor engine,
// the ingest layer and the CLI. These are the canonical in-memory
// representations of star-rating inputs and reward factor outputs, separate
// from any file or exposition format.
package types

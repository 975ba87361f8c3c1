// Command rewardfactor computes CMS Star Ratings reward factors for a
// dataset of contract measure ratings, compares the resulting thresholds
// with the published ones, and projects the effect of removing measures.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("rewardfactor failed", "err", err)
		os.Exit(1)
	}
}

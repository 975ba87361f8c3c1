// Package report renders analysis reports for people (console tables) and
// for machines (JSON, Prometheus text exposition).
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mrcherrywood/explore-sub002/rewards/internal/analysis"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/exposition"
)

// ErrUnknownFormat is returned by New for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes a report in one output format.
type Renderer interface {
	Render(w io.Writer, rep *analysis.Report) error
}

// New returns the Renderer for format: console | json | prometheus.
// hideContracts drops the per-contract table from console output.
func New(format string, hideContracts bool) (Renderer, error) {
	switch format {
	case "console":
		return &Console{HideContracts: hideContracts}, nil
	case "json":
		return jsonRenderer{}, nil
	case "prometheus":
		return promRenderer{}, nil
	default:
		return nil, fmt.Errorf("report: %w %q", ErrUnknownFormat, format)
	}
}

type jsonRenderer struct{}

func (jsonRenderer) Render(w io.Writer, rep *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

type promRenderer struct{}

func (promRenderer) Render(w io.Writer, rep *analysis.Report) error {
	if err := exposition.WriteResults(w, rep.Population.Results, rep.Population.Thresholds); err != nil {
		return err
	}
	if rep.Impact != nil {
		return exposition.WriteImpact(w, *rep.Impact)
	}
	return nil
}

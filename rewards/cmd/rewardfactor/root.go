package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrcherrywood/explore-sub002/rewards/internal/analysis"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/config"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/ingest"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/report"
)

type rootOptions struct {
	configPath string
	format     string
	output     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "rewardfactor",
		Short: "CMS Star Ratings reward factor calculator",
		Long: `rewardfactor classifies every contract's weighted mean and variance of
measure star ratings against population percentile thresholds and maps the
classification to the CMS reward factor.

Inputs, rating type and outputs are read from a YAML config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "rewardfactor.yaml", "path to config file")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format, overrides config (console|json|prometheus)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "output file, overrides config")

	root.AddCommand(
		newComputeCmd(opts),
		newImpactCmd(opts),
		newCompareCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// load reads the config, applies flag overrides and installs the logger.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.output != "" {
		cfg.Output.Path = o.output
	}
	setupLogger(cfg.Log)
	slog.Debug("config loaded",
		"path", o.configPath,
		"rating_type", cfg.RatingType,
		"inputs", cfg.Inputs.Measures,
	)
	return cfg, nil
}

func setupLogger(l config.LogConfig) {
	hopts := &slog.HandlerOptions{Level: l.SlogLevel()}
	var h slog.Handler
	if l.Format == "text" {
		h = slog.NewTextHandler(os.Stderr, hopts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, hopts)
	}
	slog.SetDefault(slog.New(h))
}

// evaluate loads the dataset named by cfg and runs the analysis.
func evaluate(cfg *config.Config, opts analysis.Options) (*analysis.Report, error) {
	ds, err := ingest.Load(cfg.Inputs.Measures)
	if err != nil {
		return nil, err
	}
	if ds.Year != 0 && ds.Year != cfg.Year {
		slog.Warn("dataset year differs from config year", "dataset_year", ds.Year, "config_year", cfg.Year)
	}
	return analysis.Run(ds, opts)
}

// emit renders rep to cfg.Output.Path, or stdout when it is empty.
func emit(cfg *config.Config, rep *analysis.Report, hideContracts bool) error {
	r, err := report.New(cfg.Output.Format, hideContracts)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := r.Render(w, rep); err != nil {
		return fmt.Errorf("output: render %s: %w", cfg.Output.Format, err)
	}
	slog.Info("report written", "summary", rep.Describe(), "format", cfg.Output.Format, "path", cfg.Output.Path)
	return nil
}

// splitCodes parses a comma-separated list of measure codes.
func splitCodes(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mrcherrywood/explore-sub002/rewards/internal/analysis"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/exposition"
)

func newComputeCmd(root *rootOptions) *cobra.Command {
	var baseline string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute thresholds and reward factors for every contract",
		Long: `compute evaluates every contract in the dataset. With --baseline, the
results are also diffed against a Prometheus exposition written by an
earlier "compute --format prometheus" run.`,
		Example: "  rewardfactor compute --baseline last-run.prom",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			rep, err := evaluate(cfg, analysis.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			if baseline != "" {
				b, err := exposition.LoadBaseline(baseline)
				if err != nil {
					return err
				}
				rep.CompareBaseline(baseline, b)
			}
			return emit(cfg, rep, false)
		},
	}
	cmd.Flags().StringVar(&baseline, "baseline", "", "prometheus exposition of an earlier run to diff against")
	return cmd
}

func newImpactCmd(root *rootOptions) *cobra.Command {
	var remove string

	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Project reward factors after removing measures",
		Long: `impact recomputes thresholds and reward factors with the given measure
codes removed and reports the change for every contract that has at least
two valid measures both before and after the removal.`,
		Example: "  rewardfactor impact --remove C01,D04",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("remove") {
				cfg.Impact.RemovedCodes = splitCodes(remove)
			}
			if !cfg.Impact.Enabled() {
				return errors.New("impact: no measure codes to remove, use --remove or impact.removed_codes")
			}
			opts := analysis.OptionsFromConfig(cfg)
			opts.Compare = false
			rep, err := evaluate(cfg, opts)
			if err != nil {
				return err
			}
			return emit(cfg, rep, true)
		},
	}
	cmd.Flags().StringVar(&remove, "remove", "", "comma-separated measure codes to remove")
	return cmd
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare calculated thresholds with the official CMS thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			opts := analysis.OptionsFromConfig(cfg)
			opts.Compare = true
			opts.RemovedCodes = nil
			rep, err := evaluate(cfg, opts)
			if err != nil {
				return err
			}
			if rep.Comparison == nil {
				return errors.New("compare: no official thresholds published for the configured year and scenario")
			}
			return emit(cfg, rep, true)
		},
	}
}

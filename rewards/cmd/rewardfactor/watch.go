package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrcherrywood/explore-sub002/rewards/internal/analysis"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/config"
	"github.com/mrcherrywood/explore-sub002/rewards/internal/store"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Recompute whenever the config or dataset file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			results := store.New()
			refresh(cfg, results)

			err = config.Watch(ctx, root.configPath, func(updated *config.Config) {
				root.reload(updated, results)
			})
			if err != nil && ctx.Err() == nil {
				return err
			}
			slog.Info("watch stopped")
			return nil
		},
	}
}

// reload applies the flag overrides and logging settings of a reloaded
// config, then refreshes.
func (o *rootOptions) reload(cfg *config.Config, results *store.Store) {
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.output != "" {
		cfg.Output.Path = o.output
	}
	setupLogger(cfg.Log)
	refresh(cfg, results)
}

// refresh re-evaluates cfg, logs reward factor changes against the previous
// run and re-renders the report. Failures are logged and leave the previous
// results in place.
func refresh(cfg *config.Config, results *store.Store) {
	rep, err := evaluate(cfg, analysis.OptionsFromConfig(cfg))
	if err != nil {
		slog.Error("evaluation failed", "err", err)
		return
	}
	for _, c := range results.Replace(rep.Population.Results) {
		slog.Info("reward factor changed",
			"contract", c.ContractID,
			"change", c.Kind,
			"previous", c.Previous,
			"current", c.Current,
		)
	}
	slog.Info("results refreshed", "contracts", results.Count())
	if err := emit(cfg, rep, false); err != nil {
		slog.Error("render failed", "err", err)
	}
}

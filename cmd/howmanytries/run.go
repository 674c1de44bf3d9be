package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spachava753/howmanytries/internal/report"
	"github.com/spachava753/howmanytries/internal/scenario"
	"github.com/spachava753/howmanytries/internal/telemetry"
)

func newRunCmd() *cobra.Command {
	var (
		concurrency int
		seed        uint64
		output      string
	)

	cmd := &cobra.Command{
		Use:   "run <suite.toml|dir>",
		Short: "Run every scenario of a TOML suite file or directory of suites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			var seedPtr *uint64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			sim, err := newSimulator(cfg, seedPtr)
			if err != nil {
				return err
			}

			shutdown, err := telemetry.Setup(cfg.Telemetry, version, cfg.Environment)
			if err != nil {
				return err
			}

			defer shutdownTelemetry(shutdown)

			ctx, stop := signalContext()
			defer stop()

			suites, err := scenario.NewLoader().LoadFromPath(ctx, args[0])
			if err != nil {
				return err
			}

			summary, err := scenario.NewRunner(sim, concurrency).Run(ctx, suites)
			if err != nil {
				return err
			}

			if err := report.NewRenderer(cmd.OutOrStdout(), outputLang(cfg), format).RenderSummary(summary); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "scenarios run concurrently")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible run")
	cmd.Flags().StringVar(&output, "output", "auto", "output format: auto, text or json")

	return cmd
}

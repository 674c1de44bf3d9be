package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/spachava753/howmanytries/internal/i18n"
	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/report"
	"github.com/spachava753/howmanytries/internal/telemetry"
	"github.com/spachava753/howmanytries/internal/util"
)

type simulateFlags struct {
	rate        float64
	maxAttempts string
	trials      int
	concurrency int
	seed        uint64
	jsonOut     bool
	output      string
}

func newSimulateCmd() *cobra.Command {
	var f simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one batch of trials for a success percentage",
		Example: `  howmanytries simulate --rate 25
  howmanytries simulate --rate 0.6 --max-attempts 10k --trials 20 --lang pt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, f)
		},
	}

	cmd.Flags().Float64Var(&f.rate, "rate", 0, "success percentage per attempt (0-100]")
	cmd.Flags().StringVar(&f.maxAttempts, "max-attempts", "", "attempt cap per trial, e.g. 1000 or 10k (default 1000)")
	cmd.Flags().IntVar(&f.trials, "trials", 0, "trials per batch (default from config)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "trials run concurrently (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for a reproducible run")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "shorthand for --output json")
	cmd.Flags().StringVar(&f.output, "output", "auto", "output format: auto, text or json")

	return cmd
}

func runSimulate(cmd *cobra.Command, f simulateFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if f.trials > 0 {
		cfg.Simulation.TrialCount = f.trials
	}
	if f.concurrency > 0 {
		cfg.Simulation.Concurrency = f.concurrency
	}

	format, err := report.ParseFormat(f.output)
	if err != nil {
		return err
	}
	if f.jsonOut {
		format = report.FormatJSON
	}

	var attemptCap *float64
	if f.maxAttempts != "" {
		v, err := util.ParseQuantity(f.maxAttempts)
		if err != nil {
			return fmt.Errorf("invalid --max-attempts: %w", err)
		}
		attemptCap = &v
	}

	var seed *uint64
	if cmd.Flags().Changed("seed") {
		seed = &f.seed
	}

	sim, err := newSimulator(cfg, seed)
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

	lang := outputLang(cfg)
	rep, err := sim.Simulate(ctx, f.rate, attemptCap)
	if err != nil {
		return localize(lang, err)
	}

	return report.NewRenderer(cmd.OutOrStdout(), lang, format).Render(rep)
}

// localize replaces a validation error with its translated message.
func localize(lang language.Tag, err error) error {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return errors.New(i18n.Translate(lang, ve.Message, ve.Args...))
	}
	return err
}

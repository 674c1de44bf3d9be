// Package main provides the CLI entrypoint for howmanytries.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/spachava753/howmanytries/internal/config"
	"github.com/spachava753/howmanytries/internal/executor"
	"github.com/spachava753/howmanytries/internal/i18n"
	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	langFlag   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "howmanytries",
		Short:         "Simulate how many attempts a percentage chance takes to succeed",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to howmanytries.yaml")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "output language (en, pt)")

	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "howmanytries", version)
			return err
		},
	}
}

// loadConfig loads the service config and installs the slog default logger
// at the configured level.
func loadConfig() (models.ServiceConfig, error) {
	cfg, err := config.LoadServiceConfig(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return cfg, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return cfg, nil
}

// outputLang picks --lang, then the configured default language.
func outputLang(cfg models.ServiceConfig) language.Tag {
	if tag, ok := i18n.ParseTag(langFlag); ok {
		return tag
	}
	tag, _ := i18n.ParseTag(cfg.Server.DefaultLanguage)
	return tag
}

// newSimulator builds a simulator from the config. seed overrides
// simulation.seed when non-nil.
func newSimulator(cfg models.ServiceConfig, seed *uint64) (*executor.Simulator, error) {
	limit, err := config.MaxAttemptCap(cfg)
	if err != nil {
		return nil, err
	}

	opts := executor.Options{
		TrialCount:    cfg.Simulation.TrialCount,
		Concurrency:   cfg.Simulation.Concurrency,
		MaxAttemptCap: limit,
	}

	var streams executor.StreamsFunc
	switch {
	case seed != nil:
		streams = executor.SeededStreamsFunc(*seed)
	case cfg.Simulation.Seed != nil:
		streams = executor.SeededStreamsFunc(uint64(*cfg.Simulation.Seed))
	}

	return executor.NewSimulator(opts, streams), nil
}

// telemetryShutdownTimeout bounds the final span flush on exit.
const telemetryShutdownTimeout = 5 * time.Second

// shutdownTelemetry flushes telemetry on a fresh context, since the command's
// context may already be cancelled by a signal.
func shutdownTelemetry(shutdown telemetry.ShutdownFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.Warn("telemetry shutdown failed", "error", err)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("interrupt received, shutting down gracefully...", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

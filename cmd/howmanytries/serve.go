package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/spachava753/howmanytries/internal/server"
	"github.com/spachava753/howmanytries/internal/telemetry"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if cfg.Environment == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			sim, err := newSimulator(cfg, nil)
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

			return server.New(cfg, sim, version).Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config or PORT)")

	return cmd
}

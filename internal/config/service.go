package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/util"
)

// DefaultServiceConfig returns a ServiceConfig with default values.
func DefaultServiceConfig() models.ServiceConfig {
	return models.ServiceConfig{
		Environment: "development",
		LogLevel:    "info",
		Server: models.ServerConfig{
			Port:             3001,
			CORSOrigins:      []string{"http://localhost:3000", "https://*.vercel.app"},
			CORSCredentials:  true,
			RateLimitPerSec:  20,
			RateLimitBurst:   40,
			DefaultLanguage:  "en",
			ShutdownTimeoutS: 10,
		},
		Simulation: models.SimulationConfig{
			TrialCount:  models.DefaultTrialCount,
			Concurrency: 1,
			MaxCap:      "10M",
		},
		Telemetry: models.TelemetryConfig{
			TraceExporter: "none",
			ServiceName:   "howmanytries",
		},
	}
}

// LoadServiceConfig loads howmanytries.yaml (when path is non-empty) and then
// applies environment overrides.
func LoadServiceConfig(path string) (models.ServiceConfig, error) {
	cfg := DefaultServiceConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading service config: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing service config: %w", err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	applyServiceDefaults(&cfg)

	if err := validateServiceConfig(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseEnv loads configuration overrides from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// MaxAttemptCap returns the parsed simulation.max_attempt_cap.
func MaxAttemptCap(cfg models.ServiceConfig) (int, error) {
	n, err := util.ParseCount(cfg.Simulation.MaxCap)
	if err != nil {
		return 0, fmt.Errorf("parsing max_attempt_cap %q: %w", cfg.Simulation.MaxCap, err)
	}
	return n, nil
}

// Apply defaults for missing values
func applyServiceDefaults(cfg *models.ServiceConfig) {
	defaults := DefaultServiceConfig()

	if cfg.Environment == "" {
		cfg.Environment = defaults.Environment
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = defaults.Server.RateLimitBurst
	}
	if cfg.Server.DefaultLanguage == "" {
		cfg.Server.DefaultLanguage = defaults.Server.DefaultLanguage
	}
	if cfg.Server.ShutdownTimeoutS == 0 {
		cfg.Server.ShutdownTimeoutS = defaults.Server.ShutdownTimeoutS
	}
	if cfg.Simulation.TrialCount == 0 {
		cfg.Simulation.TrialCount = defaults.Simulation.TrialCount
	}
	if cfg.Simulation.Concurrency == 0 {
		cfg.Simulation.Concurrency = defaults.Simulation.Concurrency
	}
	if cfg.Simulation.MaxCap == "" {
		cfg.Simulation.MaxCap = defaults.Simulation.MaxCap
	}
	if cfg.Telemetry.TraceExporter == "" {
		cfg.Telemetry.TraceExporter = defaults.Telemetry.TraceExporter
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = defaults.Telemetry.ServiceName
	}
}

func validateServiceConfig(cfg models.ServiceConfig) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", cfg.Server.Port)
	}
	for _, origin := range cfg.Server.CORSOrigins {
		if err := validateOrigin(origin); err != nil {
			return fmt.Errorf("server.cors_origins: %w", err)
		}
	}
	if cfg.Simulation.TrialCount < 0 {
		return fmt.Errorf("simulation.trials: must be positive, got %d", cfg.Simulation.TrialCount)
	}
	if cfg.Simulation.Concurrency < 0 {
		return fmt.Errorf("simulation.concurrency: must be positive, got %d", cfg.Simulation.Concurrency)
	}
	if _, err := MaxAttemptCap(cfg); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	switch cfg.Telemetry.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("telemetry.trace_exporter: unsupported exporter %q", cfg.Telemetry.TraceExporter)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported level %q", cfg.LogLevel)
	}
	return nil
}

// validateOrigin accepts "*" or an http(s) origin holding at most one "*".
func validateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return fmt.Errorf("origin %q must start with http:// or https://", origin)
	}
	if strings.Count(origin, "*") > 1 {
		return fmt.Errorf("origin %q has more than one wildcard", origin)
	}
	return nil
}

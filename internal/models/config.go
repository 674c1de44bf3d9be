package models

// ServiceConfig represents the parsed howmanytries.yaml configuration.
type ServiceConfig struct {
	Environment string           `yaml:"environment" json:"environment" env:"APP_ENV"`
	LogLevel    string           `yaml:"log_level,omitempty" json:"log_level,omitempty" env:"LOG_LEVEL"`
	Server      ServerConfig     `yaml:"server" json:"server"`
	Simulation  SimulationConfig `yaml:"simulation" json:"simulation"`
	Telemetry   TelemetryConfig  `yaml:"telemetry,omitempty" json:"telemetry,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port             int      `yaml:"port" json:"port" env:"PORT"`
	CORSOrigins      []string `yaml:"cors_origins" json:"cors_origins" env:"CORS_ORIGIN" envSeparator:","`
	CORSCredentials  bool     `yaml:"cors_credentials" json:"cors_credentials"`
	RateLimitPerSec  float64  `yaml:"rate_limit_per_sec" json:"rate_limit_per_sec" env:"RATE_LIMIT_PER_SEC"`
	RateLimitBurst   int      `yaml:"rate_limit_burst" json:"rate_limit_burst"`
	DefaultLanguage  string   `yaml:"default_language" json:"default_language"`
	ShutdownTimeoutS float64  `yaml:"shutdown_timeout_sec" json:"shutdown_timeout_sec"`
}

// SimulationConfig sets the batch shape and attempt cap limit for simulate calls.
type SimulationConfig struct {
	TrialCount  int    `yaml:"trials" json:"trials"`
	Concurrency int    `yaml:"concurrency" json:"concurrency"`
	MaxCap      string `yaml:"max_attempt_cap" json:"max_attempt_cap"`
	Seed        *int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// TelemetryConfig configures trace export.
type TelemetryConfig struct {
	// TraceExporter selects the trace exporter: "stdout" or "none".
	TraceExporter string `yaml:"trace_exporter" json:"trace_exporter" env:"TRACE_EXPORTER"`
	ServiceName   string `yaml:"service_name" json:"service_name"`
}

// Scenario is one named simulation request from a scenario suite.
type Scenario struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description,omitempty"`
	SuccessRate float64  `toml:"success_rate"`
	MaxAttempts *float64 `toml:"-"`
	MaxRaw      any      `toml:"max_attempts"`
}

// Suite is a collection of scenarios loaded from one file.
type Suite struct {
	Name      string     `toml:"name"`
	Path      string     `toml:"-"`
	Trials    int        `toml:"trials"`
	Scenarios []Scenario `toml:"scenario"`
}

// Package config defines the application configuration model and its loader.
// Configuration is resolved in three layers, later layers winning: built-in
// defaults, an optional YAML file, and HELIOS_-prefixed environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/Helios-Economics/internal/domain/finance"
	"github.com/turtacn/Helios-Economics/internal/domain/risk"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/pkg/errors"
)

// Config is the root configuration object shared by the API server and CLI.
type Config struct {
	Server   ServerConfig      `yaml:"server" mapstructure:"server"`
	Log      logging.LogConfig `yaml:"log" mapstructure:"log"`
	Metrics  MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
	Scenario ScenarioConfig    `yaml:"scenario" mapstructure:"scenario"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// RateLimitRPS is the per-client request budget per second; 0 disables
	// rate limiting.
	RateLimitRPS int `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

// ScenarioConfig is the baseline projection scenario.  API and CLI requests
// start from this and apply per-request overrides on top.
type ScenarioConfig struct {
	System     finance.SystemParameters    `yaml:"system" mapstructure:"system"`
	Financial  finance.FinancialParameters `yaml:"financial" mapstructure:"financial"`
	Categories []risk.Category             `yaml:"categories" mapstructure:"categories"`
}

// Validate checks the configuration for values that would produce a broken
// process rather than merely unusual results.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("config: server port %d out of range [1, 65535]", c.Server.Port))
	}
	if c.Server.RateLimitRPS < 0 {
		return errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("config: rate limit %d must be non-negative", c.Server.RateLimitRPS))
	}
	if c.Scenario.System.ProjectLength < 1 {
		return errors.New(errors.ErrCodeProjectLengthInvalid,
			fmt.Sprintf("config: project length %d must be at least 1 year", c.Scenario.System.ProjectLength))
	}
	if c.Scenario.System.SystemSize <= 0 || c.Scenario.System.ACSystemSize <= 0 {
		return errors.New(errors.ErrCodeValidation,
			"config: system sizes must be positive")
	}
	if err := risk.ValidateSet(c.Scenario.Categories); err != nil {
		return errors.Wrap(err, errors.CodeUnknown, "config: invalid baseline categories")
	}
	return nil
}

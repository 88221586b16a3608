package config

import (
	"time"

	"github.com/turtacn/Helios-Economics/internal/domain/finance"
	"github.com/turtacn/Helios-Economics/internal/domain/risk"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
)

// Default returns a fully populated configuration: the five-milestone baseline
// scenario with the standard system and financial assumptions, served on
// localhost:8080 with JSON logging and metrics enabled.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimitRPS:    50,
		},
		Log: logging.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "helios",
		},
		Scenario: ScenarioConfig{
			System:     finance.DefaultSystemParameters(),
			Financial:  finance.DefaultFinancialParameters(),
			Categories: risk.DefaultCategories(),
		},
	}
}

// ApplyDefaults fills any unset field group with its default.  A zero Port
// means the whole Server block was omitted; a nil Categories slice means the
// scenario block carried no category overrides.
func (c *Config) ApplyDefaults() {
	def := Default()

	if c.Server.Port == 0 {
		c.Server = def.Server
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = def.Metrics.Namespace
	}
	if c.Scenario.System == (finance.SystemParameters{}) {
		c.Scenario.System = def.Scenario.System
	}
	if c.Scenario.Financial == (finance.FinancialParameters{}) {
		c.Scenario.Financial = def.Scenario.Financial
	}
	if len(c.Scenario.Categories) == 0 {
		c.Scenario.Categories = def.Scenario.Categories
	}
}

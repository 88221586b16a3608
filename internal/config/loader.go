package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
)

// envPrefix is the prefix for environment-variable overrides, e.g.
// HELIOS_SERVER_PORT=9090 overrides server.port.
const envPrefix = "HELIOS"

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("helios")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/helios")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from the given file path, layered with
// environment-variable overrides, and returns the validated result.  An empty
// path searches the standard locations; a missing file in that mode is not an
// error and yields defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			// No file anywhere on the search path: defaults + env only.
			return unmarshal(v)
		}
		return nil, fmt.Errorf("config: failed to read %q: %w", path, err)
	}
	return unmarshal(v)
}

// MustLoad is Load for main functions: any error is fatal.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		logging.Default().Fatal("failed to load configuration",
			logging.String("path", path), logging.Err(err))
	}
	return cfg
}

// Watch reloads the configuration whenever the file at path changes and
// passes each successfully validated result to onChange.  Invalid or
// unreadable intermediate states are logged and skipped so a half-written
// file cannot take down a running server.  Watch returns after installing the
// watcher; callbacks arrive on viper's watch goroutine.
func Watch(path string, log logging.Logger, onChange func(*Config)) error {
	if path == "" {
		return fmt.Errorf("config: watch requires an explicit file path")
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read %q: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := unmarshal(v)
		if err != nil {
			log.Warn("ignoring invalid configuration change",
				logging.String("file", e.Name),
				logging.String("op", e.Op.String()),
				logging.Err(err))
			return
		}
		log.Info("configuration reloaded", logging.String("file", e.Name))
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Helios-Economics/internal/domain/risk"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/pkg/errors"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Len(t, cfg.Scenario.Categories, 5)
	assert.Equal(t, 25, cfg.Scenario.System.ProjectLength)
}

func TestApplyDefaults_FillsMissingGroups(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "helios", cfg.Metrics.Namespace)
	assert.NotEmpty(t, cfg.Scenario.Categories)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9191
	cfg.Log.Level = "debug"
	cfg.ApplyDefaults()

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Timeouts within a partially specified server block still default.
	assert.NotZero(t, cfg.Server.ReadTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode errors.ErrorCode
	}{
		{
			name:     "port out of range",
			mutate:   func(c *Config) { c.Server.Port = 70000 },
			wantCode: errors.ErrCodeValidation,
		},
		{
			name:     "negative rate limit",
			mutate:   func(c *Config) { c.Server.RateLimitRPS = -1 },
			wantCode: errors.ErrCodeValidation,
		},
		{
			name:     "zero project length",
			mutate:   func(c *Config) { c.Scenario.System.ProjectLength = 0 },
			wantCode: errors.ErrCodeProjectLengthInvalid,
		},
		{
			name:     "non-positive system size",
			mutate:   func(c *Config) { c.Scenario.System.SystemSize = 0 },
			wantCode: errors.ErrCodeValidation,
		},
		{
			name: "duplicate category",
			mutate: func(c *Config) {
				c.Scenario.Categories = append(c.Scenario.Categories, c.Scenario.Categories[0])
			},
			wantCode: errors.ErrCodeDuplicateCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helios.yaml")
	yaml := `
server:
  port: 9090
log:
  level: debug
scenario:
  system:
    capacity_factor: 16
    system_size: 5
    ac_system_size: 4
    project_length: 20
    degradation_rate: 0.004
    pipeline_size: 8
  categories:
    - name: Permitting
      risk_level: high
      dev_ex_low: 25000
      dev_ex_high: 75000
      approval_risk: 9
      worst_case_scenario: 0.4
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 16.0, cfg.Scenario.System.CapacityFactor)
	assert.Equal(t, 20, cfg.Scenario.System.ProjectLength)

	require.Len(t, cfg.Scenario.Categories, 1)
	assert.Equal(t, "Permitting", cfg.Scenario.Categories[0].Name)
	assert.Equal(t, risk.LevelHigh, cfg.Scenario.Categories[0].Level)

	// Groups absent from the file fall back to defaults.
	assert.NotZero(t, cfg.Server.ReadTimeout)
	assert.NotZero(t, cfg.Scenario.Financial.BaseCaseCapExPerMW)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helios.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -4\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestWatch_RequiresExplicitPath(t *testing.T) {
	err := Watch("", logging.NewNopLogger(), func(*Config) {})
	assert.Error(t, err)
}

func TestWatch_DeliversValidatedReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helios.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644))

	reloads := make(chan *Config, 8)
	require.NoError(t, Watch(path, logging.NewNopLogger(), func(c *Config) {
		reloads <- c
	}))

	// fsnotify needs a moment to install the watch before the rewrite.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9191\n"), 0o644))

	deadline := time.After(10 * time.Second)
	for {
		select {
		case cfg := <-reloads:
			// The watch can fire more than once per editor-style rewrite;
			// accept any callback that carries the new value.
			if cfg.Server.Port == 9191 {
				require.NoError(t, cfg.Validate())
				return
			}
		case <-deadline:
			t.Fatal("configuration change was never delivered")
		}
	}
}

func TestWatch_SkipsInvalidIntermediateState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "helios.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644))

	reloads := make(chan *Config, 8)
	require.NoError(t, Watch(path, logging.NewNopLogger(), func(c *Config) {
		reloads <- c
	}))

	time.Sleep(100 * time.Millisecond)
	// A half-written file must be ignored, then the next valid write lands.
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -4\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9292\n"), 0o644))

	deadline := time.After(10 * time.Second)
	for {
		select {
		case cfg := <-reloads:
			require.NotEqual(t, -4, cfg.Server.Port)
			if cfg.Server.Port == 9292 {
				return
			}
		case <-deadline:
			t.Fatal("valid configuration change was never delivered")
		}
	}
}

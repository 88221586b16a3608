package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewLoggerFromCore(core), logs
}

func TestLogger_EmitsFields(t *testing.T) {
	log, logs := newObservedLogger(zapcore.DebugLevel)

	log.Info("projection completed",
		String("run_id", "r-1"),
		Int("years", 27),
		Float64("portfolio_irr", 0.081))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "projection completed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "r-1", fields["run_id"])
	assert.EqualValues(t, 27, fields["years"])
	assert.Equal(t, 0.081, fields["portfolio_irr"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	log, logs := newObservedLogger(zapcore.WarnLevel)

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")
	log.Error("kept")

	assert.Equal(t, 2, logs.Len())
}

func TestLogger_WithAddsPersistentFields(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)

	child := log.With(String("component", "scenario"))
	child.Info("first")
	child.Info("second")

	for _, e := range logs.All() {
		assert.Equal(t, "scenario", e.ContextMap()["component"])
	}
}

func TestErr_Field(t *testing.T) {
	log, logs := newObservedLogger(zapcore.InfoLevel)

	log.Error("failed", Err(assert.AnError))
	log.Error("no cause", Err(nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, assert.AnError.Error(), entries[0].ContextMap()["error"])
	assert.Equal(t, "<nil>", entries[1].ContextMap()["error"])
}

func TestNewLogger_Defaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestDefault_SwapAndRestore(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	log, logs := newObservedLogger(zapcore.InfoLevel)
	SetDefault(log)
	Default().Info("through the default")

	assert.Equal(t, 1, logs.Len())

	// nil is ignored rather than breaking the process-wide logger.
	SetDefault(nil)
	assert.NotNil(t, Default())
}

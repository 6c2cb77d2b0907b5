package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerDefaults(t *testing.T) {
	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, l)

	// Must not panic with arbitrary field types.
	l.Info("hello",
		String("k", "v"),
		Int("n", 1),
		Float64("f", 3.14),
		Bool("b", true),
		Err(nil),
		Any("m", map[string]int{"a": 1}),
	)
}

func TestObservedFieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core)

	l.Info("prediction served", String("disposition", "CONFIRMED"), Float64("confidence", 0.91))
	l.Warn("corpus empty")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "prediction served", entry.Message)
	assert.Equal(t, "CONFIRMED", entry.ContextMap()["disposition"])
	assert.InDelta(t, 0.91, entry.ContextMap()["confidence"], 1e-9)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestWithAddsPersistentFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).With(String("request_id", "abc-123"))

	l.Info("first")
	l.Info("second")

	for _, e := range logs.All() {
		assert.Equal(t, "abc-123", e.ContextMap()["request_id"])
	}
}

func TestNamedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).Named("engine")

	l.Info("loaded")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "engine", logs.All()[0].LoggerName)
}

func TestParseLevelUnknownDefaultsToInfo(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("ERROR"))
}

func TestDefaultLoggerSwap(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	nop := NewNopLogger()
	SetDefault(nop)
	assert.Equal(t, nop, Default())

	// nil must be ignored, not installed.
	SetDefault(nil)
	assert.Equal(t, nop, Default())
}

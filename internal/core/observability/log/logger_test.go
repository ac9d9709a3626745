package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		" error ": LevelError,
		"fatal":   LevelFatal,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal} {
		assert.Equal(t, l, fromZapLevel(toZapLevel(l)))
		assert.Equal(t, l, ParseLevel(l.String()))
	}
}

func TestFieldsReachZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core), LevelDebug)

	logger.Named("bus").With(String("component", "test")).Warn("no handlers",
		String("kind", "Init"),
		Int("count", 2),
		Error(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "no handlers", entry.Message)
	assert.Equal(t, "bus", entry.LoggerName)
	ctx := entry.ContextMap()
	assert.Equal(t, "test", ctx["component"])
	assert.Equal(t, "Init", ctx["kind"])
	assert.Equal(t, int64(2), ctx["count"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestLogRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core), LevelWarn)

	logger.Log(LevelInfo, "dropped")
	logger.Log(LevelError, "kept")
	assert.Equal(t, 1, logs.Len())

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())
	logger.Log(LevelDebug, "kept too")
	assert.Equal(t, 2, logs.Len())
}

func TestNewWithOptions(t *testing.T) {
	logger, err := NewWithOptions(LevelInfo, Options{Encoding: "console"})
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, logger.GetLevel())

	_, err = NewWithOptions(LevelInfo, Options{Encoding: "xml"})
	assert.Error(t, err)
}

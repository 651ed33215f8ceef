package logger

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/tasker-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetup(t *testing.T) {
	restoreDefault(t)
	buf := &TestLogBuffer{}

	l, err := setupWithWriter(config.ServerConfig{LogLevel: "info", Port: 8080}, buf)

	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default(), "Setup should install the logger as default")

	slog.Info("server starting", "port", 8080)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "server starting", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "tasker-api", entries[0]["service"])
	assert.EqualValues(t, 8080, entries[0]["port"])
}

func TestSetupLevelFiltering(t *testing.T) {
	testCases := []struct {
		name      string
		logLevel  string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{name: "debug level", logLevel: "debug", wantDebug: true, wantInfo: true, wantWarn: true},
		{name: "info level", logLevel: "info", wantInfo: true, wantWarn: true},
		{name: "warn level", logLevel: "warn", wantWarn: true},
		{name: "error level", logLevel: "error"},
		{name: "case insensitive", logLevel: "DEBUG", wantDebug: true, wantInfo: true, wantWarn: true},
		{name: "invalid level falls back to info", logLevel: "verbose", wantInfo: true, wantWarn: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			restoreDefault(t)
			buf := &TestLogBuffer{}

			l, err := setupWithWriter(config.ServerConfig{LogLevel: tc.logLevel}, buf)
			require.NoError(t, err)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")
			l.Error("error message")

			logs := buf.String()
			assert.Equal(t, tc.wantDebug, strings.Contains(logs, "debug message"))
			assert.Equal(t, tc.wantInfo, strings.Contains(logs, "info message"))
			assert.Equal(t, tc.wantWarn, strings.Contains(logs, "warn message"))
			assert.True(t, strings.Contains(logs, "error message"), "error level is always enabled")
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel(" Warn ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = ParseLevel("fatal")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestContextLogger(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		l, buf := NewTestLogger(t)
		ctx := WithLogger(context.Background(), l.With("trace_id", "abc"))

		FromContext(ctx).Info("handled")

		AssertLogContains(t, buf, `"trace_id":"abc"`)
	})

	t.Run("falls back when context has no logger", func(t *testing.T) {
		fallback, _ := NewTestLogger(t)

		got := FromContextOrDefault(context.Background(), fallback)

		assert.Same(t, fallback, got)
	})

	t.Run("falls back to default when fallback is nil", func(t *testing.T) {
		got := FromContextOrDefault(context.Background(), nil)

		assert.Same(t, slog.Default(), got)
	})

	t.Run("nil context is tolerated", func(t *testing.T) {
		fallback, _ := NewTestLogger(t)

		//nolint:staticcheck // exercising the nil guard
		got := FromContextOrDefault(nil, fallback)

		assert.Same(t, fallback, got)
	})
}

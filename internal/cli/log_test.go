package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		emit    func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("processed component", "id", "glass-button") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("request", "path", "/r/glass-button.json") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("request", "path", "/r/glass-button.json") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("no artifact") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			require.NotNil(t, logger)

			tt.emit(logger)
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestNewLoggerStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("processed component", "id", "glass-button", "deps", 2)

	out := buf.String()
	assert.Contains(t, out, "processed component")
	assert.Contains(t, out, "id=glass-button")
	assert.Contains(t, out, "deps=2")
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	require.NotNil(t, prog)

	prog.done("registry built")
	assert.Contains(t, buf.String(), "registry built")
}

func TestLoggerFromContext(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		assert.NotNil(t, loggerFromContext(context.Background()))
	})

	t.Run("stored", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, log.InfoLevel)

		got := loggerFromContext(withLogger(context.Background(), logger))
		require.Same(t, logger, got)

		got.Info("serving")
		assert.NotZero(t, buf.Len())
	})
}

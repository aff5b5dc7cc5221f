package logger_test

import (
	"testing"

	"rados-compare/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logger.Config
		debug   bool
		wantErr bool
	}{
		{"DebugConsole", logger.Config{Level: "debug", Format: "console"}, true, false},
		{"InfoJSON", logger.Config{Level: "info", Format: "json"}, false, false},
		{"WarnConsole", logger.Config{Level: "warn", Format: "console"}, false, false},
		{"EmptyLevel", logger.Config{}, false, false},
		{"InvalidLevel", logger.Config{Level: "loud"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	logger.WithBackend(logger.WithRunID(base, "run-1"), "ceph_a", "photos").Info("listed")
	logger.WithRunID(base, "").Info("no run")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"run_id": "run-1", "backend": "ceph_a", "bucket": "photos"}, entries[0].ContextMap())
	assert.Empty(t, entries[1].ContextMap())
}

package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/quadrago-discovery/internal/pkg/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
	}{
		{name: "json info", level: "info", format: "json", wantLevel: zapcore.InfoLevel},
		{name: "debug defaults to console", level: "debug", format: "", wantLevel: zapcore.DebugLevel},
		{name: "unknown level falls back to info", level: "loud", format: "console", wantLevel: zapcore.InfoLevel},
		{name: "warn", level: "warn", format: "JSON", wantLevel: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.New(tt.level, tt.format)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.wantLevel))
			assert.False(t, log.Core().Enabled(tt.wantLevel-1))
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := logger.New("info", "xml")
	assert.Error(t, err)
}

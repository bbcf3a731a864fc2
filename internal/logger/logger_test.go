package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"production info", "production", "info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"development debug", "development", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"uppercase level", "production", "WARN", zapcore.WarnLevel, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.environment, tt.level)
			require.NoError(t, err)
			require.True(t, l.Core().Enabled(tt.enabled))
			require.False(t, l.Core().Enabled(tt.disabled))
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger("production", "loud")
	require.Error(t, err)
}

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		debug     bool
		warnLevel bool
	}{
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, true, true},
		{"json info", config.LoggingConfig{Level: "info", Format: "json"}, false, true},
		{"error only", config.LoggingConfig{Level: "error", Format: "json"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.debug, logger.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.warnLevel, logger.Core().Enabled(zap.WarnLevel))
			assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "loud", Format: "json"})
	assert.ErrorIs(t, err, ErrInitialization)
}

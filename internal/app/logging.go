package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/teratic/eventbridge/internal/config"
)

// NewLogger builds the process logger. The "json" format uses zap's
// production encoder; anything else gets the development console encoder.
// Both write to stderr so stdout stays free for command output.
func NewLogger(cfg config.LoggingConfig, opts ...zap.Option) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %v", ErrInitialization, err)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: build logger: %v", ErrInitialization, err)
	}
	return logger, nil
}

// Package logging builds the zap logger shared by the CLI, the API client
// and the TUI.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idilsaglam/pizza/internal/config"
)

// Options select where logs go.
type Options struct {
	// Interactive is set when the TUI owns the terminal. Logs then go to
	// the configured file only, or nowhere.
	Interactive bool
	// Verbose forces debug level.
	Verbose bool
}

// New builds a logger from cfg.
func New(cfg config.LoggingConfig, opt Options) (*zap.Logger, error) {
	file := strings.TrimSpace(cfg.File)
	if opt.Interactive && file == "" {
		return zap.NewNop(), nil
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if opt.Verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if file != "" {
		zc.OutputPaths = []string{file}
		zc.ErrorOutputPaths = []string{file}
	} else {
		zc.Encoding = "console"
		zc.OutputPaths = []string{"stderr"}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Package logger builds the zap logger the CLI runs with.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the run logger. human switches from JSON to console output;
// verbose lowers the level from info to debug. Both encoders write to
// stderr, keeping stdout free for command output.
func New(human, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if human {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

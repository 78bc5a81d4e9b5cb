// Package logging builds the zap loggers used by the binaries.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects how a logger is built
type Options struct {
	Level       string // debug, info, warn or error
	Environment string // production logs JSON, anything else is console
	OutputPath  string // empty means stderr
}

// New builds a logger from opts
func New(opts Options) (*zap.Logger, error) {
	var zapConfig zap.Config

	if opts.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapConfig.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	if opts.OutputPath != "" {
		zapConfig.OutputPaths = []string{opts.OutputPath}
		zapConfig.ErrorOutputPaths = []string{opts.OutputPath}
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapConfig.Build()
}

// ParseLevel maps a level name to a zap level, defaulting to info
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

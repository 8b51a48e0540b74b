// Package logger configures the application's structured logging.
//
// It uses zerolog for all application output and provides the adapter
// plumbing needed to route pgx query tracing through the same logger.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shoplore/backend/internal/config"
)

// New builds the main application logger from config.
//
// Console format is intended for local development; JSON for anything
// that ships logs into an aggregator.
func New(cfg *config.Config) *zerolog.Logger {
	level := ParseLevel(cfg.Logging.Level)

	var logger zerolog.Logger
	if cfg.Logging.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			Level(level).
			With().
			Timestamp().
			Str("service", "shoplore").
			Str("env", cfg.Primary.Env).
			Logger()
	}

	return &logger
}

// ParseLevel maps a config level string to a zerolog level.
// Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewPgxLogger creates the logger handed to the pgx tracelog adapter.
// SQL output is always console-formatted; it only exists in local env.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// Pgx tracelog levels, mirrored here so callers do not need to import
// the tracelog package to configure logging.
const (
	PgxTraceLogLevelNone  = 0
	PgxTraceLogLevelError = 1
	PgxTraceLogLevelWarn  = 2
	PgxTraceLogLevelInfo  = 3
	PgxTraceLogLevelDebug = 4
	PgxTraceLogLevelTrace = 5
)

// GetPgxTraceLogLevel translates a zerolog level into the matching pgx
// tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return PgxTraceLogLevelTrace
	case zerolog.DebugLevel:
		return PgxTraceLogLevelDebug
	case zerolog.InfoLevel:
		return PgxTraceLogLevelInfo
	case zerolog.WarnLevel:
		return PgxTraceLogLevelWarn
	case zerolog.ErrorLevel:
		return PgxTraceLogLevelError
	default:
		return PgxTraceLogLevelNone
	}
}

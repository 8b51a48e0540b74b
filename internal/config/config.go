// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), maps them into structured Go types, and
// validates that required values are present so the application fails
// fast on bad or missing configuration.
//
// Env vars use the SHOPLORE_ prefix and dot-delimited nesting, e.g.
// SHOPLORE_DATABASE.HOST maps to Config.Database.Host.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if
	// one exists, before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Logging is a pointer because it is optional; defaults are injected
// at load time when it is absent.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Logging  *LoggingConfig `koanf:"logging"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development production"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxConns        int    `koanf:"max_conns"`
	MinConns        int    `koanf:"min_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// LoggingConfig controls structured logger behavior.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the output format for logs ("json" or "console").
	Format string `koanf:"format"`
}

// DefaultLoggingConfig provides defaults used when no logging block is
// configured: info level, JSON output.
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:  "info",
		Format: "json",
	}
}

// Validate applies logging rules that go beyond struct tags.
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Level)
	}

	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Format)
	}

	return nil
}

// loadConfig loads configuration from environment variables, unmarshals
// it into Config, validates it, and applies logging defaults.
func loadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("SHOPLORE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SHOPLORE_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Logging == nil {
		mainConfig.Logging = DefaultLoggingConfig()
	}
	if mainConfig.Logging.Level == "" {
		// Local development defaults to debug, everything else to info.
		if mainConfig.Primary.Env == "local" {
			mainConfig.Logging.Level = "debug"
		} else {
			mainConfig.Logging.Level = "info"
		}
	}
	if mainConfig.Logging.Format == "" {
		mainConfig.Logging.Format = "json"
	}
	if err := mainConfig.Logging.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid logging config")
	}

	return mainConfig, nil
}

// New loads and returns the application configuration.
func New() (*Config, error) {
	return loadConfig()
}

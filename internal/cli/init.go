// Package cli provides common process initialization shared by entrypoints.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging with default settings and
// installs it as the process default. Call ApplyLogLevel once configuration
// is available.
func SetupLogger() *log.Logger {
	logger := log.New(log.Config{})
	log.SetDefault(logger)
	return logger
}

// ApplyLogLevel rebuilds the default logger at the configured level.
func ApplyLogLevel(cfg *config.Config) *log.Logger {
	logger := log.New(log.Config{Level: cfg.LogLevel})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

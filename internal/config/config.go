package config

import (
	"os"
	"strconv"
	"time"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Session SessionConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds data source and aggregation settings
type DataConfig struct {
	// FilePath points at the source workbook (or CSV). The sheet name is an
	// external contract with the data provider.
	FilePath  string
	SheetName string
	// TopNMakes bounds the "top new equipment makes" chart.
	TopNMakes int
}

// SessionConfig holds per-browser session settings
type SessionConfig struct {
	TTL time.Duration
}

const (
	defaultDataFile  = "data/Airboard Program Summary Data.xlsx"
	defaultSheetName = "Air Board Program Summary"
	defaultTopN      = 10
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			FilePath:  getEnvOrDefault("DATA_FILE", defaultDataFile),
			SheetName: getEnvOrDefault("SHEET_NAME", defaultSheetName),
			TopNMakes: getEnvIntOrDefault("TOP_N_MAKES", defaultTopN),
		},
		Session: SessionConfig{
			TTL: getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.FilePath == "" {
		return errors.ConfigInvalid("DATA_FILE must not be empty")
	}
	if config.Data.SheetName == "" {
		return errors.ConfigInvalid("SHEET_NAME must not be empty")
	}
	if config.Data.TopNMakes <= 0 {
		return errors.ConfigInvalid("TOP_N_MAKES must be positive")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"

	"nomen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Detector DetectorConfig
	Harness  HarnessConfig
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case the process runs on in-memory repositories only.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset loading settings for the batch CLI
type DataConfig struct {
	ExcelFile string
	Sheet     string
}

// DetectorConfig holds interaction-detection knobs
type DetectorConfig struct {
	Folds          int
	MinMetricDelta float64
	Alpha          float64
	Seed           int64
}

// HarnessConfig holds validation-harness knobs
type HarnessConfig struct {
	Folds        int
	MinWinMargin float64
	Seed         int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Data: DataConfig{
			ExcelFile: os.Getenv("DATASET_FILE"),
			Sheet:     getEnv("DATASET_SHEET", "Sheet1"),
		},
		Detector: DetectorConfig{
			Folds:          getEnvInt("DETECTOR_FOLDS", 5),
			MinMetricDelta: getEnvFloat("DETECTOR_MIN_DELTA", 0.01),
			Alpha:          getEnvFloat("DETECTOR_ALPHA", 0.05),
			Seed:           int64(getEnvInt("DETECTOR_SEED", 1)),
		},
		Harness: HarnessConfig{
			Folds:        getEnvInt("HARNESS_FOLDS", 5),
			MinWinMargin: getEnvFloat("HARNESS_WIN_MARGIN", 0.02),
			Seed:         int64(getEnvInt("HARNESS_SEED", 1)),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Detector.Folds < 2 {
		return errors.ConfigurationError("DETECTOR_FOLDS must be at least 2")
	}
	if cfg.Harness.Folds < 2 {
		return errors.ConfigurationError("HARNESS_FOLDS must be at least 2")
	}
	if cfg.Detector.Alpha <= 0 || cfg.Detector.Alpha >= 1 {
		return errors.ConfigurationError("DETECTOR_ALPHA must be in (0,1)")
	}
	if cfg.Harness.MinWinMargin < 0 {
		return errors.ConfigurationError("HARNESS_WIN_MARGIN must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

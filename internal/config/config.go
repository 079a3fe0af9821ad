package config

import (
	"os"
	"strconv"

	"edascope/internal/analysis"
	"edascope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Quality analysis.QualityConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// LogConfig holds request-log output settings
type LogConfig struct {
	File string // empty = stdout only
}

// Load reads configuration from environment variables. Quality thresholds
// default to analysis.DefaultQualityConfig and can be overridden per
// deployment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("EDA_API_PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Log: LogConfig{
			File: os.Getenv("EDA_LOG_FILE"),
		},
		Quality: analysis.DefaultQualityConfig(),
	}

	var err error
	if cfg.Quality.RowThreshold, err = getEnvInt("EDA_ROW_THRESHOLD", cfg.Quality.RowThreshold); err != nil {
		return nil, err
	}
	if cfg.Quality.ColumnThreshold, err = getEnvInt("EDA_COLUMN_THRESHOLD", cfg.Quality.ColumnThreshold); err != nil {
		return nil, err
	}
	if cfg.Quality.RowThreshold < 0 || cfg.Quality.ColumnThreshold < 0 {
		return nil, errors.ConfigInvalid("quality thresholds must be non-negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(errors.WithCode(errors.CodeConfigInvalid, err), "invalid integer for %s", key)
	}
	return n, nil
}

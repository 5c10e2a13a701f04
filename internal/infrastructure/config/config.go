// Package config loads CLI configuration from a YAML file, a .env file and
// environment variables, in increasing order of precedence. The library
// surface takes options directly; only the CLI reads configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the CLI's runtime configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Execution ExecutionConfig `yaml:"execution"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig selects the record store backing the recorder.
type DatabaseConfig struct {
	// Driver is one of memory, sqlite, postgres.
	Driver string `yaml:"driver"`
	// DSN is the database path (sqlite) or connection string (postgres).
	DSN string `yaml:"dsn"`
}

// ExecutionConfig carries runner defaults.
type ExecutionConfig struct {
	MaxIterations int `yaml:"max_iterations"`
	StreamBuffer  int `yaml:"stream_buffer"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: "stategraph.db"},
		Execution: ExecutionConfig{
			MaxIterations: 100,
			StreamBuffer:  64,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (when
// it exists), then .env, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// .env values become environment variables without overriding existing ones.
	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STATEGRAPH_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("STATEGRAPH_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("STATEGRAPH_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Execution.MaxIterations = n
		}
	}
	if v := os.Getenv("STATEGRAPH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults when file is absent", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, 100, cfg.Execution.MaxIterations)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  dsn: postgres://localhost/stategraph
execution:
  max_iterations: 25
logging:
  level: debug
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "postgres://localhost/stategraph", cfg.Database.DSN)
		assert.Equal(t, 25, cfg.Execution.MaxIterations)
		assert.Equal(t, "debug", cfg.Logging.Level)
		// Keys absent from the file keep their defaults.
		assert.Equal(t, 64, cfg.Execution.StreamBuffer)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: sqlite\n"), 0o644))

		t.Setenv("STATEGRAPH_DB_DRIVER", "memory")
		t.Setenv("STATEGRAPH_MAX_ITERATIONS", "7")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.Database.Driver)
		assert.Equal(t, 7, cfg.Execution.MaxIterations)
	})

	t.Run("non-numeric iteration override is ignored", func(t *testing.T) {
		t.Setenv("STATEGRAPH_MAX_ITERATIONS", "lots")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Execution.MaxIterations)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database: [not a map"), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{Logging: LoggingConfig{Level: tt.level}}
		assert.Equal(t, tt.want, cfg.SlogLevel(), tt.level)
	}
}

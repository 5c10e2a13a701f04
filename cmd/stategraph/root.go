package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/stategraph/stategraph/internal/adapters/repository/memory"
	"github.com/stategraph/stategraph/internal/adapters/repository/postgres"
	"github.com/stategraph/stategraph/internal/adapters/repository/sqlite"
	"github.com/stategraph/stategraph/internal/core/record"
	"github.com/stategraph/stategraph/internal/infrastructure/config"
	"github.com/stategraph/stategraph/pkg/serialization"
)

const version = "0.1.0"

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stategraph",
		Short:         "Graph-based workflow execution engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "stategraph.yaml", "path to config file")

	root.AddCommand(newRunCmd())
	root.AddCommand(newRecordsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig reads the configuration and installs the configured slog level
// as the process default.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	return cfg, nil
}

// openStore builds the record store named by the configuration. The returned
// closer is nil for stores with nothing to close.
func openStore(ctx context.Context, cfg *config.Config) (record.Store, io.Closer, error) {
	switch cfg.Database.Driver {
	case "memory":
		return memory.NewRecordStore(), nil, nil
	case "sqlite":
		store, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := postgres.NewRecordStore(pool, serialization.Default())
		if err := store.CreateTables(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, closerFunc(pool.Close), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

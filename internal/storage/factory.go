package storage

import (
	"fmt"
	"log/slog"

	"github.com/ghostline/recorder/internal/config"
	"github.com/ghostline/recorder/internal/database"
	"github.com/ghostline/recorder/internal/storage/memory"
	"github.com/ghostline/recorder/internal/storage/postgres"
	sqlitestorage "github.com/ghostline/recorder/internal/storage/sqlite"
)

// NewBackend creates a backend from configuration. The returned backend is
// not yet initialized.
func NewBackend(cfg config.StorageConfig, db *database.Manager, dbCfg config.DBConfig, log *slog.Logger) (Backend, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.New(), nil
	case "sqlite":
		return sqlitestorage.New(sqlitestorage.Config{
			Path:         cfg.SQLite.Path,
			DumpPath:     cfg.SQLite.DumpPath,
			DumpInterval: cfg.SQLite.DumpInterval,
		}, db, log)
	case "postgres":
		gdb, err := db.Postgres(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return postgres.New(postgres.Dependencies{DB: gdb, Manager: db, Log: log}), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

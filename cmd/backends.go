package cmd

import (
	"context"

	"github.com/kozaktomas/photo-selector/internal/config"
	"github.com/kozaktomas/photo-selector/internal/constants"
	"github.com/kozaktomas/photo-selector/internal/database"
	"github.com/kozaktomas/photo-selector/internal/database/file"
	"github.com/kozaktomas/photo-selector/internal/database/mariadb"
	"github.com/kozaktomas/photo-selector/internal/database/mock"
	"github.com/kozaktomas/photo-selector/internal/database/postgres"
	"github.com/kozaktomas/photo-selector/internal/database/sqlite"
)

func init() {
	registerBackends()
}

// registerBackends makes every storage backend selectable by STORAGE_BACKEND.
func registerBackends() {
	database.RegisterBackend("file", func(_ context.Context, cfg *config.Config) (database.KVStore, error) {
		store, err := file.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	})
	database.RegisterBackend("sqlite", func(_ context.Context, cfg *config.Config) (database.KVStore, error) {
		path := cfg.Storage.Path
		if path == constants.DefaultStoragePath {
			path = constants.DefaultSQLitePath
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	})
	database.RegisterBackend("postgres", func(ctx context.Context, cfg *config.Config) (database.KVStore, error) {
		store, err := postgres.Open(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		return store, nil
	})
	database.RegisterBackend("mariadb", func(_ context.Context, cfg *config.Config) (database.KVStore, error) {
		pool, err := mariadb.NewPool(cfg.MariaDB.DSN)
		if err != nil {
			return nil, err
		}
		return pool, nil
	})
	// memory keeps selections for the lifetime of the process only.
	database.RegisterBackend("memory", func(context.Context, *config.Config) (database.KVStore, error) {
		return mock.NewMockKVStore(), nil
	})
}

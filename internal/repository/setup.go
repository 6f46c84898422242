// Package repository selects the metadata backend: Postgres when a database
// URL is configured, otherwise the in-memory store.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"dataroom/internal/config"
	"dataroom/internal/repository/memory"
	"dataroom/internal/repository/postgres"
	postgresDataroom "dataroom/internal/repository/postgres/dataroom"
	dataroomService "dataroom/internal/service/dataroom"
)

// Open connects the configured backend and returns its repositories together
// with a cleanup function.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dataroomService.Repositories, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set; metadata is in-memory and lost on restart")
		store := memory.NewStore()
		return dataroomService.Repositories{
			Rooms:     memory.NewRoomRepository(store),
			Folders:   memory.NewFolderRepository(store),
			Files:     memory.NewFileRepository(store),
			TxManager: store,
		}, func() {}, nil
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return dataroomService.Repositories{}, nil, fmt.Errorf("connect database: %w", err)
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return dataroomService.Repositories{}, nil, err
	}

	logger.Info("database connected",
		"table_prefix", cfg.TablePrefix,
		"max_conns", pool.Config().MaxConns,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	return dataroomService.Repositories{
		Rooms:     postgresDataroom.NewRoomRepository(repoConfig),
		Folders:   postgresDataroom.NewFolderRepository(repoConfig),
		Files:     postgresDataroom.NewFileRepository(repoConfig),
		TxManager: postgres.NewTransactionManager(pool, logger),
	}, pool.Close, nil
}

// DropTables removes the configured prefix's tables. The memory backend has
// nothing to drop.
func DropTables(ctx context.Context, cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return nil
	}
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	return postgres.DropSchema(ctx, pool, postgres.NewTableNames(cfg.TablePrefix))
}

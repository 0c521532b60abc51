package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/eaglebank/accounts/account-service/internal/config"
	"github.com/eaglebank/accounts/account-service/internal/repository"
	"github.com/eaglebank/accounts/account-service/internal/service"
)

// openStore returns the configured account store with its schema applied,
// and a func that releases it.
func openStore(ctx context.Context, cfg config.Config) (service.AccountStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Printf("Using in-memory account store; data is lost on exit")
		return repository.NewMemoryAccountRepository(), func() {}, nil

	case config.StoreDriverSQLite:
		repo, err := repository.OpenSQLiteAccountRepository(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using SQLite account store at %s", cfg.SQLitePath)
		return repo, func() { _ = repo.Close() }, nil

	default:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		repo := repository.NewAccountRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Printf("Using Postgres account store")
		return repo, func() { db.Close() }, nil
	}
}

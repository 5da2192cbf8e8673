// Command migrate applies the referral schema migrations and exits. It is meant
// for deployments that run the server with RUN_MIGRATIONS=false.
package main

import (
	"context"
	"fmt"
	"time"

	"referral-server/internal/config"
	"referral-server/internal/observability"
	"referral-server/internal/store"
)

func main() {
	logger := observability.NewLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger.Info(ctx, "Starting schema migration...")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load configuration", err)
	}
	for _, warning := range cfg.Warnings {
		logger.Warn(ctx, fmt.Sprintf("configuration: %s", warning))
	}

	dataStore, err := store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize store", err)
	}
	defer dataStore.Close()

	if err := dataStore.Ping(ctx); err != nil {
		logger.Fatal(ctx, "database is unreachable", err)
	}

	if err := dataStore.ApplyMigrations(ctx); err != nil {
		logger.Fatal(ctx, "failed to apply migrations", err)
	}

	logger.Info(ctx, "Schema is up to date")
}

package main

import (
	"context"
	"fmt"

	"referral-server/internal/bootstrap"
	"referral-server/internal/config"
	"referral-server/internal/observability"
	"referral-server/internal/server"
)

func main() {
	logger := observability.NewLogger()
	defer logger.Sync()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load configuration", err)
	}
	for _, warning := range cfg.Warnings {
		logger.Warn(ctx, fmt.Sprintf("configuration: %s", warning))
	}

	backgroundCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()

	deps, err := bootstrap.Initialize(backgroundCtx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()

	if err := srv.Start(backgroundCtx); err != nil {
		logger.Fatal(ctx, "failed to start server", err)
	}

	if err := srv.WaitForShutdown(ctx, stopBackground); err != nil {
		logger.Fatal(ctx, "server shutdown failed", err)
	}
}

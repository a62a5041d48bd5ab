package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/upb/legaltech-api/backend/config"
	"github.com/upb/legaltech-api/backend/internal/observability"
	"github.com/upb/legaltech-api/backend/repositories/postgres"
	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	list := flag.Bool("list", false, "list embedded migration versions and exit")
	flag.Parse()

	logger, err := observability.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *list {
		versions, err := postgres.MigrationVersions()
		if err != nil {
			logger.Fatal("failed to read migrations", zap.Error(err))
		}
		for _, v := range versions {
			fmt.Println(v)
		}
		return
	}

	cfg, err := config.New(context.Background())
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	if err := postgres.Migrate(cfg.Database.MigrationURL(), *direction, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err), zap.String("direction", *direction))
	}
}

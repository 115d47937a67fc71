package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tutorlane/booking_ledger/internal/app"
	"github.com/tutorlane/booking_ledger/internal/config"
	"github.com/tutorlane/booking_ledger/internal/repository"
	"github.com/tutorlane/booking_ledger/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogPath)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	roleRepo := repository.NewRoleRepository(pool)
	roleService := service.NewRoleService(roleRepo, logger)

	if err := roleService.EnsureWellKnown(ctx); err != nil {
		logger.Fatal("Failed to ensure well-known roles", zap.Error(err))
	}

	logger.Info("Booking ledger schema ready",
		zap.String("environment", cfg.Environment),
	)
}

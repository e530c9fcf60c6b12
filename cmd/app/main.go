package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lunarbyte/tradevalues/internal/auth"
	"github.com/lunarbyte/tradevalues/internal/catalog"
	"github.com/lunarbyte/tradevalues/internal/config"
	"github.com/lunarbyte/tradevalues/internal/database"
	"github.com/lunarbyte/tradevalues/internal/database/postgres"
	"github.com/lunarbyte/tradevalues/internal/handler"
	"github.com/lunarbyte/tradevalues/internal/identity"
	"github.com/lunarbyte/tradevalues/internal/inventory"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/review"
	"github.com/lunarbyte/tradevalues/internal/server"
)

const shutdownTimeout = 15 * time.Second

// @title Trade Values API
// @version 1.0
// @description Collectible item trading values, inventories and moderated value changes
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logCfg := logger.ProductionConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logCfg.Environment = cfg.Environment
	logger.Setup(logCfg)

	handler.InitValidator()

	if cfg.MigrateOnUp {
		if err := database.Migrate(cfg.GetDBConnString()); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Migrations applied")
	}

	pool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), cfg.DBMaxConns, time.Minute, 5*time.Minute)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	catalogRepo := postgres.NewCatalogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)

	identityService := identity.NewService(userRepo)
	catalogService := catalog.NewService(catalogRepo)
	inventoryService := inventory.NewService(inventoryRepo, catalogRepo)
	reviewService := review.NewService(reviewRepo, catalogRepo)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)

	srv := server.NewServer(cfg.Port, cfg.TrustedProxies, pool, issuer, userRepo,
		identityService, catalogService, inventoryService, reviewService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server stopped unexpectedly", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/highnoon-games/dustbound/internal/audit"
	"github.com/highnoon-games/dustbound/internal/config"
	"github.com/highnoon-games/dustbound/internal/database"
	"github.com/highnoon-games/dustbound/internal/database/postgres"
	"github.com/highnoon-games/dustbound/internal/inventory"
	"github.com/highnoon-games/dustbound/internal/item"
	"github.com/highnoon-games/dustbound/internal/quest"
	"github.com/highnoon-games/dustbound/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	log := slog.Default()

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Repositories
	inventoryRepo := postgres.NewInventoryRepository(pool, cfg.DBLockTimeout)
	questRepo := postgres.NewQuestRepository(pool, cfg.DBLockTimeout)
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)

	// Services
	auditSink := audit.NewSink(log, cfg.AuditBufferSize)
	catalog := item.NewService(itemRepo, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	inventoryService := inventory.NewService(inventoryRepo, userRepo, auditSink)
	questService := quest.NewService(questRepo, inventoryService, catalog, auditSink, quest.Config{
		ResolveAllLevels: cfg.ResolveAllLevels,
		CacheSize:        cfg.CatalogCacheSize,
		CacheTTL:         cfg.CatalogCacheTTL,
	})

	// Boot-time sanity check: seeded content must be present before the
	// gateway is pointed at us.
	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	items, err := catalog.ListItems(startCtx)
	if err != nil {
		log.Error("Failed to read item catalog", "error", err)
		os.Exit(1)
	}
	quests, err := questService.ListQuests(startCtx)
	if err != nil {
		log.Error("Failed to read quest definitions", "error", err)
		os.Exit(1)
	}
	startCancel()
	if len(items) == 0 || len(quests) == 0 {
		log.Warn("Content tables look empty; run cmd/setup to seed", "items", len(items), "quests", len(quests))
	}
	log.Info("Content loaded", "items", len(items), "quests", len(quests), "resolve_all_levels", cfg.ResolveAllLevels)

	srv := server.NewServer(cfg.Port, cfg.Version, pool)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		log.Error("Server failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Failed to stop server cleanly", "error", err)
	}
	if err := auditSink.Shutdown(ctx); err != nil {
		log.Error("Failed to drain audit sink", "error", err)
	}
	log.Info("Shutdown complete")
}

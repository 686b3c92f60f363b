package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"queencare-storefront/internal/backend"
	"queencare-storefront/internal/config"
	"queencare-storefront/internal/db"
	"queencare-storefront/internal/httpserver"
	"queencare-storefront/internal/migrate"
	"queencare-storefront/internal/repository/slot"
	"queencare-storefront/internal/service/anonymous"
	"queencare-storefront/internal/service/catalog"
	"queencare-storefront/internal/view"
)

const sweepSpec = "@every 1m"

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	slots, closeSlots, err := openSlots(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open slot store driver=%s: %v", cfg.SlotDriver, err)
	}
	defer closeSlots()

	transport := backend.NewTransport()
	newClient := func() *backend.Client {
		return backend.New(cfg.BackendURL,
			backend.WithTransport(transport),
			backend.WithTimeout(cfg.BackendTimeout),
			backend.WithLogger(logger),
		)
	}

	// Catalog reads need no session, so one client serves the shared cache.
	cache := catalog.New(newClient(), logger)
	if err := cache.EnsureLoaded(ctx); err != nil {
		logger.Printf("initial catalog load failed, visitors will retry: %v", err)
	}

	if cfg.CatalogReload != "" {
		sched, err := catalog.NewScheduler(cache, cfg.CatalogReload, cfg.BackendTimeout)
		if err != nil {
			logger.Fatalf("catalog scheduler: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	registry := view.NewRegistry(anonymous.New(cfg.VisitorIdleTTL), view.Deps{
		Catalog:    cache,
		Slots:      slots,
		NewBackend: func() view.Backend { return newClient() },
		NoticeTTL:  cfg.NoticeTTL,
		Logger:     logger,
	})

	sweeper, err := view.NewSweeper(registry, sweepSpec)
	if err != nil {
		logger.Fatalf("visitor sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Visitors:         registry,
		Storage:          slots,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s backend=%s slots=%s", cfg.HTTPAddr, cfg.BackendURL, cfg.SlotDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// openSlots picks the client slot store named by SLOT_DRIVER. The returned
// func releases whatever connection the driver holds.
func openSlots(ctx context.Context, cfg config.Config, logger *log.Logger) (slot.Repository, func(), error) {
	switch cfg.SlotDriver {
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString, db.PoolOptions{MaxConns: cfg.DBMaxConns})
		if err != nil {
			return nil, nil, err
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return slot.NewPostgres(pool, logger), pool.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return slot.NewRedis(client, cfg.RedisSlotTTL), func() { _ = client.Close() }, nil
	case "file", "":
		repo, err := slot.NewFile(cfg.SlotFile)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	default:
		return nil, nil, errors.New("unknown slot driver")
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"linguaplatform/backend/config"
	"linguaplatform/backend/routes"
	"linguaplatform/backend/seed"
	"linguaplatform/backend/services"
	"linguaplatform/backend/store"
	"linguaplatform/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize store
	kv, rdb, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open store", "driver", cfg.StoreDriver, "error", err)
	}
	repo := store.NewRepository(kv, logger)
	defer repo.Close()

	notifiers := services.Notifiers{services.NewLogNotifier(logger)}
	if rdb == nil && cfg.RedisAddr != "" {
		rdb = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
	}
	if rdb != nil {
		notifiers = append(notifiers, services.NewRedisNotifier(rdb, cfg.RedisChannel, logger))
	}

	svc := services.New(repo, notifiers, logger, services.Options{ShuffleOnRetake: cfg.ShuffleOnRetake})

	raw, err := seed.Catalog(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("read catalog", "path", cfg.CatalogPath, "error", err)
	}
	if _, err := svc.Catalog.Seed(ctx, raw); err != nil {
		logger.Fatal("seed catalog", "error", err)
	}
	if cfg.SuperAdminEmail != "" {
		if err := svc.Users.EnsureSuperAdmin(ctx, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
			logger.Fatal("ensure superadmin", "error", err)
		}
	}

	app := routes.NewApp(svc, cfg, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("listening", "port", cfg.ServerPort, "store", cfg.StoreDriver)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Error("server stopped", "error", err)
	}
}

// openStore returns the configured KV backend. The redis client is returned
// when the backend is redis so the notifier can share the connection.
func openStore(ctx context.Context, cfg *config.Config) (store.KV, *goredis.Client, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryKV(), nil, nil
	case config.DriverSQLite, config.DriverPostgres:
		db, err := utils.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		kv, err := store.NewGormKV(db)
		return kv, nil, err
	case config.DriverRedis:
		kv, err := store.NewRedisKV(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Client(), nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

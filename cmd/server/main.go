package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/invoice-dashboard/internal/cache"
	"github.com/hongminglow/invoice-dashboard/internal/config"
	"github.com/hongminglow/invoice-dashboard/internal/logging"
	"github.com/hongminglow/invoice-dashboard/internal/seed"
	"github.com/hongminglow/invoice-dashboard/internal/server"
	"github.com/hongminglow/invoice-dashboard/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.Init(cfg.LogLevel)

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		fatal(logger, "init database", err)
	}
	defer store.Close()

	var views server.Views = cache.Nop{}
	if cfg.CacheEnabled() {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			fatal(logger, "init redis", err)
		}
		defer rdb.Close()
		views = cache.NewViews(rdb, cfg.CacheTTL)
	} else {
		logger.Info("REDIS_URL not set; view caching disabled")
	}

	data, err := seed.Default()
	if err != nil {
		fatal(logger, "load seed data", err)
	}
	loader := seed.NewLoader(store, data, cfg.BcryptCost, logger)
	if cfg.SeedOnStart {
		if _, err := loader.Run(ctx); err != nil {
			fatal(logger, "seed database", err)
		}
	}

	srv := server.New(cfg, server.Deps{Store: store, Views: views, Seeder: loader})

	go func() {
		logger.Info("invoice dashboard listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "http server error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "err", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}

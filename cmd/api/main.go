package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/advanceapparels/tradeshow-portal/api/routes"
	"github.com/advanceapparels/tradeshow-portal/internal/bootstrap"
	"github.com/advanceapparels/tradeshow-portal/internal/customers"
	"github.com/advanceapparels/tradeshow-portal/internal/portals"
	"github.com/advanceapparels/tradeshow-portal/internal/products"
	"github.com/advanceapparels/tradeshow-portal/pkg/config"
	"github.com/advanceapparels/tradeshow-portal/pkg/db"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
	"github.com/advanceapparels/tradeshow-portal/pkg/migrate"
	"github.com/advanceapparels/tradeshow-portal/pkg/redis"
	"github.com/advanceapparels/tradeshow-portal/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(ctx, "redis not configured; idempotency and rate limiting disabled")
	}

	params := routes.Params{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Registry: prometheus.NewRegistry(),
	}
	params.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var store portals.ObjectStore
	if cfg.FeatureFlags.Uploads {
		gcsClient, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "object storage unavailable; uploads will fail")
		} else {
			defer gcsClient.Close()
			store = gcsClient
			params.Storage = gcsClient
		}
	}

	customerRepo := customers.NewRepository(dbClient.DB())
	if params.Customers, err = customers.NewService(customers.ServiceParams{Repo: customerRepo}); err != nil {
		logg.Error(ctx, "failed to create customer service", err)
		os.Exit(1)
	}
	if params.Catalog, err = products.NewService(products.ServiceParams{Repo: products.NewRepository(dbClient.DB())}); err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	if params.Portals, err = portals.NewService(portals.ServiceParams{
		Repo:           portals.NewRepository(dbClient.DB()),
		Customers:      customerRepo,
		Tx:             dbClient,
		Storage:        store,
		Logger:         logg,
		PublicURL:      cfg.App.PublicURL,
		MaxUploadBytes: cfg.Uploads.MaxBytes(),
	}); err != nil {
		logg.Error(ctx, "failed to create portal service", err)
		os.Exit(1)
	}
	if params.Sync, err = bootstrap.NewSyncService(ctx, bootstrap.SyncParams{
		Config:     cfg,
		DB:         dbClient.DB(),
		Redis:      redisClient,
		Registerer: params.Registry,
		Logger:     logg,
	}); err != nil {
		logg.Error(ctx, "failed to create sync service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(params),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "api server shutdown failed", err)
		}
		logg.Info(shutdownCtx, "api server shut down gracefully")
	}
}

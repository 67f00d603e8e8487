package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/advanceapparels/tradeshow-portal/internal/bootstrap"
	"github.com/advanceapparels/tradeshow-portal/internal/cron"
	"github.com/advanceapparels/tradeshow-portal/pkg/config"
	"github.com/advanceapparels/tradeshow-portal/pkg/db"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
	"github.com/advanceapparels/tradeshow-portal/pkg/metrics"
	"github.com/advanceapparels/tradeshow-portal/pkg/migrate"
	"github.com/advanceapparels/tradeshow-portal/pkg/redis"
)

const scheduleLockJob = "sync-worker"

func main() {
	once := flag.Bool("once", false, "run one sync cycle and exit")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "sync-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "sync-worker"

	logg = logger.New(logger.Options{
		ServiceName: "sync-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var (
		redisClient *redis.Client
		lock        cron.Lock = &cron.LocalLock{}
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		// A cycle may take as long as the interval; the ttl covers a crashed holder.
		lock, err = cron.NewRedisLock(redisClient, redisClient.CronLockKey(scheduleLockJob), cfg.Sync.Interval)
		if err != nil {
			logg.Error(context.Background(), "failed to create schedule lock", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "redis not configured; schedule lock is process local")
	}

	syncService, err := bootstrap.NewSyncService(context.Background(), bootstrap.SyncParams{
		Config:     cfg,
		DB:         dbClient.DB(),
		Redis:      redisClient,
		Registerer: prometheus.DefaultRegisterer,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync service", err)
		os.Exit(1)
	}

	job, err := cron.NewSyncAllJob(syncService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sync job", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:     logg,
		Registry:   cron.NewRegistry(job),
		Lock:       lock,
		Metrics:    metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval:   cfg.Sync.Interval,
		RunOnStart: cfg.Sync.RunOnStart,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"interval":    cfg.Sync.Interval.String(),
	})
	if *once {
		logg.Info(ctx, "running single sync cycle")
		if err := service.RunOnce(ctx); err != nil {
			logg.Error(ctx, "sync cycle failed", err)
			os.Exit(1)
		}
		return
	}

	logg.Info(ctx, "starting sync worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sync worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sync worker shutting down gracefully")
}

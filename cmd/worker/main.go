package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	accountinghttp "github.com/coldstore-erp/coldstore-erp/internal/accounting/http"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
	"github.com/coldstore-erp/coldstore-erp/internal/app"
	"github.com/coldstore-erp/coldstore-erp/internal/platform/cache"
	"github.com/coldstore-erp/coldstore-erp/internal/platform/db"
	"github.com/coldstore-erp/coldstore-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// The worker cannot make progress without Redis, so fail fast.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	ledgerService := ledgers.NewService(ledgers.NewRepository(pool))
	voucherService := vouchers.NewService(vouchers.NewRepository(pool))

	reportCache := accountinghttp.NewCache(redisClient, cfg.ReportCacheTTL)
	reportHandler := accountinghttp.NewHandler(logger, ledgerService, voucherService, reportCache)
	warmupJob := jobs.NewReportsWarmupJob(reportHandler, logger)

	nightlyWarmup, err := jobs.NewReportsWarmupTask(jobs.ReportsWarmupPayload{
		Reason:      "scheduled",
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: nightlyWarmup, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

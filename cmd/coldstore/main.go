package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	accountinghttp "github.com/coldstore-erp/coldstore-erp/internal/accounting/http"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/ledgers"
	"github.com/coldstore-erp/coldstore-erp/internal/accounting/vouchers"
	"github.com/coldstore-erp/coldstore-erp/internal/app"
	"github.com/coldstore-erp/coldstore-erp/internal/observability"
	"github.com/coldstore-erp/coldstore-erp/internal/platform/db"
	"github.com/coldstore-erp/coldstore-erp/jobs"
)

// reportInvalidator bumps the report cache and asks the worker to rebuild.
type reportInvalidator struct {
	cache  *accountinghttp.Cache
	jobs   *jobs.Client
	logger *slog.Logger
}

func (ri reportInvalidator) Bump(ctx context.Context) error {
	if err := ri.cache.Bump(ctx); err != nil {
		return err
	}
	if ri.jobs != nil {
		payload := jobs.ReportsWarmupPayload{Reason: "ledger write", RequestedAt: time.Now().UTC()}
		if _, err := ri.jobs.EnqueueReportsWarmup(ctx, payload); err != nil {
			ri.logger.Warn("enqueue reports warmup", slog.Any("error", err))
		}
	}
	return nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	ledgerRepo := ledgers.NewRepository(dbpool)
	ledgerService := ledgers.NewService(ledgerRepo)

	voucherRepo := vouchers.NewRepository(dbpool)
	voucherService := vouchers.NewService(voucherRepo)

	reportCache := accountinghttp.NewCache(redisClient, cfg.ReportCacheTTL)
	reportHandler := accountinghttp.NewHandler(logger, ledgerService, voucherService, reportCache)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	invalidator := reportInvalidator{cache: reportCache, jobs: jobClient, logger: logger}
	ledgerHandler := ledgers.NewHandler(logger, ledgerService, invalidator)
	voucherHandler := vouchers.NewHandler(logger, voucherService, invalidator)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		LedgerHandler:  ledgerHandler,
		VoucherHandler: voucherHandler,
		ReportHandler:  reportHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

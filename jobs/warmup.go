package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// ReportWarmer rebuilds the derived reports and primes the cache.
type ReportWarmer interface {
	Warm(ctx context.Context) error
}

// ReportsWarmupJob recomputes every report after ledger or voucher writes.
type ReportsWarmupJob struct {
	warmer ReportWarmer
	logger *slog.Logger
}

// NewReportsWarmupJob constructs the warmup job handler.
func NewReportsWarmupJob(warmer ReportWarmer, logger *slog.Logger) *ReportsWarmupJob {
	return &ReportsWarmupJob{warmer: warmer, logger: logger}
}

// Handle processes a reports warmup task.
func (j *ReportsWarmupJob) Handle(ctx context.Context, task *asynq.Task) error {
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if j.warmer == nil {
		return asynq.SkipRetry
	}

	started := time.Now()
	if err := j.warmer.Warm(ctx); err != nil {
		j.logger.Error("reports warmup failed",
			slog.String("reason", payload.Reason),
			slog.Any("error", err))
		return err
	}
	j.logger.Info("reports warmup complete",
		slog.String("reason", payload.Reason),
		slog.Duration("elapsed", time.Since(started)))
	return nil
}

package worker

// retry_cron.go
// Background goroutine that periodically re-attempts receipt generation for
// records stuck in status='error' with a next_retry_at in the past.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gutoberny/BernyFlow/internal/repository"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	Receipts repository.ReceiptRepository
	Worker   *ReceiptWorker
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries errored receipts whose backoff elapsed, and re-attempts issuing.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	receipts, err := cfg.Receipts.ListPendingRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(receipts) == 0 {
		return
	}

	log.Info().Int("count", len(receipts)).Msg("retry_cron: processing errored receipts")

	for i := range receipts {
		rec := &receipts[i]
		if err := cfg.Worker.Issue(ctx, rec); err != nil {
			cfg.Worker.recordFailure(ctx, rec, err)
			continue
		}
		log.Info().
			Str("receipt_id", rec.ID.String()).
			Int("total_retries", rec.RetryCount).
			Msg("retry_cron: receipt issued after retry")
	}
}

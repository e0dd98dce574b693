package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gutoberny/BernyFlow/internal/config"
	"github.com/gutoberny/BernyFlow/internal/infra"
	"github.com/gutoberny/BernyFlow/internal/repository"
	"github.com/gutoberny/BernyFlow/internal/router"
	"github.com/gutoberny/BernyFlow/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Human-readable logs in development, JSON in production
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Async pipeline ───────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	mailer := infra.NewMailer(cfg)

	receiptRepo := repository.NewReceiptRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	receiptWorker := worker.NewReceiptWorker(receiptRepo, orderRepo, companyRepo, dispatcher, cfg.PDFStoragePath)
	emailWorker := worker.NewEmailWorker(mailer)

	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		Receipt: receiptWorker,
		Email:   emailWorker,
	})
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		Receipts: receiptRepo,
		Worker:   receiptWorker,
	})

	// ── HTTP server ──────────────────────────────────────────────────────────
	gatewayCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	engine := router.New(cfg, db, rdb, gatewayCB, dispatcher)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

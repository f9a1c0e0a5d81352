package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/config"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/infra"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/migration"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/router"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/service"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/store"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Dual-tier store: Redis in front, settings table as source of truth.
	fastTier := store.NewRedisTier(rdb)
	durableTier := store.NewSettingsTier(db)
	st := store.New(fastTier, durableTier)

	// One-time migration of legacy fast-tier-only keys into the durable tier.
	// Idempotent — gated by a persisted flag, safe to run on every boot.
	migration.NewRunner(fastTier, durableTier).RunOnce(ctx)

	// Worker pool for async tasks (RAZ report PDF + email). Handlers are
	// wired here (composition root) so the pool sees all infrastructure.
	mailer := infra.NewMailer(cfg)
	historyRepo := repository.NewHistoryRepository(db)
	workerHandlers := &worker.WorkerHandlers{
		Report: worker.NewReportWorker(historyRepo, mailer, cfg.PDFStoragePath, cfg.ReportEmail),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Daily pruning of the RAZ history beyond the configured retention.
	worker.StartHistoryCron(ctx, service.NewHistoryService(historyRepo), cfg.HistoryRetention)

	r := router.New(cfg, db, rdb, st)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("caisse backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

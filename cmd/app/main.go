// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-tracker-api/internal/config"
	aiAdapters "job-tracker-api/internal/infra/adapters/ai"
	"job-tracker-api/internal/infra/api"
	pg "job-tracker-api/internal/infra/db/postgres"
	"job-tracker-api/internal/infra/logging"
	"job-tracker-api/internal/infra/metrics"
	red "job-tracker-api/internal/infra/redis"
	"job-tracker-api/internal/infra/sched"
	"job-tracker-api/internal/infra/worker"
	"job-tracker-api/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, no sampling)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	logging.Global = logger
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	go pg.ReportPoolStats(ctx, pool, 15*time.Second)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)
	locker := red.NewLocker(redisClient)

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	userRepo := pg.NewUserRepoCacheDecorator(pg.NewUserRepo(pool), redisClient, cfg.Redis.TTL)
	jobRepo := pg.NewJobRepo(pool)
	reportRepo := pg.NewReportRepo(pool)

	// ---- AI adapter (optional) ----
	ai, err := aiAdapters.New(ctx, cfg.AI)
	if err != nil {
		logger.Fatal().Err(err).Msg("ai adapter")
	}
	if ai == nil {
		logger.Info().Msg("no AI provider configured; checklists use the built-in lists")
	} else {
		logger.Info().Str("provider", ai.Provider()).Str("model", cfg.AI.DefaultModel).Msg("AI adapter ready")
	}

	// ---- Use cases ----
	dashboardUC := usecase.NewDashboardUseCase(jobRepo, logger)
	reportUC := usecase.NewReportUseCase(userRepo, jobRepo, reportRepo, tm, rateLimiter, cfg.Reports.RateLimitPerHour, logger)
	emailUC := usecase.NewEmailSummaryUseCase(userRepo, jobRepo, logger)
	checklistUC := usecase.NewChecklistUseCase(ai, cfg.AI.DefaultModel, logger)

	// ---- Scheduled reports ----
	workers := worker.NewPool(cfg.Reports.Workers, cfg.Reports.QueueSize, logger)
	workers.Start(ctx)
	reportWorker := sched.NewReportWorker(cfg.Reports.SchedulerInterval, userRepo, reportUC, workers, locker, logger)
	go func() {
		if err := reportWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("report worker stopped")
		}
	}()

	// ---- HTTP ----
	auth := api.NewAuthManager(cfg.Auth)
	srv := api.NewServer(dashboardUC, reportUC, emailUC, checklistUC, auth, cfg.HTTP.RequestTimeout, logger)
	srv.AddHealthCheck("postgres", pool)
	srv.AddHealthCheck("redis", redisClient)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("http server error")
	}

	// ---- Graceful shutdown ----
	logger.Info().Msg("shutdown requested")
	stop()
	workers.Stop()
}

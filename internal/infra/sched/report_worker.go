package sched

import (
	"context"
	"errors"
	"sync"
	"time"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/adapter"
	"job-tracker-api/internal/domain/ports/repository"
	"job-tracker-api/internal/infra/metrics"
	"job-tracker-api/internal/infra/worker"
	"job-tracker-api/internal/usecase"

	"github.com/rs/zerolog"
)

const sweepLockKey = "lock:report_sweep"

// Submitter is the part of worker.Pool the sweep needs.
type Submitter interface {
	Submit(task worker.Task) error
}

// ReportWorker periodically generates the weekly and monthly reports users
// opted into. Only one replica sweeps at a time.
type ReportWorker struct {
	interval time.Duration
	users    repository.UserRepository
	reportUC usecase.ReportUseCase
	pool     Submitter
	locker   adapter.Locker
	log      *zerolog.Logger
}

func NewReportWorker(
	interval time.Duration,
	users repository.UserRepository,
	reportUC usecase.ReportUseCase,
	pool Submitter,
	locker adapter.Locker,
	logger *zerolog.Logger,
) *ReportWorker {
	compLog := logger.With().Str("component", "ReportWorker").Logger()
	return &ReportWorker{
		interval: interval,
		users:    users,
		reportUC: reportUC,
		pool:     pool,
		locker:   locker,
		log:      &compLog,
	}
}

func (w *ReportWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting report worker")
	// Run once on startup, then on every tick
	w.runSweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping report worker")
			return ctx.Err()
		case <-ticker.C:
			w.runSweep(ctx)
		}
	}
}

func (w *ReportWorker) runSweep(ctx context.Context) {
	n, err := w.Sweep(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("report sweep failed")
		return
	}
	if n > 0 {
		w.log.Info().Int("reports", n).Msg("scheduled reports generated")
	}
}

// Sweep submits one task per subscribed user and waits for all of them. It
// returns the number of reports generated; a sweep held by another replica
// counts as zero.
func (w *ReportWorker) Sweep(ctx context.Context) (int, error) {
	token, err := w.locker.TryLock(ctx, sweepLockKey, w.interval)
	if errors.Is(err, domain.ErrLockNotAcquired) {
		w.log.Debug().Msg("report sweep already running elsewhere")
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer func() {
		// The sweep context may already be cancelled.
		uctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := w.locker.Unlock(uctx, sweepLockKey, token); err != nil {
			w.log.Warn().Err(err).Msg("release sweep lock")
		}
	}()

	users, err := w.users.ListReportSubscribers(ctx, repository.NoTX)
	if err != nil {
		return 0, err
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		generated int
	)
	for _, u := range users {
		u := u
		wg.Add(1)
		task := func(taskCtx context.Context) error {
			defer wg.Done()
			n, err := w.generateFor(taskCtx, u)
			mu.Lock()
			generated += n
			mu.Unlock()
			return err
		}
		if err := w.pool.Submit(task); err != nil {
			wg.Done()
			metrics.IncReportTask("rejected")
			w.log.Warn().Err(err).Str("user_id", u.ID).Msg("report task not queued")
		}
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	var waitErr error
	select {
	case <-done:
	case <-ctx.Done():
		waitErr = ctx.Err()
	}

	mu.Lock()
	defer mu.Unlock()
	return generated, waitErr
}

func (w *ReportWorker) generateFor(ctx context.Context, u *model.User) (int, error) {
	reports, err := w.reportUC.GenerateDue(ctx, u)
	switch {
	case err != nil:
		metrics.IncReportTask("failed")
		return 0, err
	case len(reports) == 0:
		metrics.IncReportTask("skipped")
	default:
		metrics.IncReportTask("generated")
	}
	return len(reports), nil
}

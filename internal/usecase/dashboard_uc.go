package usecase

import (
	"context"
	"time"

	"job-tracker-api/internal/analytics"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/repository"
	"job-tracker-api/internal/infra/logging"
	"job-tracker-api/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ DashboardUseCase = (*dashboardUC)(nil)

// DashboardUseCase serves the read-only dashboard views of one user's jobs.
type DashboardUseCase interface {
	Stats(ctx context.Context, userID string) (analytics.Stats, error)
	Insights(ctx context.Context, userID string) (analytics.Result, error)
	UpcomingInterviews(ctx context.Context, userID string) ([]analytics.Interview, error)
}

type dashboardUC struct {
	jobs   repository.JobRepository
	engine *analytics.Engine
	now    func() time.Time
	log    *zerolog.Logger
}

func NewDashboardUseCase(jobs repository.JobRepository, logger *zerolog.Logger, opts ...Option) *dashboardUC {
	o := buildOptions(opts)
	return &dashboardUC{
		jobs:   jobs,
		engine: analytics.NewEngine(o.rnd),
		now:    o.now,
		log:    logger,
	}
}

func (u *dashboardUC) Stats(ctx context.Context, userID string) (analytics.Stats, error) {
	defer logging.TraceDuration(u.log, "DashboardUC.Stats")()

	jobs, err := u.load(ctx, userID, "stats")
	if err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Aggregate(jobs, u.now()), nil
}

func (u *dashboardUC) Insights(ctx context.Context, userID string) (analytics.Result, error) {
	defer logging.TraceDuration(u.log, "DashboardUC.Insights")()

	jobs, err := u.load(ctx, userID, "insights")
	if err != nil {
		return analytics.Result{}, err
	}
	res := u.engine.Generate(jobs, u.now())
	for _, in := range res.Insights {
		metrics.IncInsight(string(in.Type))
	}
	return res, nil
}

func (u *dashboardUC) UpcomingInterviews(ctx context.Context, userID string) ([]analytics.Interview, error) {
	defer logging.TraceDuration(u.log, "DashboardUC.UpcomingInterviews")()

	jobs, err := u.load(ctx, userID, "upcoming")
	if err != nil {
		return nil, err
	}
	return analytics.FindUpcoming(jobs, u.now()), nil
}

func (u *dashboardUC) load(ctx context.Context, userID, op string) ([]*model.Job, error) {
	jobs, err := u.jobs.ListByUser(ctx, repository.NoTX, userID, repository.JobFilter{})
	if err != nil {
		logging.With(ctx, u.log).Error().Err(err).Str("operation", op).Msg("load jobs")
		return nil, err
	}
	metrics.ObserveJobsScanned(op, len(jobs))
	return jobs, nil
}

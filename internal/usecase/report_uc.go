package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-tracker-api/internal/datemath"
	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/adapter"
	"job-tracker-api/internal/domain/ports/repository"
	"job-tracker-api/internal/infra/logging"
	"job-tracker-api/internal/infra/metrics"
	"job-tracker-api/internal/report"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ ReportUseCase = (*reportUC)(nil)

const (
	DefaultReportPageSize = 20
	MaxReportPageSize     = 100

	reportRateWindow = time.Hour
	weeklyReportAge  = 7 * 24 * time.Hour
)

// ReportFormat selects the rendition of a stored report body.
type ReportFormat string

const (
	FormatHTML     ReportFormat = "html"
	FormatMarkdown ReportFormat = "markdown"
)

func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidArgument, s)
	}
}

// ReportUseCase generates and manages stored weekly and monthly reports.
type ReportUseCase interface {
	Generate(ctx context.Context, userID string, typ model.ReportType) (*model.Report, error)
	List(ctx context.Context, userID string, page, limit int) ([]model.ReportSummary, error)
	// Get marks the report as read.
	Get(ctx context.Context, userID, id string, format ReportFormat) (*model.Report, error)
	Delete(ctx context.Context, userID, id string) error
	// GenerateDue creates whichever periodic reports u has opted into and
	// not yet received for the current period.
	GenerateDue(ctx context.Context, u *model.User) ([]*model.Report, error)
}

type reportUC struct {
	users     repository.UserRepository
	jobs      repository.JobRepository
	reports   repository.ReportRepository
	tm        repository.TransactionManager
	limiter   adapter.RateLimiter
	limitHour int
	now       func() time.Time
	newID     func() string
	log       *zerolog.Logger
}

// NewReportUseCase builds the use case; a nil limiter or limitPerHour <= 0
// disables rate limiting.
func NewReportUseCase(
	users repository.UserRepository,
	jobs repository.JobRepository,
	reports repository.ReportRepository,
	tm repository.TransactionManager,
	limiter adapter.RateLimiter,
	limitPerHour int,
	logger *zerolog.Logger,
	opts ...Option,
) *reportUC {
	o := buildOptions(opts)
	return &reportUC{
		users:     users,
		jobs:      jobs,
		reports:   reports,
		tm:        tm,
		limiter:   limiter,
		limitHour: limitPerHour,
		now:       o.now,
		newID:     o.newID,
		log:       logger,
	}
}

func ReportRateKey(userID string) string {
	return "rate_limit:report_generate:" + userID
}

func (u *reportUC) Generate(ctx context.Context, userID string, typ model.ReportType) (*model.Report, error) {
	defer logging.TraceDuration(u.log, "ReportUC.Generate")()

	if _, err := model.ParseReportType(string(typ)); err != nil {
		return nil, err
	}
	if err := u.checkRate(ctx, userID); err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	return u.generate(ctx, user, typ, "api")
}

func (u *reportUC) checkRate(ctx context.Context, userID string) error {
	if u.limiter == nil || u.limitHour <= 0 {
		return nil
	}
	ok, err := u.limiter.Allow(ctx, ReportRateKey(userID), u.limitHour, reportRateWindow)
	if err != nil {
		// Redis trouble must not block report generation.
		logging.With(ctx, u.log).Warn().Err(err).Msg("report rate limiter unavailable")
		return nil
	}
	if !ok {
		metrics.IncRateLimited("report_generate")
		return domain.ErrRateLimited
	}
	return nil
}

func (u *reportUC) generate(ctx context.Context, user *model.User, typ model.ReportType, trigger string) (*model.Report, error) {
	jobs, err := u.jobs.ListByUser(ctx, repository.NoTX, user.ID, repository.JobFilter{})
	if err != nil {
		return nil, err
	}
	metrics.ObserveJobsScanned("report", len(jobs))

	summary := report.Compose(typ, user, jobs, u.now())
	r, err := report.Build(summary, u.newID(), user.ID)
	if err != nil {
		return nil, err
	}
	if err := u.reports.Save(ctx, repository.NoTX, r); err != nil {
		logging.With(ctx, u.log).Error().Err(err).Str("report_type", string(typ)).Msg("save report")
		return nil, err
	}
	metrics.IncReportGenerated(string(typ), trigger)
	u.log.Info().
		Str("user_id", user.ID).
		Str("report_id", r.ID).
		Str("report_type", string(typ)).
		Str("trigger", trigger).
		Msg("report generated")
	return r, nil
}

func (u *reportUC) List(ctx context.Context, userID string, page, limit int) ([]model.ReportSummary, error) {
	defer logging.TraceDuration(u.log, "ReportUC.List")()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultReportPageSize
	}
	if limit > MaxReportPageSize {
		limit = MaxReportPageSize
	}
	rs, err := u.reports.ListByUser(ctx, repository.NoTX, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.ReportSummary, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Summary())
	}
	return out, nil
}

func (u *reportUC) Get(ctx context.Context, userID, id string, format ReportFormat) (*model.Report, error) {
	defer logging.TraceDuration(u.log, "ReportUC.Get")()

	var out *model.Report
	err := u.tm.WithTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx repository.Tx) error {
		r, err := u.reports.FindByID(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if !r.IsRead {
			if err := u.reports.MarkRead(ctx, tx, userID, id); err != nil {
				return err
			}
			r.IsRead = true
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if format == FormatMarkdown {
		md, err := report.ToMarkdown(out.Content)
		if err != nil {
			return nil, err
		}
		out.Content = md
	}
	return out, nil
}

func (u *reportUC) Delete(ctx context.Context, userID, id string) error {
	defer logging.TraceDuration(u.log, "ReportUC.Delete")()
	return u.reports.Delete(ctx, repository.NoTX, userID, id)
}

func (u *reportUC) GenerateDue(ctx context.Context, user *model.User) ([]*model.Report, error) {
	defer logging.TraceDuration(u.log, "ReportUC.GenerateDue")()

	now := u.now()
	var due []model.ReportType
	if user.Preferences.WeeklyEmail {
		ok, err := u.isDue(ctx, user.ID, model.ReportWeekly, func(last time.Time) bool {
			return now.Sub(last) >= weeklyReportAge
		})
		if err != nil {
			return nil, err
		}
		if ok {
			due = append(due, model.ReportWeekly)
		}
	}
	if user.Preferences.MonthlyEmail {
		monthStart := datemath.MonthStart(now)
		ok, err := u.isDue(ctx, user.ID, model.ReportMonthly, func(last time.Time) bool {
			return last.Before(monthStart)
		})
		if err != nil {
			return nil, err
		}
		if ok {
			due = append(due, model.ReportMonthly)
		}
	}

	out := make([]*model.Report, 0, len(due))
	for _, typ := range due {
		r, err := u.generate(ctx, user, typ, "scheduler")
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (u *reportUC) isDue(ctx context.Context, userID string, typ model.ReportType, stale func(last time.Time) bool) (bool, error) {
	last, err := u.reports.LatestByType(ctx, repository.NoTX, userID, typ)
	if errors.Is(err, domain.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return stale(last.CreatedAt.UTC()), nil
}

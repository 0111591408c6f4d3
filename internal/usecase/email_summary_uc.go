package usecase

import (
	"context"
	"time"

	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/repository"
	"job-tracker-api/internal/infra/logging"
	"job-tracker-api/internal/report"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ EmailSummaryUseCase = (*emailSummaryUC)(nil)

// EmailSummaryUseCase renders the periodic summary e-mail without sending it.
type EmailSummaryUseCase interface {
	Preview(ctx context.Context, userID string, typ model.ReportType) (*report.Email, error)
}

type emailSummaryUC struct {
	users repository.UserRepository
	jobs  repository.JobRepository
	now   func() time.Time
	log   *zerolog.Logger
}

func NewEmailSummaryUseCase(users repository.UserRepository, jobs repository.JobRepository, logger *zerolog.Logger, opts ...Option) *emailSummaryUC {
	o := buildOptions(opts)
	return &emailSummaryUC{users: users, jobs: jobs, now: o.now, log: logger}
}

func (u *emailSummaryUC) Preview(ctx context.Context, userID string, typ model.ReportType) (*report.Email, error) {
	defer logging.TraceDuration(u.log, "EmailSummaryUC.Preview")()

	if _, err := model.ParseReportType(string(typ)); err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	jobs, err := u.jobs.ListByUser(ctx, repository.NoTX, userID, repository.JobFilter{})
	if err != nil {
		return nil, err
	}
	return report.BuildEmail(report.Compose(typ, user, jobs, u.now()))
}

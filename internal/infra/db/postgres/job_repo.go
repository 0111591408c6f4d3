package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/repository"
)

var _ repository.JobRepository = (*jobRepo)(nil)

// MaxJobsPerQuery caps unfiltered listings; analytics must stay responsive
// even for users with thousands of applications.
const MaxJobsPerQuery = 5000

type jobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *jobRepo {
	return &jobRepo{pool: pool}
}

const jobColumns = `id, user_id, company_name, position, status, city, state,
       salary_min, salary_max, work_mode, job_type, job_url, recruiter_email,
       date_applied, follow_up_days, is_priority, upcoming_stage, upcoming_schedule,
       notes, created_at, updated_at`

func (r *jobRepo) Save(ctx context.Context, tx repository.Tx, j *model.Job) error {
	const q = `
INSERT INTO jobs (
  id, user_id, company_name, position, status, city, state,
  salary_min, salary_max, work_mode, job_type, job_url, recruiter_email,
  date_applied, follow_up_days, is_priority, upcoming_stage, upcoming_schedule,
  notes, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
ON CONFLICT (id) DO UPDATE SET
  company_name=$3, position=$4, status=$5, city=$6, state=$7,
  salary_min=$8, salary_max=$9, work_mode=$10, job_type=$11, job_url=$12, recruiter_email=$13,
  date_applied=$14, follow_up_days=$15, is_priority=$16, upcoming_stage=$17, upcoming_schedule=$18,
  notes=$19, updated_at=$21;`

	var salMin, salMax *float64
	if j.SalaryRange != nil {
		salMin, salMax = &j.SalaryRange.Min, &j.SalaryRange.Max
	}
	_, err := execSQL(ctx, r.pool, tx, q,
		j.ID, j.UserID, j.Company, j.Position, string(j.Status), j.Location.City, j.Location.State,
		salMin, salMax, j.WorkMode, j.JobType, j.JobURL, j.RecruiterEmail,
		j.DateApplied, j.FollowUpDays, j.IsPriority, string(j.UpcomingStage), j.UpcomingSchedule,
		j.Notes, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

func (r *jobRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, f repository.JobFilter) ([]*model.Job, error) {
	var (
		where = []string{"user_id=$1"}
		args  = []interface{}{userID}
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status=$%d", len(args)))
	}
	if f.WorkMode != "" {
		args = append(args, strings.ToLower(f.WorkMode))
		where = append(where, fmt.Sprintf("lower(work_mode)=$%d", len(args)))
	}
	if f.PriorityOnly {
		where = append(where, "is_priority")
	}
	limit := f.Limit
	if limit <= 0 || limit > MaxJobsPerQuery {
		limit = MaxJobsPerQuery
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	q := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d;`,
		jobColumns, strings.Join(where, " AND "), len(args)-1, len(args))
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *jobRepo) CountByUser(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM jobs WHERE user_id=$1;`, userID)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var (
		j                model.Job
		status, upcoming string
		salMin, salMax   *float64
		applied, updated *time.Time
		followUp         *int32
	)
	if err := row.Scan(&j.ID, &j.UserID, &j.Company, &j.Position, &status, &j.Location.City, &j.Location.State,
		&salMin, &salMax, &j.WorkMode, &j.JobType, &j.JobURL, &j.RecruiterEmail,
		&applied, &followUp, &j.IsPriority, &upcoming, &j.UpcomingSchedule,
		&j.Notes, &j.CreatedAt, &updated); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReadDatabaseRow, err)
	}

	j.Status = model.ParseStage(status)
	j.UpcomingStage = model.ParseStage(upcoming)
	if salMin != nil || salMax != nil {
		j.SalaryRange = &model.SalaryRange{}
		if salMin != nil {
			j.SalaryRange.Min = *salMin
		}
		if salMax != nil {
			j.SalaryRange.Max = *salMax
		}
	}
	if followUp != nil {
		n := int(*followUp)
		j.FollowUpDays = &n
	}
	j.CreatedAt = j.CreatedAt.UTC()
	j.DateApplied = utcPtr(applied)
	j.UpdatedAt = utcPtr(updated)
	return &j, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

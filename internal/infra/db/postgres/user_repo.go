package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

const userColumns = `id, email, name, preferred_display_name, communication_email,
       weekly_email, monthly_email, created_at`

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (
  id, email, name, preferred_display_name, communication_email,
  weekly_email, monthly_email, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  email=$2, name=$3, preferred_display_name=$4, communication_email=$5,
  weekly_email=$6, monthly_email=$7;`

	_, err := execSQL(ctx, r.pool, tx, q,
		u.ID, u.Email, u.Name, u.PreferredDisplayName, u.CommunicationEmail,
		u.Preferences.WeeklyEmail, u.Preferences.MonthlyEmail, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+userColumns+` FROM users WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PreferredDisplayName, &u.CommunicationEmail,
		&u.Preferences.WeeklyEmail, &u.Preferences.MonthlyEmail, &u.CreatedAt); err != nil {
		return nil, scanErr(err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *userRepo) ListReportSubscribers(ctx context.Context, tx repository.Tx) ([]*model.User, error) {
	rows, err := queryRows(ctx, r.pool, tx,
		`SELECT `+userColumns+` FROM users WHERE weekly_email OR monthly_email ORDER BY created_at, id;`)
	if err != nil {
		return nil, fmt.Errorf("list report subscribers: %w", err)
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PreferredDisplayName, &u.CommunicationEmail,
			&u.Preferences.WeeklyEmail, &u.Preferences.MonthlyEmail, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrReadDatabaseRow, err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		out = append(out, &u)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/domain/ports/repository"
)

var _ repository.ReportRepository = (*reportRepo)(nil)

type reportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *reportRepo {
	return &reportRepo{pool: pool}
}

const reportColumns = `id, user_id, report_type, title, date_range, content, stats, created_at, is_read`

func (r *reportRepo) Save(ctx context.Context, tx repository.Tx, rep *model.Report) error {
	const q = `
INSERT INTO reports (id, user_id, report_type, title, date_range, content, stats, created_at, is_read)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);`

	stats, err := json.Marshal(rep.Stats)
	if err != nil {
		return fmt.Errorf("encode report stats: %w", err)
	}
	if _, err := execSQL(ctx, r.pool, tx, q,
		rep.ID, rep.UserID, string(rep.Type), rep.Title, rep.DateRange, rep.Content,
		string(stats), rep.CreatedAt, rep.IsRead); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (r *reportRepo) FindByID(ctx context.Context, tx repository.Tx, userID, id string) (*model.Report, error) {
	q := `SELECT ` + reportColumns + ` FROM reports WHERE id=$1 AND user_id=$2`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	row, err := pickRow(ctx, r.pool, tx, q+";", id, userID)
	if err != nil {
		return nil, err
	}
	return scanReport(row)
}

func (r *reportRepo) MarkRead(ctx context.Context, tx repository.Tx, userID, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `UPDATE reports SET is_read=TRUE WHERE id=$1 AND user_id=$2;`, id, userID)
	if err != nil {
		return fmt.Errorf("mark report read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reportRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM reports WHERE id=$1 AND user_id=$2;`, id, userID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reportRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, offset, limit int) ([]*model.Report, error) {
	rows, err := queryRows(ctx, r.pool, tx,
		`SELECT `+reportColumns+` FROM reports WHERE user_id=$1 ORDER BY created_at DESC, id DESC OFFSET $2 LIMIT $3;`,
		userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []*model.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *reportRepo) LatestByType(ctx context.Context, tx repository.Tx, userID string, typ model.ReportType) (*model.Report, error) {
	row, err := pickRow(ctx, r.pool, tx,
		`SELECT `+reportColumns+` FROM reports WHERE user_id=$1 AND report_type=$2 ORDER BY created_at DESC, id DESC LIMIT 1;`,
		userID, string(typ))
	if err != nil {
		return nil, err
	}
	return scanReport(row)
}

func scanReport(row pgx.Row) (*model.Report, error) {
	var (
		rep   model.Report
		typ   string
		stats []byte
	)
	if err := row.Scan(&rep.ID, &rep.UserID, &typ, &rep.Title, &rep.DateRange, &rep.Content,
		&stats, &rep.CreatedAt, &rep.IsRead); err != nil {
		return nil, scanErr(err)
	}
	rep.Type = model.ReportType(typ)
	rep.CreatedAt = rep.CreatedAt.UTC()
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &rep.Stats); err != nil {
			return nil, fmt.Errorf("%w: report stats: %v", domain.ErrReadDatabaseRow, err)
		}
	}
	return &rep, nil
}

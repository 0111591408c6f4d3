package repository

import (
	"context"

	"job-tracker-api/internal/domain/model"
)

// -----------------------------
// Reports
// -----------------------------

// ReportRepository is user scoped: every lookup takes the owner id and a
// report of another user behaves exactly like a missing one.
type ReportRepository interface {
	Save(ctx context.Context, tx Tx, r *model.Report) error
	FindByID(ctx context.Context, tx Tx, userID, id string) (*model.Report, error)
	MarkRead(ctx context.Context, tx Tx, userID, id string) error
	Delete(ctx context.Context, tx Tx, userID, id string) error
	ListByUser(ctx context.Context, tx Tx, userID string, offset, limit int) ([]*model.Report, error)
	// LatestByType returns domain.ErrNotFound when the user has none.
	LatestByType(ctx context.Context, tx Tx, userID string, typ model.ReportType) (*model.Report, error)
}

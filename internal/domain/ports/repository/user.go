package repository

import (
	"context"

	"job-tracker-api/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	// ListReportSubscribers returns users that opted into weekly or monthly reports.
	ListReportSubscribers(ctx context.Context, tx Tx) ([]*model.User, error)
}

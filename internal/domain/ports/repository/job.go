package repository

import (
	"context"

	"job-tracker-api/internal/domain/model"
)

// -----------------------------
// Jobs
// -----------------------------

// JobFilter narrows a listing. The zero value lists everything up to the
// store's default cap.
type JobFilter struct {
	Status       model.Stage
	WorkMode     string
	PriorityOnly bool
	Limit        int
	Offset       int
}

type JobRepository interface {
	Save(ctx context.Context, tx Tx, j *model.Job) error
	ListByUser(ctx context.Context, tx Tx, userID string, f JobFilter) ([]*model.Job, error)
	CountByUser(ctx context.Context, tx Tx, userID string) (int, error)
}

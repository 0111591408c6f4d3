package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle. Its concrete type belongs to the
// storage implementation (pgx.Tx for Postgres); repositories must accept nil
// and fall back to the pool.
type Tx interface{}

var NoTX Tx

// TransactionManager runs fn inside one transaction and passes the handle on,
// so use cases can group repository calls without seeing storage types.
//
//	tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx Tx) error {
//		if err := reports.Save(ctx, tx, r); err != nil {
//			return err
//		}
//		return reports.MarkRead(ctx, tx, r.UserID, r.ID)
//	})
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}

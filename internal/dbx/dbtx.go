// Package dbx carries the database plumbing the store repositories share:
// a query interface that both *sql.DB and *sql.Tx satisfy, and the
// transaction wrapper every multi-statement write goes through.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX names the three query methods the repositories call. Code written
// against it runs unchanged on a plain handle or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx owns the transaction lifecycle around fn: commit when fn returns
// nil, roll back when it returns an error, roll back and rethrow when it
// panics. fn must route every statement through the tx it receives:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if _, err := tx.ExecContext(ctx, `DELETE FROM formats WHERE clip_id = ?`, id); err != nil {
//	        return err
//	    }
//	    _, err := tx.ExecContext(ctx, `DELETE FROM clips WHERE id = ?`, id)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

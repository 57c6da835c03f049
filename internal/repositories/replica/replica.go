// Package replica provides the secondary ("cloud") encrypted store. It
// copies selected records out of the history store on demand. A copy is an
// independent snapshot: once made, it does not follow later changes or
// deletions of the source record.
package replica

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openclip/openclip/internal/dbx"
	"github.com/openclip/openclip/internal/models"
	"github.com/openclip/openclip/internal/repositories/clips"
)

// Source is the subset of the history store needed to clone one record.
// *clips.SQLiteRepository satisfies it.
type Source interface {
	GetMeta(ctx context.Context, hash string) (clips.Meta, error)
	GetPayloads(ctx context.Context, hash string) ([]models.PayloadEntry, error)
}

// Repository describes the replica store operations.
type Repository interface {
	// CopyFrom clones one record from the source in a single transaction.
	// Copying a hash the replica already holds is a no-op.
	CopyFrom(ctx context.Context, hash string, source Source) error

	// SyncedHashes returns the set of content hashes present locally.
	SyncedHashes(ctx context.Context) (map[string]struct{}, error)
}

// SQLiteRepository implements Repository over an encrypted SQLite handle
// with the same schema as the history store.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CopyFrom(ctx context.Context, hash string, source Source) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// The existence check runs inside the transaction so that two
		// overlapping copies of the same hash commit one row and one no-op,
		// instead of racing into the unique index.
		var n int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM clips WHERE content_hash = ?`, hash).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to check replica for %s: %w", hash, err)
		}
		if n > 0 {
			return nil
		}

		meta, err := source.GetMeta(ctx, hash)
		if err != nil {
			return fmt.Errorf("failed to read source meta: %w", err)
		}
		payloads, err := source.GetPayloads(ctx, hash)
		if err != nil {
			return fmt.Errorf("failed to read source payloads: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO clips (owner_process_name, foreground_window_title, exe_path, content_hash, is_sensitive)
			 VALUES (?, ?, ?, ?, ?)`,
			meta.OwnerProcess, meta.ForegroundTitle, meta.ExePath, hash, meta.IsSensitive)
		if err != nil {
			return fmt.Errorf("failed to insert replica clip: %w", err)
		}

		clipID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get replica clip id: %w", err)
		}

		for _, p := range payloads {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO formats (clip_id, format_id, format_name, data) VALUES (?, ?, ?, ?)`,
				clipID, p.FormatID, p.FormatName, p.Data)
			if err != nil {
				return fmt.Errorf("failed to insert replica payload %d: %w", p.FormatID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) SyncedHashes(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT content_hash FROM clips`)
	if err != nil {
		return nil, fmt.Errorf("failed to select synced hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]struct{})
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		hashes[h] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hashes, nil
}

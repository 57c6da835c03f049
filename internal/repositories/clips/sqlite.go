package clips

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openclip/openclip/internal/common"
	"github.com/openclip/openclip/internal/dbx"
	"github.com/openclip/openclip/internal/models"
)

// SQLiteRepository implements Repository over an encrypted SQLite handle.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a SQLiteRepository bound to the given handle.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, rec *models.ClipRecord) error {
	if len(rec.Payloads) == 0 {
		return nil
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var n int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM clips WHERE content_hash = ?`, rec.ContentHash).Scan(&n)
		if err != nil {
			return fmt.Errorf("failed to check content hash: %w", err)
		}
		if n > 0 {
			// Same primary content captured again: commit as a no-op.
			return nil
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO clips (owner_process_name, foreground_window_title, exe_path, content_hash, is_sensitive)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.OwnerProcess, rec.ForegroundTitle, rec.ExePath, rec.ContentHash, rec.IsSensitive)
		if err != nil {
			return fmt.Errorf("failed to insert clip: %w", err)
		}

		clipID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get clip id: %w", err)
		}

		for _, p := range rec.Payloads {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO formats (clip_id, format_id, format_name, data) VALUES (?, ?, ?, ?)`,
				clipID, p.FormatID, p.FormatName, p.Data)
			if err != nil {
				return fmt.Errorf("failed to insert payload %d: %w", p.FormatID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) GetLatest(ctx context.Context, limit, offset int) ([]models.ClipSummary, error) {
	query := `SELECT content_hash, timestamp, owner_process_name, foreground_window_title,
			(SELECT data FROM formats
			   WHERE clip_id = clips.id AND (format_id = 13 OR format_id = 1)
			   ORDER BY format_id DESC
			   LIMIT 1) AS preview
		FROM clips
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select clips: %w", err)
	}
	defer rows.Close()

	var result []models.ClipSummary
	for rows.Next() {
		var (
			item         models.ClipSummary
			owner, title sql.NullString
			raw          []byte
		)
		if err := rows.Scan(&item.ContentHash, &item.Timestamp, &owner, &title, &raw); err != nil {
			return nil, err
		}
		item.Owner = owner.String
		item.ForegroundTitle = title.String
		item.Preview = derivePreview(raw)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetTotalCount(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clips`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count clips: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteByHash(ctx context.Context, hash string) error {
	// Payload rows go with the clip via ON DELETE CASCADE. Deleting a
	// nonexistent hash affects zero rows and is not an error.
	_, err := r.db.ExecContext(ctx, `DELETE FROM clips WHERE content_hash = ?`, hash)
	if err != nil {
		return fmt.Errorf("failed to delete clip: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ClearAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clips`)
	if err != nil {
		return fmt.Errorf("failed to clear clips: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetPayloads(ctx context.Context, hash string) ([]models.PayloadEntry, error) {
	query := `SELECT f.format_id, f.format_name, f.data
		FROM formats f
		JOIN clips c ON c.id = f.clip_id
		WHERE c.content_hash = ?
		ORDER BY f.format_id ASC`

	rows, err := r.db.QueryContext(ctx, query, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to select payloads: %w", err)
	}
	defer rows.Close()

	var result []models.PayloadEntry
	for rows.Next() {
		var (
			p    models.PayloadEntry
			name sql.NullString
		)
		if err := rows.Scan(&p.FormatID, &name, &p.Data); err != nil {
			return nil, err
		}
		p.FormatName = name.String
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetMeta(ctx context.Context, hash string) (Meta, error) {
	query := `SELECT owner_process_name, foreground_window_title, exe_path, is_sensitive
		FROM clips WHERE content_hash = ?`

	var (
		owner, title, exe sql.NullString
		sensitive         bool
	)
	err := r.db.QueryRowContext(ctx, query, hash).Scan(&owner, &title, &exe, &sensitive)
	if errors.Is(err, sql.ErrNoRows) {
		return Meta{}, fmt.Errorf("clip %s: %w", hash, common.ErrorNotFound)
	}
	if err != nil {
		return Meta{}, fmt.Errorf("failed to select clip meta: %w", err)
	}
	return Meta{
		OwnerProcess:    owner.String,
		ForegroundTitle: title.String,
		ExePath:         exe.String,
		IsSensitive:     sensitive,
	}, nil
}

package clips

import (
	"context"

	"github.com/openclip/openclip/internal/models"
)

// Meta is the contextual metadata stored alongside a clip, returned as a
// unit so the replica store can clone a record without re-deriving it.
type Meta struct {
	OwnerProcess    string
	ForegroundTitle string
	ExePath         string
	IsSensitive     bool
}

// Repository describes the history store operations.
type Repository interface {
	// Save persists a record and its payloads in one transaction. Saving a
	// hash that already exists is a no-op. A record with zero payloads is
	// never persisted.
	Save(ctx context.Context, rec *models.ClipRecord) error

	// GetLatest returns records ordered newest first, windowed by
	// limit/offset, with previews derived from their text payloads.
	GetLatest(ctx context.Context, limit, offset int) ([]models.ClipSummary, error)

	// GetTotalCount returns the number of stored records.
	GetTotalCount(ctx context.Context) (int, error)

	// DeleteByHash removes one record and its payloads. Unknown hashes are
	// a silent no-op.
	DeleteByHash(ctx context.Context, hash string) error

	// ClearAll removes every record and payload.
	ClearAll(ctx context.Context) error

	// GetPayloads returns the record's payload set ordered by format id
	// ascending, or an empty slice for an unknown hash.
	GetPayloads(ctx context.Context, hash string) ([]models.PayloadEntry, error)

	// GetMeta returns the stored context of one record. Unknown hashes
	// yield common.ErrorNotFound.
	GetMeta(ctx context.Context, hash string) (Meta, error)
}

package cli

import (
	"context"
	"database/sql"

	"github.com/openclip/openclip/internal/clipdb"
	"github.com/openclip/openclip/internal/repositories/clips"
	"github.com/openclip/openclip/internal/repositories/replica"
)

// openHistory opens the primary store. The caller owns the returned handle.
func (o *RootOptions) openHistory(ctx context.Context) (*sql.DB, *clips.SQLiteRepository, error) {
	key, err := o.storeKey()
	if err != nil {
		return nil, nil, err
	}
	db, err := clipdb.Open(ctx, o.cfg.DBPath, key, clipdb.DefaultParams())
	if err != nil {
		return nil, nil, err
	}
	return db, clips.NewSQLiteRepository(db), nil
}

// openReplica opens the secondary store. The caller owns the returned handle.
func (o *RootOptions) openReplica(ctx context.Context) (*sql.DB, *replica.SQLiteRepository, error) {
	key, err := o.storeKey()
	if err != nil {
		return nil, nil, err
	}
	db, err := clipdb.Open(ctx, o.cfg.ReplicaPath, key, clipdb.DefaultParams())
	if err != nil {
		return nil, nil, err
	}
	return db, replica.NewSQLiteRepository(db), nil
}

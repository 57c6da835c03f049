package clipdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchemaAndReopens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(ctx, path, "correct horse", DefaultParams())
	require.NoError(t, err)

	for _, table := range []string{"clips", "formats"} {
		var name string
		err = db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}
	require.NoError(t, db.Close())

	// reopen with the same key
	db, err = Open(ctx, path, "correct horse", DefaultParams())
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestOpen_WrongKeyFails(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(ctx, path, "right key", DefaultParams())
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO clips (owner_process_name, content_hash) VALUES ('a', 'h1')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(ctx, path, "wrong key", DefaultParams())
	assert.Error(t, err, "opening with a different key must fail")
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(ctx, path, "k", DefaultParams())
	require.NoError(t, err)
	defer db.Close()

	var on int
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}

package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/openclip/openclip/internal/clipboard"
	"github.com/openclip/openclip/internal/logging"
	"github.com/openclip/openclip/internal/models"
	"github.com/openclip/openclip/internal/repositories/clips"
	"github.com/openclip/openclip/internal/repositories/replica"
	"github.com/openclip/openclip/internal/restore"
	"github.com/openclip/openclip/internal/signals"
)

const testSchema = `
CREATE TABLE clips (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  owner_process_name TEXT,
  foreground_window_title TEXT,
  exe_path TEXT,
  content_hash TEXT,
  is_sensitive INTEGER DEFAULT 0,
  timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE formats (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  clip_id INTEGER,
  format_id INTEGER,
  format_name TEXT,
  data BLOB,
  FOREIGN KEY(clip_id) REFERENCES clips(id) ON DELETE CASCADE
);
CREATE UNIQUE INDEX idx_clips_content_hash ON clips(content_hash);
`

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON;`)
	require.NoError(t, err)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newService(t *testing.T, pageSize int) (*Service, *clips.SQLiteRepository, *clipboard.MemoryPort) {
	t.Helper()
	store := clips.NewSQLiteRepository(setupDB(t))
	rep := replica.NewSQLiteRepository(setupDB(t))
	port := clipboard.NewMemoryPort()
	var sup signals.Suppressor
	engine := restore.NewEngine(store, port, &sup, discardLogger())
	return NewService(store, rep, engine, discardLogger(), pageSize), store, port
}

func seed(t *testing.T, store *clips.SQLiteRepository, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, store.Save(context.Background(), &models.ClipRecord{
			ContentHash: fmt.Sprintf("h%03d", i),
			Payloads: []models.PayloadEntry{
				{FormatID: 1, FormatName: "CF_TEXT", Data: []byte(fmt.Sprintf("clip %d", i))},
			},
		}))
	}
}

func TestRefresh_ClampsCursorWhenStoreShrinks(t *testing.T) {
	svc, store, _ := newService(t, 20)
	ctx := context.Background()
	seed(t, store, 45)

	svc.SetPage(5)
	page, err := svc.Refresh(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, svc.Cursor().Index, "page 5 of 45/20 clamps to the last page")
	assert.Len(t, page, 5, "last page holds the remainder")
	assert.Equal(t, 45, svc.Total())
}

func TestRefresh_PagingWalk(t *testing.T) {
	svc, store, _ := newService(t, 20)
	ctx := context.Background()
	seed(t, store, 45)

	page, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, page, 20)

	svc.NextPage()
	page, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, page, 20)
	assert.Equal(t, 1, svc.Cursor().Index)

	svc.NextPage()
	svc.NextPage() // no page 3; cursor stays on 2
	page, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.Cursor().Index)
	assert.Len(t, page, 5)

	svc.PrevPage()
	assert.Equal(t, 1, svc.Cursor().Index)
}

func TestDeleteClip_ShrinksHistory(t *testing.T) {
	svc, store, _ := newService(t, 20)
	ctx := context.Background()
	seed(t, store, 3)

	require.NoError(t, svc.DeleteClip(ctx, "h001"))

	page, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, 2, svc.Total())
}

func TestClearHistory_ResetsCursor(t *testing.T) {
	svc, store, _ := newService(t, 10)
	ctx := context.Background()
	seed(t, store, 25)

	svc.SetPage(2)
	_, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, svc.Cursor().Index)

	require.NoError(t, svc.ClearHistory(ctx))

	page, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, 0, svc.Cursor().Index)
	assert.Equal(t, 0, svc.Total())
}

func TestRestoreClip_WritesThroughEngine(t *testing.T) {
	svc, store, port := newService(t, 20)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.ClipRecord{
		ContentHash: "h",
		Payloads:    []models.PayloadEntry{{FormatID: 13, FormatName: "CF_UNICODETEXT", Data: []byte("x\x00")}},
	}))

	require.NoError(t, svc.RestoreClip(ctx, "h"))

	sess, err := port.OpenExclusive()
	require.NoError(t, err)
	defer sess.Close()
	data, err := sess.Read(13)
	require.NoError(t, err)
	assert.Equal(t, []byte("x\x00"), data)
}

func TestSyncClip_AndMembership(t *testing.T) {
	svc, store, _ := newService(t, 20)
	ctx := context.Background()
	seed(t, store, 2)

	require.NoError(t, svc.SyncClip(ctx, "h000"))
	require.NoError(t, svc.SyncClip(ctx, "h000"), "repeat sync is a no-op")

	hashes, err := svc.SyncedHashes(ctx)
	require.NoError(t, err)
	assert.Contains(t, hashes, "h000")
	assert.NotContains(t, hashes, "h001")

	// replica survives source deletion
	require.NoError(t, svc.DeleteClip(ctx, "h000"))
	hashes, err = svc.SyncedHashes(ctx)
	require.NoError(t, err)
	assert.Contains(t, hashes, "h000")
}

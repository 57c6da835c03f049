// Package clipdb opens the encrypted SQLite stores (history and replica) and
// applies their shared schema. Both stores use the same SQLCipher
// configuration; they differ only in path and key.
package clipdb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/pressly/goose/v3"

	_ "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/openclip/openclip/internal/clipdb/migrations"
	"github.com/openclip/openclip/internal/common"
)

// Params is the fixed SQLCipher configuration applied at open time. It is
// configuration, not negotiation: every store in one deployment uses the
// same values, otherwise reopening fails key verification.
type Params struct {
	KDFIter        int
	CipherPageSize int
	MemorySecurity bool
	HMACAlgorithm  string
	KDFAlgorithm   string
}

// DefaultParams returns the cipher settings used by both stores.
func DefaultParams() Params {
	return Params{
		KDFIter:        256000,
		CipherPageSize: 4096,
		MemorySecurity: true,
		HMACAlgorithm:  "HMAC_SHA512",
		KDFAlgorithm:   "PBKDF2_HMAC_SHA512",
	}
}

// Open opens (creating if needed) an encrypted store, verifies the key and
// brings the schema up to date. The returned handle is limited to a single
// connection because the cipher pragmas below are per-connection state.
//
// A wrong key, a locked file or an unreadable path all surface as
// common.ErrStoreUnavailable.
func Open(ctx context.Context, path, key string, p Params) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma_key=%s&_pragma_cipher_page_size=%d",
		path, url.QueryEscape(key), p.CipherPageSize)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", common.ErrStoreUnavailable, path, err)
	}
	db.SetMaxOpenConns(1)

	if err := applyPragmas(ctx, db, p); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	// First real read: fails here if the key does not match the file.
	var n int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master`).Scan(&n); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: key verification for %s: %v", common.ErrStoreUnavailable, path, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate %s: %v", common.ErrStoreUnavailable, path, err)
	}

	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB, p Params) error {
	memSecurity := "OFF"
	if p.MemorySecurity {
		memSecurity = "ON"
	}
	pragmas := []string{
		fmt.Sprintf("PRAGMA kdf_iter = %d;", p.KDFIter),
		fmt.Sprintf("PRAGMA cipher_memory_security = %s;", memSecurity),
		fmt.Sprintf("PRAGMA cipher_hmac_algorithm = %s;", p.HMACAlgorithm),
		fmt.Sprintf("PRAGMA cipher_kdf_algorithm = %s;", p.KDFAlgorithm),
		"PRAGMA foreign_keys = ON;",
	}
	for _, q := range pragmas {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("pragma %q: %w", q, err)
		}
	}
	return nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

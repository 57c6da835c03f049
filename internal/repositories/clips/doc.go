// Package clips provides the content-addressed persistence layer for
// captured clipboard records (the history store).
//
// # Overview
//
// The package defines a Repository interface for saving, listing, restoring
// and deleting ClipRecords (see internal/models). A SQLite-backed
// implementation (SQLiteRepository) persists data in an encrypted database
// opened via internal/clipdb.
//
// # Data Model
//
// A record's identity is its content hash, derived from the primary payload
// bytes. Save is idempotent per hash: a duplicate save commits as a no-op.
// Payload rows cascade on record deletion. Listing previews are derived at
// query time from the record's text payload and never stored.
//
// # Concurrency
//
// One persistence worker owns the writing handle; readers open their own
// handles and rely on SQLite's transaction isolation. No application-level
// lock is taken across connections.
package clips

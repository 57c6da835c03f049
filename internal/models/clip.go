// Package models defines the clipboard data types shared by capture,
// persistence and restore.
package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// PayloadEntry is one (format id, format name, bytes) triple belonging to a
// captured clip. Payloads are owned by the record that contains them and are
// never shared between records.
type PayloadEntry struct {
	FormatID   uint32
	FormatName string
	Data       []byte
}

// ClipRecord is a normalized clipboard snapshot. ContentHash identifies the
// record inside a store: saving a record whose hash already exists is a
// no-op, never a duplicate row.
type ClipRecord struct {
	ContentHash     string
	OwnerProcess    string
	ForegroundTitle string
	ExePath         string
	IsSensitive     bool

	// Timestamp is assigned by the store on insert (wall clock, UTC).
	Timestamp string

	// Payloads in clipboard enumeration order. A persisted record always
	// has at least one.
	Payloads []PayloadEntry
}

// ClipSummary is the read-side row used for history listings. Preview is
// derived at query time and never persisted.
type ClipSummary struct {
	ContentHash     string
	Timestamp       string
	Owner           string
	ForegroundTitle string
	Preview         string
}

// ContentHash returns the hex SHA-256 of the primary payload bytes. The hash
// covers only the first payload in enumeration order: two clips with the
// same primary content but different secondary formats are the same record.
func ContentHash(primary []byte) string {
	sum := sha256.Sum256(primary)
	return hex.EncodeToString(sum[:])
}

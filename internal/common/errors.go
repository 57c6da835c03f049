// Package common contains shared sentinel errors used across OpenClip
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrPortUnavailable means the clipboard could not be opened for this
	// cycle. Capture treats it as "no capture", not a failure.
	ErrPortUnavailable = errors.New("clipboard port unavailable")

	// ErrStoreUnavailable means a history or replica database could not be
	// opened (bad key, locked file, missing path).
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrorNotFound is returned by lookups that require a row to exist.
	ErrorNotFound = errors.New("not found")
)

// Package clipboard defines the port through which the core talks to the OS
// clipboard, plus an in-memory implementation used by tests and by platforms
// without a system adapter. The core never touches OS APIs directly.
package clipboard

// Session is a scoped exclusive clipboard handle. Sessions must be closed;
// all reads and writes happen inside one session.
type Session interface {
	// Formats returns the available format ids in enumeration order.
	Formats() []uint32

	// Read returns the raw bytes of one format.
	Read(id uint32) ([]byte, error)

	// Write places bytes on the clipboard under the given format id.
	Write(id uint32, data []byte) error

	// Clear empties the clipboard.
	Clear() error

	// FormatName resolves the OS-registered name of a format, or "" when
	// the format has no registered name.
	FormatName(id uint32) string

	Close() error
}

// Port is the clipboard contract consumed by capture and restore. Failure to
// open the port means "no capture this cycle", never a fatal error.
type Port interface {
	// OpenExclusive acquires the clipboard for the duration of a Session.
	OpenExclusive() (Session, error)

	// OwnerProcessName names the process that produced the current
	// clipboard contents, best effort.
	OwnerProcessName() string

	// ForegroundWindowTitle returns the title of the foreground window at
	// capture time, best effort.
	ForegroundWindowTitle() string
}

// Notifier is implemented by ports that can report clipboard changes. The
// channel fires on every change, including changes made by this process.
type Notifier interface {
	// Changes delivers a notification per clipboard update until the stop
	// func is called. Notifications are coalesced, not queued.
	Changes(buf int) (ch <-chan struct{}, stop func())
}

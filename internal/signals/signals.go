// Package signals holds the cross-goroutine notification flags shared by the
// capture, restore and refresh paths. The flags carry no payload, only a
// state transition, so plain atomics are enough.
package signals

import "sync/atomic"

// Flag is a boolean notification shared between goroutines, e.g. the
// visibility toggle or the pending-refresh marker.
type Flag struct {
	v atomic.Bool
}

func (f *Flag) Set()        { f.v.Store(true) }
func (f *Flag) Clear()      { f.v.Store(false) }
func (f *Flag) IsSet() bool { return f.v.Load() }

// TakeDown returns true exactly once per Set, clearing the flag. Used by
// refresh loops to consume a pending-refresh notification.
func (f *Flag) TakeDown() bool {
	return f.v.Swap(false)
}

// Suppressor is the echo-suppression guard. Restore acquires it for the
// duration of its clipboard write-back so that the capture normalizer does
// not reinterpret the write as a new clip.
//
// It counts holders rather than storing a bare bool so that every exit path
// of an acquirer can release unconditionally:
//
//	release := sup.Acquire()
//	defer release()
type Suppressor struct {
	holders atomic.Int32
}

// Acquire raises suppression and returns the matching release func.
// The release func is idempotent.
func (s *Suppressor) Acquire() (release func()) {
	s.holders.Add(1)
	var done atomic.Bool
	return func() {
		if done.CompareAndSwap(false, true) {
			s.holders.Add(-1)
		}
	}
}

// Active reports whether any restore currently holds the guard. The capture
// normalizer drops events entirely while this is true.
func (s *Suppressor) Active() bool {
	return s.holders.Load() > 0
}

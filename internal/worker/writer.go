// Package worker runs the persistence side of the capture pipeline: a single
// goroutine that owns the writable history-store handle and drains the
// capture channel in FIFO order, so capture order equals persisted order.
package worker

import (
	"context"

	"github.com/openclip/openclip/internal/logging"
	"github.com/openclip/openclip/internal/models"
	"github.com/openclip/openclip/internal/signals"
)

// Saver is the only history-store capability the worker needs.
type Saver interface {
	Save(ctx context.Context, rec *models.ClipRecord) error
}

// Writer serializes all history-store writes through one channel consumer.
// Other components never touch the writing handle directly; they Enqueue.
type Writer struct {
	ch      chan *models.ClipRecord
	store   Saver
	refresh *signals.Flag
	log     logging.Logger
}

// NewWriter builds a Writer. refresh may be nil; when set, the flag is
// raised after every successful save so refresh loops know to requery.
func NewWriter(store Saver, refresh *signals.Flag, log logging.Logger, buffer int) *Writer {
	return &Writer{
		ch:      make(chan *models.ClipRecord, buffer),
		store:   store,
		refresh: refresh,
		log:     log,
	}
}

// Enqueue hands a record to the worker. Blocks while the buffer is full,
// preserving FIFO order. Must not be called after Close.
func (w *Writer) Enqueue(rec *models.ClipRecord) {
	w.ch <- rec
}

// Close ends the stream. Run drains what is already queued, then returns.
// Callers must stop enqueueing first.
func (w *Writer) Close() {
	close(w.ch)
}

// Run consumes records until the channel is closed or ctx is canceled.
// A failing save is logged and skipped; one bad record must not stop the
// records behind it.
func (w *Writer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-w.ch:
			if !ok {
				return
			}
			if err := w.store.Save(ctx, rec); err != nil {
				w.log.Error(ctx, "failed to save clip", "hash", rec.ContentHash, "error", err)
				continue
			}
			w.log.Info(ctx, "clip saved", "hash", rec.ContentHash, "owner", rec.OwnerProcess)
			if w.refresh != nil {
				w.refresh.Set()
			}
		}
	}
}

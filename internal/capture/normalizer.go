// Package capture turns clipboard-change notifications into normalized
// ClipRecords. The normalizer never persists anything itself; finished
// records are handed to the persistence worker through a Sink.
package capture

import (
	"context"

	"github.com/openclip/openclip/internal/clipboard"
	"github.com/openclip/openclip/internal/logging"
	"github.com/openclip/openclip/internal/models"
	"github.com/openclip/openclip/internal/signals"
)

// unknownExePath is stored when the port cannot resolve the owner's
// executable path.
const unknownExePath = "UnknownPath"

// Sink receives finished capture records, in capture order.
type Sink interface {
	Enqueue(rec *models.ClipRecord)
}

// processPathResolver is implemented by ports that can resolve the clipboard
// owner's executable path (the Windows port can).
type processPathResolver interface {
	OwnerProcessPath() string
}

// Normalizer captures one clipboard session per change notification.
type Normalizer struct {
	port clipboard.Port
	sup  *signals.Suppressor
	sink Sink
	log  logging.Logger
}

func NewNormalizer(port clipboard.Port, sup *signals.Suppressor, sink Sink, log logging.Logger) *Normalizer {
	return &Normalizer{port: port, sup: sup, sink: sink, log: log}
}

// HandleUpdate processes one clipboard-change notification. Every failure
// short of a payload read is "no capture this cycle": suppressed events,
// an unopenable port and empty clipboards all end quietly.
func (n *Normalizer) HandleUpdate(ctx context.Context) {
	if n.sup.Active() {
		// A restore is writing the clipboard; this event is its echo.
		n.log.Debug(ctx, "clipboard event suppressed")
		return
	}

	owner := n.port.OwnerProcessName()
	title := n.port.ForegroundWindowTitle()
	exePath := unknownExePath
	if r, ok := n.port.(processPathResolver); ok {
		if p := r.OwnerProcessPath(); p != "" {
			exePath = p
		}
	}

	sess, err := n.port.OpenExclusive()
	if err != nil {
		n.log.Debug(ctx, "clipboard not available this cycle", "error", err)
		return
	}

	var payloads []models.PayloadEntry
	for _, id := range sess.Formats() {
		data, err := sess.Read(id)
		if err != nil {
			n.log.Debug(ctx, "skipping unreadable format", "format", id, "error", err)
			continue
		}
		payloads = append(payloads, models.PayloadEntry{
			FormatID:   id,
			FormatName: models.ResolveFormatName(id, sess.FormatName(id)),
			Data:       data,
		})
	}
	if err := sess.Close(); err != nil {
		n.log.Warn(ctx, "failed to close clipboard session", "error", err)
	}

	if len(payloads) == 0 {
		return
	}

	rec := &models.ClipRecord{
		ContentHash:     models.ContentHash(payloads[0].Data),
		OwnerProcess:    owner,
		ForegroundTitle: title,
		ExePath:         exePath,
		Payloads:        payloads,
	}

	n.sink.Enqueue(rec)
	n.log.Debug(ctx, "clip captured", "hash", rec.ContentHash, "formats", len(payloads))
}

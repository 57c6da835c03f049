// Package restore writes a stored record's payload set back onto the
// clipboard. The whole write-back runs under the echo-suppression guard so
// the capture normalizer does not record it as a new clip.
package restore

import (
	"context"
	"fmt"

	"github.com/openclip/openclip/internal/clipboard"
	"github.com/openclip/openclip/internal/logging"
	"github.com/openclip/openclip/internal/models"
	"github.com/openclip/openclip/internal/signals"
)

// PayloadSource is the history-store capability the engine needs.
type PayloadSource interface {
	GetPayloads(ctx context.Context, hash string) ([]models.PayloadEntry, error)
}

// Engine reconstructs stored records on the clipboard port.
type Engine struct {
	store PayloadSource
	port  clipboard.Port
	sup   *signals.Suppressor
	log   logging.Logger
}

func NewEngine(store PayloadSource, port clipboard.Port, sup *signals.Suppressor, log logging.Logger) *Engine {
	return &Engine{store: store, port: port, sup: sup, log: log}
}

// Restore puts the record's payloads back on the clipboard. An unknown hash
// is a no-op. A payload that fails to write is skipped: a partial restore
// beats an aborted one. The suppression guard is held for the whole write
// sequence and released on every exit path.
func (e *Engine) Restore(ctx context.Context, hash string) error {
	payloads, err := e.store.GetPayloads(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to load payloads for %s: %w", hash, err)
	}
	if len(payloads) == 0 {
		return nil
	}

	release := e.sup.Acquire()
	defer release()

	sess, err := e.port.OpenExclusive()
	if err != nil {
		return fmt.Errorf("failed to open clipboard for restore: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			e.log.Warn(ctx, "failed to close clipboard session", "error", err)
		}
	}()

	if err := sess.Clear(); err != nil {
		return fmt.Errorf("failed to clear clipboard: %w", err)
	}

	restored := 0
	for _, p := range payloads {
		if err := sess.Write(p.FormatID, p.Data); err != nil {
			e.log.Warn(ctx, "skipping format during restore",
				"hash", hash, "format", p.FormatID, "error", err)
			continue
		}
		restored++
	}

	e.log.Info(ctx, "clip restored", "hash", hash,
		"formats", restored, "skipped", len(payloads)-restored)
	return nil
}

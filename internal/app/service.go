// Package app glues the stores, the restore engine and the notification
// flags into the operations a front end calls: refresh a page of history,
// delete, clear, restore, replicate. It holds no state beyond the page
// cursor and the flags; every call reads the stores fresh.
package app

import (
	"context"
	"fmt"

	"github.com/openclip/openclip/internal/logging"
	"github.com/openclip/openclip/internal/models"
	"github.com/openclip/openclip/internal/repositories/clips"
	"github.com/openclip/openclip/internal/repositories/replica"
	"github.com/openclip/openclip/internal/signals"
)

// Restorer reconstructs a stored record on the clipboard.
type Restorer interface {
	Restore(ctx context.Context, hash string) error
}

// Service exposes the history operations to a front end (the CLI here, a
// window shell elsewhere).
type Service struct {
	store    clips.Repository
	replica  replica.Repository
	restorer Restorer
	log      logging.Logger

	cursor PageCursor
	total  int

	// Visible is the window-visibility toggle; PendingRefresh is raised by
	// the persistence worker when new rows landed. Both are notifications
	// only, carrying no data.
	Visible        signals.Flag
	PendingRefresh signals.Flag
}

func NewService(store clips.Repository, rep replica.Repository, restorer Restorer, log logging.Logger, pageSize int) *Service {
	return &Service{
		store:    store,
		replica:  rep,
		restorer: restorer,
		log:      log,
		cursor:   PageCursor{Size: pageSize},
	}
}

// Refresh re-reads the total count, clamps the cursor and returns the
// current page, newest first.
func (s *Service) Refresh(ctx context.Context) ([]models.ClipSummary, error) {
	total, err := s.store.GetTotalCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count history: %w", err)
	}
	s.total = total
	s.cursor.Clamp(total)

	page, err := s.store.GetLatest(ctx, s.cursor.Size, s.cursor.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to load history page: %w", err)
	}
	return page, nil
}

// Cursor returns the current page cursor (after the last Refresh clamp).
func (s *Service) Cursor() PageCursor { return s.cursor }

// Total returns the record count observed by the last Refresh.
func (s *Service) Total() int { return s.total }

// SetPage positions the cursor; the next Refresh clamps it.
func (s *Service) SetPage(index int) { s.cursor.Index = index }

// NextPage advances the cursor when another page exists.
func (s *Service) NextPage() {
	if s.cursor.HasNext(s.total) {
		s.cursor.Index++
	}
}

// PrevPage moves the cursor back one page.
func (s *Service) PrevPage() {
	if s.cursor.Index > 0 {
		s.cursor.Index--
	}
}

// DeleteClip removes one record from the history store.
func (s *Service) DeleteClip(ctx context.Context, hash string) error {
	if err := s.store.DeleteByHash(ctx, hash); err != nil {
		return err
	}
	s.log.Info(ctx, "clip deleted", "hash", hash)
	return nil
}

// ClearHistory wipes the history store and resets the cursor to the first
// page.
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}
	s.cursor.Index = 0
	s.log.Info(ctx, "history cleared")
	return nil
}

// RestoreClip puts a stored record back on the clipboard.
func (s *Service) RestoreClip(ctx context.Context, hash string) error {
	return s.restorer.Restore(ctx, hash)
}

// SyncClip copies one record into the replica store.
func (s *Service) SyncClip(ctx context.Context, hash string) error {
	if err := s.replica.CopyFrom(ctx, hash, s.store); err != nil {
		return err
	}
	s.log.Info(ctx, "clip replicated", "hash", hash)
	return nil
}

// SyncedHashes returns the replica membership set, recomputed per call.
func (s *Service) SyncedHashes(ctx context.Context) (map[string]struct{}, error) {
	return s.replica.SyncedHashes(ctx)
}

package cli

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openclip/openclip/internal/capture"
	"github.com/openclip/openclip/internal/clipboard"
	"github.com/openclip/openclip/internal/signals"
	"github.com/openclip/openclip/internal/worker"
)

// NewRunCommand creates the capture daemon command.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Capture clipboard changes into the history store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd.Context(), opts)
		},
	}
}

func runCapture(ctx context.Context, opts *RootOptions) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, store, err := opts.openHistory(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	port, err := clipboard.NewSystemPort()
	if err != nil {
		return err
	}
	notifier, ok := port.(clipboard.Notifier)
	if !ok {
		return errors.New("clipboard port does not support change notifications")
	}

	var sup signals.Suppressor
	var refresh signals.Flag

	w := worker.NewWriter(store, &refresh, opts.log, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Drains the channel with the background context so records already
		// queued at shutdown still land.
		w.Run(context.Background())
	}()

	normalizer := capture.NewNormalizer(port, &sup, w, opts.log)

	changes, stopWatch := notifier.Changes(1)
	opts.log.Info(ctx, "capturing clipboard", "db", opts.cfg.DBPath)

	for running := true; running; {
		select {
		case <-ctx.Done():
			running = false
		case _, more := <-changes:
			if !more {
				running = false
				break
			}
			normalizer.HandleUpdate(ctx)
		}
	}

	// Shutdown order: stop producing, then end the stream, then wait for the
	// worker to drain.
	stopWatch()
	w.Close()
	wg.Wait()

	opts.log.Info(context.Background(), "capture stopped")
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/openclip/openclip/internal/clipboard"
	"github.com/openclip/openclip/internal/restore"
	"github.com/openclip/openclip/internal/signals"
)

// NewRestoreCommand creates the command that puts a stored clip back on the
// clipboard.
func NewRestoreCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <hash>",
		Short: "Write a stored clip back onto the clipboard",
		Long: "Write a stored clip back onto the clipboard.\n\n" +
			"Echo suppression is process-local: a capture daemon started with 'run' in a\n" +
			"separate process cannot see this command's suppression guard and may record\n" +
			"the write-back (deduplicated by content hash when the clipboard reports the\n" +
			"formats in stored order). Embedders that host capture and restore in one\n" +
			"process share a single guard and do not recapture.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, store, err := opts.openHistory(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			port, err := clipboard.NewSystemPort()
			if err != nil {
				return err
			}

			var sup signals.Suppressor
			engine := restore.NewEngine(store, port, &sup, opts.log)
			return engine.Restore(ctx, args[0])
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the single-record delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <hash>",
		Short: "Delete one clip from the history store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, store, err := opts.openHistory(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			return store.DeleteByHash(ctx, args[0])
		},
	}
}

// NewClearCommand creates the wipe-everything command.
func NewClearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all clips from the history store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, store, err := opts.openHistory(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			return store.ClearAll(ctx)
		},
	}
}

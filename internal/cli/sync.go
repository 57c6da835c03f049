package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewSyncCommand creates the command that copies one clip into the replica
// store.
func NewSyncCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <hash>",
		Short: "Copy one clip into the replica store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, store, err := opts.openHistory(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			rdb, rep, err := opts.openReplica(ctx)
			if err != nil {
				return err
			}
			defer rdb.Close()

			if err := rep.CopyFrom(ctx, args[0], store); err != nil {
				return err
			}
			opts.log.Info(ctx, "clip replicated", "hash", args[0], "replica", opts.cfg.ReplicaPath)
			return nil
		},
	}
}

// NewSyncedCommand creates the command that lists the replica membership.
func NewSyncedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "synced",
		Short: "List content hashes present in the replica store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rdb, rep, err := opts.openReplica(ctx)
			if err != nil {
				return err
			}
			defer rdb.Close()

			set, err := rep.SyncedHashes(ctx)
			if err != nil {
				return err
			}

			hashes := make([]string, 0, len(set))
			for h := range set {
				hashes = append(hashes, h)
			}
			sort.Strings(hashes)

			for _, h := range hashes {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
}

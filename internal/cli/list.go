package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openclip/openclip/internal/app"
)

// NewListCommand creates the history listing command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a page of clipboard history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, store, err := opts.openHistory(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := app.NewService(store, nil, nil, opts.log, opts.cfg.PageSize)
			svc.SetPage(page)
			summaries, err := svc.Refresh(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "history is empty")
				return nil
			}

			// The hash is printed in full: restore, delete and sync all
			// address records by exact hash.
			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HASH\tTIME\tOWNER\tPREVIEW")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.ContentHash, s.Timestamp, s.Owner, s.Preview)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			cur := svc.Cursor()
			fmt.Fprintf(out, "page %d of %d (%d records)\n",
				cur.Index+1, cur.TotalPages(svc.Total()), svc.Total())
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 0, "zero-based page index")
	return cmd
}

// Package cli implements the openclip command surface. Every subcommand is
// a thin shell: it opens the stores it needs, calls into the core packages
// and prints the result.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/openclip/openclip/internal/config"
	"github.com/openclip/openclip/internal/logging"
)

// RootOptions holds global flags and the resolved configuration shared by
// all subcommands.
type RootOptions struct {
	ConfigFile  string
	DBPath      string
	ReplicaPath string
	Key         string
	PageSize    int
	Verbose     bool

	cfg *config.Config
	log logging.Logger
}

// NewRootCommand creates the root command for the openclip CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "openclip",
		Short:        "Encrypted clipboard history",
		Long:         "OpenClip captures clipboard changes into an encrypted, content-addressed history store,\nand can restore, delete and selectively replicate records to a second encrypted store.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to JSON config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "history store file")
	cmd.PersistentFlags().StringVar(&opts.ReplicaPath, "replica", "", "replica store file")
	cmd.PersistentFlags().StringVar(&opts.Key, "key", "", "store key (overrides config and "+config.KeyEnvVar+")")
	cmd.PersistentFlags().IntVar(&opts.PageSize, "page-size", 0, "records per history page")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewRestoreCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewSyncedCommand(opts))

	return cmd
}

// resolve layers the configuration: defaults, JSON file, environment, then
// any flags the user actually set.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("db") {
		cfg.DBPath = o.DBPath
	}
	if f.Changed("replica") {
		cfg.ReplicaPath = o.ReplicaPath
	}
	if f.Changed("key") {
		cfg.Key = o.Key
	}
	if f.Changed("page-size") {
		cfg.PageSize = o.PageSize
	}
	if cfg.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", cfg.PageSize)
	}

	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	o.log = logging.NewSlogLogger(slog.New(h))

	o.cfg = cfg
	return nil
}

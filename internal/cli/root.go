package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-hedm/hedm"
	"github.com/robert-malhotra/go-hedm/store"
	"github.com/robert-malhotra/go-hedm/store/h5"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "text" | "json" | "yaml"
	LogLevel string
	Config   string

	// Store opens input files. Nil means the HDF5 backend.
	Store store.Store

	logger *hedm.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the hedm CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hedm",
		Short: "Inspect HEDM .mic scans stored in HDF5",
		Long: `Read the header, phases and data columns of HEDM microstructure scans.

Every command takes the file and the internal group holding the scan's
Header and Data groups. A YAML request file can supply the group and the
column selection; command-line flags override it.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			level, err := parseLevel(opts.LogLevel)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid log level", err)
			}
			if opts.Verbose && !cmd.Flags().Changed("log-level") {
				level = slog.LevelDebug
			}
			opts.logger = hedm.NewTextLogger(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "YAML read request")

	cmd.AddCommand(NewHeaderCommand(opts))
	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return level, nil
}

func (o *RootOptions) store() store.Store {
	if o.Store != nil {
		return o.Store
	}
	return h5.Store{}
}

func (o *RootOptions) log() *hedm.Logger {
	if o.logger == nil {
		return hedm.NoopLogger()
	}
	return o.logger
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// Package cli implements the headless architect-cli commands.
package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	LogLevel string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the architect CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "architect-cli",
		Short: "Evaluate logic circuits without opening the editor",
		Long: `architect-cli loads circuit layouts, evaluates every gate and reports
the results. It also exercises the spatial index with random placements.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			setupLogs(opts, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warning", "log level (debug|info|warning|error)")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewScatterCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// setupLogs sends structured logs to w so they never mix with command output.
func setupLogs(opts *RootOptions, w io.Writer) {
	level := opts.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logs.SetLevel(logs.ParseLevel(level))
	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal
	logs.SetLogger(func(e logs.Entry) {
		fmt.Fprintln(w, e)
	})
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			return formatter.Success(versionInfo{Name: "architect-cli", Version: Version})
		},
	}
}

type versionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (v versionInfo) WriteText(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", v.Name, v.Version)
}

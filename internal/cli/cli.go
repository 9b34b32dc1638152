// Package cli wires the skinwell commands: the chart TUI, session
// management, reports, the report server and config files.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }

// Run executes the command line against the real terminal.
func Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdout, os.Stderr)
	defer a.close()
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Usage is the root help text, printed after usage errors.
func Usage() string {
	a := newApp(io.Discard, io.Discard)
	return strings.TrimRight(newRootCommand(a).UsageString(), "\n")
}

func newRootCommand(a *app) *cobra.Command {
	var sessionRef string
	root := &cobra.Command{
		Use:   "skinwell",
		Short: "Radial visibility chart for skin assessment sessions",
		Long: `skinwell records per-category visibility levels for a visit and shows them
as a segmented radial chart you can adjust with the mouse or keyboard.

Without a subcommand it opens the chart for the most recent session, or
asks for a new one when none exist.`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChart(cmd.Context(), a, sessionRef)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})
	root.PersistentFlags().StringVar(&a.dbOverride, "db", "", "database path (overrides store.path)")
	root.Flags().StringVarP(&sessionRef, "session", "s", "", "open this session id or id prefix")

	root.AddCommand(
		newNewCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newHistoryCommand(a),
		newDeleteCommand(a),
		newServeCommand(a),
		newConfigCommand(a),
	)
	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return UsageError{Message: fmt.Sprintf("%s takes no arguments", cmd.CommandPath())}
	}
	return nil
}

func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return UsageError{Message: fmt.Sprintf("%s requires exactly %d argument(s): %s", cmd.CommandPath(), n, names)}
		}
		return nil
	}
}

// IsUsageError reports whether err should be followed by the usage text.
func IsUsageError(err error) bool {
	var ue UsageError
	return errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command")
}

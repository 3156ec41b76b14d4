// Package cli implements the planner command-line interface.
//
// The solve command reads a timetable in the plain-text trip format from a
// file or stdin, plans the cheapest round trip and prints it in the same
// format the original scripts used. Loggers travel through context.Context
// and write to stderr so stdout only carries the itinerary.
package cli

import (
	"context"
	"flight-itinerary-service/internal/platform/obs"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Output goes to stdout and logs to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Plan minimum-cost round trips over a flight timetable",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(obs.WithLogger(ctx, obs.NewLogger(stderr, level)))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())

	return root
}

// Execute runs the CLI against the process streams.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetIn(stdin)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

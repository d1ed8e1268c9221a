// Command transformer exercises the transformer building blocks from the
// command line.
//
// Usage:
//
//	transformer version
//	transformer info
//	transformer posenc --len 4 --units 8 --scale
//	transformer smooth --classes 3 --epsilon 0.1
//	transformer attend --config hparams.yaml --batch 2 --len 10 --causal --pad 7
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := newRootCommand(logger, level).Execute(); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "transformer",
		Short:         "Transformer building blocks: attention, positional encoding, label smoothing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				level.Set(slog.LevelDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCommand(),
		newInfoCommand(),
		newPosEncCommand(),
		newSmoothCommand(),
		newAttendCommand(logger),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "transformer %s\n", version)
		},
	}
}

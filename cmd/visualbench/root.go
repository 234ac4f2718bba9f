package main

import (
	"github.com/spf13/cobra"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/logger"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visualbench",
		Short: "Visual fidelity benchmarks for document rendering",
		Long: `visualbench scores rendered document pages against reference captures.

It aligns each candidate page to its reference, computes structural,
ink, edge and color similarity metrics, applies vertical drift
correction where a single layout issue explains the mismatch, and
aggregates page scores into a document score.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			logger.SetDebug()
		}
	}

	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newDiffCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newUploadCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newTextCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/report"
)

func newDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <reference.png> <candidate.png> <output.png>",
		Short: "Write a tinted overlay showing where two page renders differ",
		Long: `Build a diff overlay from two page renders.

Reference ink is tinted dark teal, candidate ink dark red; matching
content blends into a darker tone on the white background.`,
		Args:          cobra.ExactArgs(3),
		RunE:          runDiff,
		SilenceErrors: true,
	}
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	if err := report.WriteDiffOverlay(args[0], args[1], args[2]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[2])
	return nil
}

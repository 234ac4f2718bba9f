package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/benchmark"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/textcheck"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

func newTextCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text <reference-dir> <candidate-dir>",
		Short: "OCR both renders and report text error rates per page",
		Long: `Run OCR over paired page renders and report character and word
error rates of the candidate text against the reference text.

These rates are diagnostics for triaging low visual scores; they do
not contribute to the score itself. Requires a local Tesseract
installation.`,
		Args:          cobra.ExactArgs(2),
		RunE:          runText,
		SilenceErrors: true,
	}
	return cmd
}

func runText(cmd *cobra.Command, args []string) error {
	refPaths, err := benchmark.DiscoverPages(args[0])
	if err != nil {
		return err
	}
	candPaths, err := benchmark.DiscoverPages(args[1])
	if err != nil {
		return err
	}
	refPaths, candPaths, _ = benchmark.PairPages(refPaths, candPaths)

	checker, err := textcheck.NewChecker()
	if err != nil {
		return err
	}
	defer checker.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tCER\tWER")
	for i := range refPaths {
		ref, err := imaging.Load(refPaths[i])
		if err != nil {
			return err
		}
		cand, err := imaging.Load(candPaths[i])
		if err != nil {
			return err
		}
		result, err := checker.CheckPage(i+1, ref, cand)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\n", result.Page, result.CER, result.WER)
	}
	return w.Flush()
}

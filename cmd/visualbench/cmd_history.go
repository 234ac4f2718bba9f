package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/history"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [document]",
		Short: "Show recent benchmark runs from the history database",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runHistory,
		SilenceErrors: true,
	}
	cmd.Flags().String("db", "benchmark-history.db", "SQLite history database file")
	cmd.Flags().Int("limit", 20, "Maximum runs to show")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")

	document := ""
	if len(args) == 1 {
		document = args[0]
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), document, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tDOCUMENT\tOVERALL\tSTRICT\tDRIFT\tMIN\tPAGES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%d\n",
			r.CreatedAt.Format(time.RFC3339), r.Document,
			r.OverallScore, r.StrictScore, r.DriftScore, r.MinScore, r.PageCount)
	}
	return w.Flush()
}

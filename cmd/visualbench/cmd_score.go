package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/benchmark"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/config"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/history"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/report"
)

func newScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <reference-dir> <candidate-dir>",
		Short: "Score candidate page renders against reference captures",
		Long: `Score one document, or a whole corpus of documents, against reference renders.

In single-document mode both directories contain page_*.png renders:
  visualbench score baselines/invoice out/invoice

With --all both directories contain one subdirectory per document; every
subdirectory name present in both is scored:
  visualbench score baselines/ out/ --all --parallel 4`,
		Args:          cobra.ExactArgs(2),
		RunE:          runScore,
		SilenceErrors: true,
	}
	cmd.Flags().Bool("all", false, "Treat arguments as corpus roots with one subdirectory per document")
	cmd.Flags().Int("parallel", 2, "Documents scored concurrently with --all")
	cmd.Flags().Int("workers", 0, "Page scoring workers per document (0 = CPU count)")
	cmd.Flags().String("score-config", "", "YAML file overriding scoring thresholds and weights")
	cmd.Flags().String("reports", "reports", "Directory for JSON and text score artifacts (empty to skip)")
	cmd.Flags().Bool("diff", false, "Also write per-page diff overlays")
	cmd.Flags().String("history", "", "SQLite file to record run summaries (empty to skip)")
	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	refRoot, candRoot := args[0], args[1]

	all, _ := cmd.Flags().GetBool("all")
	parallel, _ := cmd.Flags().GetInt("parallel")
	workers, _ := cmd.Flags().GetInt("workers")
	scoreConfigPath, _ := cmd.Flags().GetString("score-config")
	reportsDir, _ := cmd.Flags().GetString("reports")
	writeDiffs, _ := cmd.Flags().GetBool("diff")
	historyPath, _ := cmd.Flags().GetString("history")

	scoreCfg, err := config.LoadScoreConfig(scoreConfigPath)
	if err != nil {
		return err
	}

	runner := &benchmark.Runner{
		Config:     scoreCfg,
		Workers:    workers,
		ReportsDir: reportsDir,
		WriteDiffs: writeDiffs,
	}

	if historyPath != "" {
		store, err := history.Open(historyPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.Recorder = store
	}

	docs, err := collectDocuments(refRoot, candRoot, all)
	if err != nil {
		return err
	}

	results := runner.Run(cmd.Context(), docs, parallel)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Document.Name, res.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n%s\n", res.Document.Name, report.FormatScoreText(res.Score))
	}

	if failed > 0 {
		return &ScoreFailureError{Message: fmt.Sprintf("%d of %d documents failed to score", failed, len(docs))}
	}
	return nil
}

// collectDocuments builds the work list. In corpus mode only subdirectories
// present under both roots are scored.
func collectDocuments(refRoot, candRoot string, all bool) ([]benchmark.Document, error) {
	if !all {
		return []benchmark.Document{{
			Name:    filepath.Base(candRoot),
			RefDir:  refRoot,
			CandDir: candRoot,
		}}, nil
	}

	entries, err := os.ReadDir(refRoot)
	if err != nil {
		return nil, fmt.Errorf("read corpus root %s: %w", refRoot, err)
	}

	var docs []benchmark.Document
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candDir := filepath.Join(candRoot, entry.Name())
		if info, err := os.Stat(candDir); err != nil || !info.IsDir() {
			continue
		}
		docs = append(docs, benchmark.Document{
			Name:    entry.Name(),
			RefDir:  filepath.Join(refRoot, entry.Name()),
			CandDir: candDir,
		})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents present under both %s and %s", refRoot, candRoot)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

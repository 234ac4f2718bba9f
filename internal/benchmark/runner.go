package benchmark

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/logger"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/report"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/scoring"
)

// Document names one comparison: a directory of reference renders against a
// directory of candidate renders.
type Document struct {
	Name    string
	RefDir  string
	CandDir string
}

// Result pairs a document with its score, or the error that stopped it.
type Result struct {
	Document Document
	Score    *scoring.DocumentScore
	Err      error
}

// Recorder persists completed run summaries. Satisfied by history.Store.
type Recorder interface {
	Record(ctx context.Context, document string, score *scoring.DocumentScore) error
}

// Runner scores a batch of documents and writes report artifacts.
type Runner struct {
	Config     scoring.Config
	Workers    int
	ReportsDir string

	// WriteDiffs enables per-page diff overlay output alongside the reports.
	WriteDiffs bool

	// Recorder is optional; when set every completed document is stored.
	Recorder Recorder
}

// RunDocument scores one document and writes its artifacts.
func (r *Runner) RunDocument(ctx context.Context, doc Document) (*scoring.DocumentScore, error) {
	refPaths, err := DiscoverPages(doc.RefDir)
	if err != nil {
		return nil, err
	}
	candPaths, err := DiscoverPages(doc.CandDir)
	if err != nil {
		return nil, err
	}

	refPaths, candPaths, missing := PairPages(refPaths, candPaths)
	if missing > 0 {
		logger.WithDocument(doc.Name).WithField("missing_pages", missing).
			Warn("Page count mismatch, scoring the common prefix")
	}

	score, err := scoring.ScoreDocumentFiles(refPaths, candPaths, r.Config, r.Workers)
	if err != nil {
		return nil, err
	}

	if r.ReportsDir != "" {
		base := filepath.Join(r.ReportsDir, doc.Name)
		if err := report.WriteJSON(score, base+".json"); err != nil {
			return nil, err
		}
		if err := report.WriteText(score, base+".txt"); err != nil {
			return nil, err
		}
		if r.WriteDiffs {
			if err := r.writeDiffs(doc, refPaths, candPaths); err != nil {
				return nil, err
			}
		}
	}

	if r.Recorder != nil {
		if err := r.Recorder.Record(ctx, doc.Name, score); err != nil {
			logger.WithDocument(doc.Name).WithError(err).Warn("Failed to record run history")
		}
	}

	logger.WithDocument(doc.Name).WithFields(logrus.Fields{
		"pages":         score.PageCount,
		"overall_score": score.OverallScore,
		"min_score":     score.MinScore,
	}).Info("Document scored")

	return score, nil
}

func (r *Runner) writeDiffs(doc Document, refPaths, candPaths []string) error {
	diffDir := filepath.Join(r.ReportsDir, doc.Name+"-diff")
	for i := range refPaths {
		out := filepath.Join(diffDir, fmt.Sprintf("page_%04d.png", i+1))
		if err := report.WriteDiffOverlay(refPaths[i], candPaths[i], out); err != nil {
			return err
		}
	}
	return nil
}

// Run scores every document, at most parallel at a time. Failures are
// collected per document rather than aborting the batch.
func (r *Runner) Run(ctx context.Context, docs []Document, parallel int) []Result {
	if parallel <= 0 {
		parallel = 1
	}

	results := make([]Result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			score, err := r.RunDocument(gctx, doc)
			if err != nil {
				logger.WithDocument(doc.Name).WithError(err).Error("Document scoring failed")
			}
			results[i] = Result{Document: doc, Score: score, Err: err}
			return nil
		})
	}
	g.Wait()

	return results
}

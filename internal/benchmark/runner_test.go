package benchmark

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/scoring"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

type recorderStub struct {
	documents []string
	err       error
}

func (r *recorderStub) Record(_ context.Context, document string, _ *scoring.DocumentScore) error {
	r.documents = append(r.documents, document)
	return r.err
}

func renderedPage(w, h int) *imaging.RGB {
	img := imaging.NewRGBFilled(w, h, 1.0)
	for y := 20; y < 26; y++ {
		for x := 10; x < 70; x++ {
			img.Set(x, y, 0, 0, 0)
		}
	}
	return img
}

func writeDocument(t *testing.T, dir string, pages int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	img := renderedPage(80, 60)
	for i := 1; i <= pages; i++ {
		name := filepath.Join(dir, "page_000"+string(rune('0'+i))+".png")
		require.NoError(t, imaging.SavePNG(name, img.ToImage()))
	}
}

func TestRunDocumentIdenticalRenders(t *testing.T) {
	root := t.TempDir()
	refDir := filepath.Join(root, "ref")
	candDir := filepath.Join(root, "cand")
	writeDocument(t, refDir, 2)
	writeDocument(t, candDir, 2)

	rec := &recorderStub{}
	runner := &Runner{
		Config:     scoring.DefaultConfig(),
		Workers:    2,
		ReportsDir: filepath.Join(root, "reports"),
		Recorder:   rec,
	}

	score, err := runner.RunDocument(context.Background(), Document{
		Name: "sample", RefDir: refDir, CandDir: candDir,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, score.PageCount)
	assert.Greater(t, score.OverallScore, 99.0)
	assert.Equal(t, []string{"sample"}, rec.documents)

	assert.FileExists(t, filepath.Join(root, "reports", "sample.json"))
	assert.FileExists(t, filepath.Join(root, "reports", "sample.txt"))
}

func TestRunDocumentRecorderFailureIsNotFatal(t *testing.T) {
	root := t.TempDir()
	refDir := filepath.Join(root, "ref")
	candDir := filepath.Join(root, "cand")
	writeDocument(t, refDir, 1)
	writeDocument(t, candDir, 1)

	rec := &recorderStub{err: errors.New("history store unavailable")}
	runner := &Runner{
		Config:   scoring.DefaultConfig(),
		Recorder: rec,
	}

	score, err := runner.RunDocument(context.Background(), Document{
		Name: "sample", RefDir: refDir, CandDir: candDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, score.PageCount)
	assert.Equal(t, []string{"sample"}, rec.documents)
}

func TestRunDocumentMissingCandidateDir(t *testing.T) {
	root := t.TempDir()
	refDir := filepath.Join(root, "ref")
	writeDocument(t, refDir, 1)

	runner := &Runner{Config: scoring.DefaultConfig()}
	_, err := runner.RunDocument(context.Background(), Document{
		Name: "broken", RefDir: refDir, CandDir: filepath.Join(root, "absent"),
	})
	assert.Error(t, err)
}

func TestRunCollectsPerDocumentFailures(t *testing.T) {
	root := t.TempDir()
	refDir := filepath.Join(root, "ref")
	candDir := filepath.Join(root, "cand")
	writeDocument(t, refDir, 1)
	writeDocument(t, candDir, 1)

	runner := &Runner{Config: scoring.DefaultConfig()}
	results := runner.Run(context.Background(), []Document{
		{Name: "good", RefDir: refDir, CandDir: candDir},
		{Name: "bad", RefDir: refDir, CandDir: filepath.Join(root, "absent")},
	}, 2)

	require.Len(t, results, 2)
	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Document.Name] = r
	}
	assert.NoError(t, byName["good"].Err)
	assert.NotNil(t, byName["good"].Score)
	assert.Error(t, byName["bad"].Err)
}

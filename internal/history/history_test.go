package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleScore(overall float64) *scoring.DocumentScore {
	return &scoring.DocumentScore{
		OverallScore:       overall,
		OverallScoreStrict: overall - 5,
		OverallScoreDrift:  overall + 2,
		MinScore:           overall - 10,
		PageCount:          3,
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "invoice", sampleScore(80)))
	require.NoError(t, store.Record(ctx, "invoice", sampleScore(85)))
	require.NoError(t, store.Record(ctx, "contract", sampleScore(60)))

	runs, err := store.Recent(ctx, "invoice", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, 85.0, runs[0].OverallScore)
	assert.Equal(t, 80.0, runs[1].OverallScore)
	assert.Equal(t, "invoice", runs[0].Document)
	assert.Equal(t, 3, runs[0].PageCount)
	assert.Equal(t, 87.0, runs[0].DriftScore)
}

func TestRecentAllDocuments(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "a", sampleScore(70)))
	require.NoError(t, store.Record(ctx, "b", sampleScore(90)))

	runs, err := store.Recent(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, "doc", sampleScore(float64(50+i))))
	}

	runs, err := store.Recent(ctx, "doc", 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Equal(t, 54.0, runs[0].OverallScore)
}

func TestRecentEmptyStore(t *testing.T) {
	store := openTestStore(t)
	runs, err := store.Recent(context.Background(), "nothing", 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenTwiceReusesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Record(context.Background(), "doc", sampleScore(75)))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	runs, err := second.Recent(context.Background(), "doc", 5)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

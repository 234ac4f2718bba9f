package benchmark

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

func writePages(t *testing.T, dir string, names ...string) {
	t.Helper()
	img := imaging.NewRGBFilled(10, 10, 1.0)
	for _, name := range names {
		require.NoError(t, imaging.SavePNG(filepath.Join(dir, name), img.ToImage()))
	}
}

func TestDiscoverPagesSorted(t *testing.T) {
	dir := t.TempDir()
	writePages(t, dir, "page_0002.png", "page_0010.png", "page_0001.png", "notes.txt.png")

	pages, err := DiscoverPages(dir)
	require.NoError(t, err)

	require.Len(t, pages, 3)
	assert.Equal(t, "page_0001.png", filepath.Base(pages[0]))
	assert.Equal(t, "page_0002.png", filepath.Base(pages[1]))
	assert.Equal(t, "page_0010.png", filepath.Base(pages[2]))
}

func TestDiscoverPagesEmptyDir(t *testing.T) {
	_, err := DiscoverPages(t.TempDir())
	assert.Error(t, err)
}

func TestPairPagesTruncates(t *testing.T) {
	refs := []string{"a", "b", "c"}
	cands := []string{"x", "y"}

	r, c, missing := PairPages(refs, cands)
	assert.Equal(t, []string{"a", "b"}, r)
	assert.Equal(t, []string{"x", "y"}, c)
	assert.Equal(t, 1, missing)
}

func TestPairPagesEqualLengths(t *testing.T) {
	refs := []string{"a", "b"}
	cands := []string{"x", "y"}

	r, c, missing := PairPages(refs, cands)
	assert.Len(t, r, 2)
	assert.Len(t, c, 2)
	assert.Zero(t, missing)
}

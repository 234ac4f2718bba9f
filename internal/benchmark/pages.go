// Package benchmark runs document render comparisons end to end: page
// discovery, scoring, artifact output and history recording.
package benchmark

import (
	"fmt"
	"path/filepath"
	"sort"

	apperrors "github.com/superdoc-dev/superdoc-visual-benchmarks/internal/errors"
)

// DiscoverPages lists page_*.png renders in dir, sorted by name so page order
// matches the capture sequence.
func DiscoverPages(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "page_*.png"))
	if err != nil {
		return nil, apperrors.NewLoadError(fmt.Sprintf("listing pages in %s", dir), err)
	}
	if len(matches) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no page renders found in %s", dir), nil)
	}
	sort.Strings(matches)
	return matches, nil
}

// PairPages matches reference and candidate renders positionally, truncating
// to the shorter list. Missing trailing pages are reported so the caller can
// surface the mismatch.
func PairPages(refPaths, candPaths []string) (refs, cands []string, missing int) {
	n := len(refPaths)
	if len(candPaths) < n {
		n = len(candPaths)
	}
	missing = len(refPaths) - n
	if len(candPaths)-n > missing {
		missing = len(candPaths) - n
	}
	return refPaths[:n], candPaths[:n], missing
}

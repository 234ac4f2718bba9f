package scoring

import (
	"errors"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// ErrNoPages is returned when a document has no page pairs to score.
var ErrNoPages = errors.New("no pages available for scoring")

// DocumentScore aggregates the per-page metrics of one document. The
// overall score blends the ink-weighted average with the worst page so a
// single broken page is not hidden by an otherwise good document.
type DocumentScore struct {
	OverallScore       float64 `json:"overall_score"`
	OverallScoreStrict float64 `json:"overall_score_strict"`
	OverallScoreDrift  float64 `json:"overall_score_drift"`

	PageCount int `json:"page_count"`

	AverageScore       float64 `json:"average_score"`
	AverageScoreStrict float64 `json:"average_score_strict"`
	AverageScoreDrift  float64 `json:"average_score_drift"`

	MinScore       float64 `json:"min_score"`
	MinScoreStrict float64 `json:"min_score_strict"`
	MinScoreDrift  float64 `json:"min_score_drift"`

	Pages []PageMetrics `json:"pages"`

	// Config echoes the thresholds the run used, with normalized weights,
	// so a stored artifact is self-describing.
	Config Config `json:"config"`
}

const (
	averageBlendWeight = 0.7
	minBlendWeight     = 0.3
)

// Aggregate combines per-page metrics into a DocumentScore. Page weight is
// max(ink area, 1): content-heavy pages dominate the average, while blank
// pages keep a floor weight instead of vanishing.
func Aggregate(pages []PageMetrics, cfg Config) (*DocumentScore, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	var (
		totalWeight float64
		sumCombined float64
		sumStrict   float64
		sumDrift    float64
	)
	minCombined := pages[0].Score
	minStrict := pages[0].ScoreStrict
	minDrift := pages[0].ScoreDrift

	for _, p := range pages {
		w := float64(maxInt(p.InkArea, 1))
		totalWeight += w
		sumCombined += p.Score * w
		sumStrict += p.ScoreStrict * w
		sumDrift += p.ScoreDrift * w

		if p.Score < minCombined {
			minCombined = p.Score
		}
		if p.ScoreStrict < minStrict {
			minStrict = p.ScoreStrict
		}
		if p.ScoreDrift < minDrift {
			minDrift = p.ScoreDrift
		}
	}

	avgCombined := sumCombined / totalWeight
	avgStrict := sumStrict / totalWeight
	avgDrift := sumDrift / totalWeight

	echo := cfg
	echo.Weights = cfg.Weights.Normalized()

	return &DocumentScore{
		OverallScore:       averageBlendWeight*avgCombined + minBlendWeight*minCombined,
		OverallScoreStrict: averageBlendWeight*avgStrict + minBlendWeight*minStrict,
		OverallScoreDrift:  averageBlendWeight*avgDrift + minBlendWeight*minDrift,
		PageCount:          len(pages),
		AverageScore:       avgCombined,
		AverageScoreStrict: avgStrict,
		AverageScoreDrift:  avgDrift,
		MinScore:           minCombined,
		MinScoreStrict:     minStrict,
		MinScoreDrift:      minDrift,
		Pages:              pages,
		Config:             echo,
	}, nil
}

// ScoreDocumentImages scores already-loaded page pairs. Candidates are
// resized to their reference's grid first. Pages are scored concurrently;
// workers <= 0 uses the CPU count.
func ScoreDocumentImages(refs, cands []*imaging.RGB, cfg Config, workers int) (*DocumentScore, error) {
	n := minInt(len(refs), len(cands))
	if n == 0 {
		return nil, ErrNoPages
	}

	pages := make([]PageMetrics, n)
	pool := NewWorkerPool(workers)
	pool.Start()
	defer pool.Close()

	for i := 0; i < n; i++ {
		idx := i
		ref := refs[idx]
		cand := imaging.ResizeToMatch(ref, cands[idx])
		pool.Submit(func() {
			pm := ScorePage(ref, cand, cfg)
			pm.Page = idx + 1
			pages[idx] = pm
		})
	}
	pool.Wait()

	return Aggregate(pages, cfg)
}

// ScoreDocumentFiles loads the page image pairs from disk and scores them.
// Pages beyond the shorter sequence are not scored here; missing-page
// policy belongs to the caller.
func ScoreDocumentFiles(refPaths, candPaths []string, cfg Config, workers int) (*DocumentScore, error) {
	n := minInt(len(refPaths), len(candPaths))
	if n == 0 {
		return nil, ErrNoPages
	}

	refs := make([]*imaging.RGB, n)
	cands := make([]*imaging.RGB, n)
	for i := 0; i < n; i++ {
		ref, err := imaging.Load(refPaths[i])
		if err != nil {
			return nil, err
		}
		cand, err := imaging.Load(candPaths[i])
		if err != nil {
			return nil, err
		}
		refs[i] = ref
		cands[i] = cand
	}
	return ScoreDocumentImages(refs, cands, cfg, workers)
}

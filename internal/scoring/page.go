package scoring

import (
	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// PageMetrics is the immutable scoring record for one page pair. The
// strict sub-metrics describe the aligned candidate; the Drift* variants
// describe the drift-corrected candidate (identical to strict when no
// drift correction was applied). Field names are a persisted contract:
// external reporting parses this JSON.
type PageMetrics struct {
	Page               int     `json:"page"`
	Score              float64 `json:"score"`
	ScoreStrict        float64 `json:"score_strict"`
	ScoreDrift         float64 `json:"score_drift"`
	SingleIssueApplied bool    `json:"single_issue_applied"`
	DriftApplied       bool    `json:"drift_applied"`
	DriftStrengthPx    float64 `json:"drift_strength_px"`

	SSIMFull    float64 `json:"ssim_full"`
	SSIMSmall   float64 `json:"ssim_small"`
	InkF1       float64 `json:"ink_f1"`
	EdgeIoU     float64 `json:"edge_iou"`
	ColorSim    float64 `json:"color_sim"`
	DeltaE      float64 `json:"delta_e"`
	BlobPenalty float64 `json:"blob_penalty"`
	InkArea     int     `json:"ink_area"`

	DriftSSIMFull    float64 `json:"drift_ssim_full"`
	DriftSSIMSmall   float64 `json:"drift_ssim_small"`
	DriftInkF1       float64 `json:"drift_ink_f1"`
	DriftEdgeIoU     float64 `json:"drift_edge_iou"`
	DriftColorSim    float64 `json:"drift_color_sim"`
	DriftDeltaE      float64 `json:"drift_delta_e"`
	DriftBlobPenalty float64 `json:"drift_blob_penalty"`
}

// ScorePage grades one candidate page against its reference. Both images
// must already be on the same pixel grid (see imaging.ResizeToMatch).
//
// The strict pass scores the phase-aligned candidate as-is. When the ink
// CDF mapping detects systematic vertical drift, a second pass re-scores
// the row-warped candidate; if the gain is large, the drift is real, and
// the warped page is otherwise clean, the deficit is treated as one
// root-cause layout issue and the page earns capped partial credit on top
// of its strict score. Drift correction never replaces the strict score
// outright, so the defect stays visible.
func ScorePage(ref, cand *imaging.RGB, cfg Config) PageMetrics {
	refGray := ref.Gray()
	candGray := cand.Gray()

	aligned := AlignCandidate(refGray, candGray, cand, cfg)
	strict := computeMetrics(ref, aligned, cfg)

	inkRef := InkMask(refGray, cfg.InkMinSize)
	inkCand := InkMask(aligned.Gray(), cfg.InkMinSize)

	drift := strict
	driftApplied := false
	mapY, driftStrength, ok := verticalInkMap(inkRef, inkCand, cfg)
	if ok {
		warped := applyVerticalMap(aligned, mapY)
		drift = computeMetrics(ref, warped, cfg)
		driftApplied = true
	}

	improvement := drift.Score - strict.Score
	singleIssue := driftApplied &&
		improvement >= cfg.SingleIssueMinGain &&
		driftStrength >= cfg.MinDriftPx &&
		drift.SSIMSmall >= cfg.SingleIssueMinSSIMSmall &&
		drift.InkF1 >= cfg.SingleIssueMinInkF1 &&
		drift.EdgeIoU >= cfg.SingleIssueMinEdgeIoU &&
		drift.BlobPenalty <= cfg.SingleIssueMaxBlobPenalty

	combined := strict.Score
	if singleIssue {
		combined += minFloat(cfg.SingleIssueCap, improvement)
	}

	return PageMetrics{
		Score:              combined,
		ScoreStrict:        strict.Score,
		ScoreDrift:         drift.Score,
		SingleIssueApplied: singleIssue,
		DriftApplied:       driftApplied,
		DriftStrengthPx:    driftStrength,

		SSIMFull:    strict.SSIMFull,
		SSIMSmall:   strict.SSIMSmall,
		InkF1:       strict.InkF1,
		EdgeIoU:     strict.EdgeIoU,
		ColorSim:    strict.ColorSim,
		DeltaE:      strict.DeltaE,
		BlobPenalty: strict.BlobPenalty,
		InkArea:     strict.InkArea,

		DriftSSIMFull:    drift.SSIMFull,
		DriftSSIMSmall:   drift.SSIMSmall,
		DriftInkF1:       drift.InkF1,
		DriftEdgeIoU:     drift.EdgeIoU,
		DriftColorSim:    drift.ColorSim,
		DriftDeltaE:      drift.DeltaE,
		DriftBlobPenalty: drift.BlobPenalty,
	}
}

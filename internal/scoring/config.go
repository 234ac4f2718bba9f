// Package scoring implements the visual similarity scorer that grades a
// candidate page render against its reference render. A page is scored in
// two passes: a strict pass on the aligned candidate, and a drift-corrected
// pass that may grant bounded single-issue credit when the whole deficit is
// attributable to systematic vertical drift.
package scoring

// Config bundles every tunable threshold of the scorer. It is created once
// per run and passed by value; nothing in the pipeline mutates it.
type Config struct {
	// Alignment: shifts larger than MaxShiftPx on either axis are layout
	// differences, not rendering jitter, and are left uncorrected.
	MaxShiftPx    float64 `json:"max_shift_px" yaml:"max_shift_px"`
	AlignUpsample int     `json:"align_upsample" yaml:"align_upsample"`

	// Metrics.
	DownscaleFactor float64 `json:"downscale_factor" yaml:"downscale_factor"`
	EdgeSigma       float64 `json:"edge_sigma" yaml:"edge_sigma"`
	EdgeDilate      int     `json:"edge_dilate" yaml:"edge_dilate"`
	InkMinSize      int     `json:"ink_min_size" yaml:"ink_min_size"`
	InkTolPx        float64 `json:"ink_tol_px" yaml:"ink_tol_px"`

	// Vertical drift detection.
	DriftSigma float64 `json:"drift_sigma" yaml:"drift_sigma"`
	MinDriftPx float64 `json:"min_drift_px" yaml:"min_drift_px"`

	// Single-issue credit gates.
	SingleIssueCap            float64 `json:"single_issue_cap" yaml:"single_issue_cap"`
	SingleIssueMinGain        float64 `json:"single_issue_min_gain" yaml:"single_issue_min_gain"`
	SingleIssueMinSSIMSmall   float64 `json:"single_issue_min_ssim_small" yaml:"single_issue_min_ssim_small"`
	SingleIssueMinInkF1       float64 `json:"single_issue_min_ink_f1" yaml:"single_issue_min_ink_f1"`
	SingleIssueMinEdgeIoU     float64 `json:"single_issue_min_edge_iou" yaml:"single_issue_min_edge_iou"`
	SingleIssueMaxBlobPenalty float64 `json:"single_issue_max_blob_penalty" yaml:"single_issue_max_blob_penalty"`

	ColorDeltaEMax float64 `json:"color_deltaE_max" yaml:"color_deltaE_max"`
	BlobMinSize    int     `json:"blob_min_size" yaml:"blob_min_size"`

	Weights Weights `json:"weights" yaml:"weights"`
}

// DefaultConfig returns the calibrated production thresholds.
func DefaultConfig() Config {
	return Config{
		MaxShiftPx:                5.0,
		AlignUpsample:             10,
		DownscaleFactor:           0.25,
		EdgeSigma:                 1.2,
		EdgeDilate:                1,
		InkMinSize:                24,
		InkTolPx:                  2.0,
		DriftSigma:                2.0,
		MinDriftPx:                1.0,
		SingleIssueCap:            30.0,
		SingleIssueMinGain:        15.0,
		SingleIssueMinSSIMSmall:   0.7,
		SingleIssueMinInkF1:       0.65,
		SingleIssueMinEdgeIoU:     0.5,
		SingleIssueMaxBlobPenalty: 0.03,
		ColorDeltaEMax:            20.0,
		BlobMinSize:               40,
		Weights:                   DefaultWeights(),
	}
}

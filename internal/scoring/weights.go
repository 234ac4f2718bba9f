package scoring

// Weights holds the relative weight of each sub-metric in the combined
// page score. Weights are renormalized to sum to 1.0 before use.
type Weights struct {
	SSIMFull  float64 `json:"ssim_full" yaml:"ssim_full"`
	SSIMSmall float64 `json:"ssim_small" yaml:"ssim_small"`
	InkF1     float64 `json:"ink_f1" yaml:"ink_f1"`
	EdgeIoU   float64 `json:"edge_iou" yaml:"edge_iou"`
	ColorSim  float64 `json:"color_sim" yaml:"color_sim"`
	BlobSim   float64 `json:"blob_sim" yaml:"blob_sim"`
}

// DefaultWeights returns the calibrated production weighting.
func DefaultWeights() Weights {
	return Weights{
		SSIMFull:  0.25,
		SSIMSmall: 0.15,
		InkF1:     0.20,
		EdgeIoU:   0.15,
		ColorSim:  0.15,
		BlobSim:   0.10,
	}
}

func (w Weights) sum() float64 {
	return w.SSIMFull + w.SSIMSmall + w.InkF1 + w.EdgeIoU + w.ColorSim + w.BlobSim
}

// Normalized returns a copy scaled so the weights sum to 1.0. An all-zero
// set is returned unchanged; that is a caller error, not a panic.
func (w Weights) Normalized() Weights {
	total := w.sum()
	if total <= 0 {
		return w
	}
	s := 1.0 / total
	return Weights{
		SSIMFull:  w.SSIMFull * s,
		SSIMSmall: w.SSIMSmall * s,
		InkF1:     w.InkF1 * s,
		EdgeIoU:   w.EdgeIoU * s,
		ColorSim:  w.ColorSim * s,
		BlobSim:   w.BlobSim * s,
	}
}

package scoring

import (
	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// Metrics holds the six sub-metric values computed for one page pair, the
// combined weighted score on the 0-100 scale, and the raw quantities
// downstream reporting needs.
type Metrics struct {
	Score       float64
	SSIMFull    float64
	SSIMSmall   float64
	InkF1       float64
	EdgeIoU     float64
	ColorSim    float64
	DeltaE      float64
	BlobPenalty float64
	InkArea     int
}

// computeMetrics is the single source of truth for "how similar are these
// two same-size pages". It is stateless; both the strict and the
// drift-corrected pass call it.
func computeMetrics(ref, cand *imaging.RGB, cfg Config) Metrics {
	refGray := ref.Gray()
	candGray := cand.Gray()

	inkRef := InkMask(refGray, cfg.InkMinSize)
	inkCand := InkMask(candGray, cfg.InkMinSize)
	inkUnion := Union(inkRef, inkCand)

	ssimFull := ssim(refGray, candGray)

	ssimSmall := ssimFull
	if cfg.DownscaleFactor < 1.0 {
		sw := maxInt(1, int(float64(refGray.W)*cfg.DownscaleFactor))
		sh := maxInt(1, int(float64(refGray.H)*cfg.DownscaleFactor))
		ssimSmall = ssim(refGray.Resize(sw, sh), candGray.Resize(sw, sh))
	}

	inkF1 := f1WithTolerance(inkRef, inkCand, cfg.InkTolPx)

	edgeRef := EdgeMask(refGray, cfg.EdgeSigma)
	edgeCand := EdgeMask(candGray, cfg.EdgeSigma)
	iou := edgeIoU(edgeRef, edgeCand, cfg.EdgeDilate)

	mismatch := Xor(inkRef, inkCand)
	penalty := blobPenalty(mismatch, inkUnion, cfg.BlobMinSize)

	deltaE := meanDeltaE(ref, cand, inkUnion)
	colorSim := 1.0 - minFloat(deltaE/cfg.ColorDeltaEMax, 1.0)

	m := Metrics{
		SSIMFull:    clamp01(ssimFull),
		SSIMSmall:   clamp01(ssimSmall),
		InkF1:       clamp01(inkF1),
		EdgeIoU:     clamp01(iou),
		ColorSim:    clamp01(colorSim),
		DeltaE:      deltaE,
		BlobPenalty: penalty,
		InkArea:     inkUnion.Count(),
	}

	w := cfg.Weights.Normalized()
	m.Score = 100.0 * (w.SSIMFull*m.SSIMFull +
		w.SSIMSmall*m.SSIMSmall +
		w.InkF1*m.InkF1 +
		w.EdgeIoU*m.EdgeIoU +
		w.ColorSim*m.ColorSim +
		w.BlobSim*clamp01(1.0-m.BlobPenalty))
	return m
}

// f1WithTolerance scores the overlap of two ink masks, counting a pixel as
// matched when the other mask has ink within tol pixels (Euclidean). Two
// empty masks are trivially identical; exactly one empty is a total miss.
func f1WithTolerance(a, b *Mask, tol float64) float64 {
	na, nb := a.Count(), b.Count()
	if na == 0 && nb == 0 {
		return 1.0
	}
	if na == 0 || nb == 0 {
		return 0.0
	}

	dtB := distanceTransform(b)
	dtA := distanceTransform(a)

	matchA, matchB := 0, 0
	for i := range a.Bits {
		if a.Bits[i] && dtB[i] <= tol {
			matchA++
		}
		if b.Bits[i] && dtA[i] <= tol {
			matchB++
		}
	}

	recall := float64(matchA) / float64(na)
	precision := float64(matchB) / float64(nb)
	if precision+recall == 0 {
		return 0.0
	}
	return 2 * precision * recall / (precision + recall)
}

// edgeIoU computes intersection-over-union of two edge masks after an
// optional dilation that forgives one pixel of edge jitter.
func edgeIoU(a, b *Mask, dilateRadius int) float64 {
	if a.Count() == 0 && b.Count() == 0 {
		return 1.0
	}
	if dilateRadius > 0 {
		a = dilate(a, dilateRadius)
		b = dilate(b, dilateRadius)
	}
	inter, union := 0, 0
	for i := range a.Bits {
		if a.Bits[i] && b.Bits[i] {
			inter++
		}
		if a.Bits[i] || b.Bits[i] {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

// blobPenalty measures the largest contiguous mismatched region as a
// fraction of the ink union. A single concentrated blob (a missing image,
// a dropped table) is a worse sign than the same area of scattered noise.
func blobPenalty(mismatch, inkUnion *Mask, minSize int) float64 {
	m := mismatch.Clone()
	removeSmallObjects(m, minSize)

	unionArea := inkUnion.Count()
	if m.Count() == 0 || unionArea == 0 {
		return 0.0
	}

	_, areas := labelComponents(m)
	largest := 0
	for _, a := range areas {
		if a > largest {
			largest = a
		}
	}
	return minFloat(1.0, float64(largest)/float64(unionArea))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

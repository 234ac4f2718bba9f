package scoring

import (
	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// otsuCap bounds the Otsu threshold. Document pages are mostly white, and
// on a near-blank page an unconstrained Otsu split can land inside the
// background noise and classify half the paper as ink.
const otsuCap = 0.95

// otsuThreshold computes the Otsu threshold of a grayscale image over a
// 256-bin histogram spanning the sample range. A constant image has no
// bimodal split; it reports ok=false and the caller falls back to the cap.
func otsuThreshold(g *imaging.Gray) (float64, bool) {
	lo, hi := g.Pix[0], g.Pix[0]
	for _, v := range g.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return 0, false
	}

	const nbins = 256
	var counts [nbins]float64
	width := (hi - lo) / nbins
	for _, v := range g.Pix {
		b := int((v - lo) / width)
		if b >= nbins {
			b = nbins - 1
		}
		counts[b]++
	}

	var centers [nbins]float64
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*width
	}

	total := float64(len(g.Pix))
	sumAll := 0.0
	for i := range counts {
		sumAll += counts[i] * centers[i]
	}

	var (
		w1, sum1  float64
		bestVar   = -1.0
		threshold = centers[0]
	)
	for i := 0; i < nbins-1; i++ {
		w1 += counts[i]
		sum1 += counts[i] * centers[i]
		w2 := total - w1
		if w1 == 0 || w2 == 0 {
			continue
		}
		m1 := sum1 / w1
		m2 := (sumAll - sum1) / w2
		between := w1 * w2 * (m1 - m2) * (m1 - m2)
		if between > bestVar {
			bestVar = between
			threshold = centers[i]
		}
	}
	return threshold, true
}

// InkMask classifies foreground (dark) content: pixels darker than the
// capped Otsu threshold, with connected components smaller than minSize
// removed.
func InkMask(g *imaging.Gray, minSize int) *Mask {
	thr, ok := otsuThreshold(g)
	if !ok || thr > otsuCap {
		thr = otsuCap
	}

	m := NewMask(g.W, g.H)
	for i, v := range g.Pix {
		m.Bits[i] = v < thr
	}
	removeSmallObjects(m, minSize)
	return m
}

// rowProjection sums the ink pixels of each row.
func rowProjection(m *Mask) []float64 {
	proj := make([]float64, m.H)
	for y := 0; y < m.H; y++ {
		row := m.Bits[y*m.W : (y+1)*m.W]
		n := 0.0
		for _, b := range row {
			if b {
				n++
			}
		}
		proj[y] = n
	}
	return proj
}

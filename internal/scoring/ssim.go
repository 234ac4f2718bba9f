package scoring

import (
	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// SSIM parameters for unit-range input: uniform 7x7 window, standard
// stabilizing constants.
const (
	ssimWindow = 7
	ssimK1     = 0.01
	ssimK2     = 0.03
)

// ssim computes the mean structural similarity index of two same-size
// grayscale images over a sliding uniform window, with the window-radius
// border cropped from the mean. Local variances use the sample estimator
// (N/(N-1)).
func ssim(a, b *imaging.Gray) float64 {
	w, h := a.W, a.H
	win := ssimWindow
	if m := minInt(w, h); win > m {
		// Tiny downscaled pages: shrink to the largest odd window that fits.
		win = m
		if win%2 == 0 {
			win--
		}
		if win < 1 {
			return 1.0
		}
	}
	pad := win / 2

	sumA := integralImage(a.Pix, w, h)
	sumB := integralImage(b.Pix, w, h)
	sumAA := integralImageProduct(a.Pix, a.Pix, w, h)
	sumBB := integralImageProduct(b.Pix, b.Pix, w, h)
	sumAB := integralImageProduct(a.Pix, b.Pix, w, h)

	np := float64(win * win)
	covNorm := np / (np - 1)
	if np <= 1 {
		covNorm = 1
	}
	c1 := ssimK1 * ssimK1
	c2 := ssimK2 * ssimK2

	total := 0.0
	count := 0
	for y := pad; y < h-pad; y++ {
		for x := pad; x < w-pad; x++ {
			x0, y0 := x-pad, y-pad
			x1, y1 := x+pad+1, y+pad+1

			ux := windowSum(sumA, w, x0, y0, x1, y1) / np
			uy := windowSum(sumB, w, x0, y0, x1, y1) / np
			uxx := windowSum(sumAA, w, x0, y0, x1, y1) / np
			uyy := windowSum(sumBB, w, x0, y0, x1, y1) / np
			uxy := windowSum(sumAB, w, x0, y0, x1, y1) / np

			vx := covNorm * (uxx - ux*ux)
			vy := covNorm * (uyy - uy*uy)
			vxy := covNorm * (uxy - ux*uy)

			s := ((2*ux*uy + c1) * (2*vxy + c2)) /
				((ux*ux + uy*uy + c1) * (vx + vy + c2))
			total += s
			count++
		}
	}
	if count == 0 {
		return 1.0
	}
	return total / float64(count)
}

// integralImage builds a summed-area table with a zero top row and left
// column, so window sums need no boundary checks.
func integralImage(pix []float64, w, h int) []float64 {
	s := make([]float64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		rowSum := 0.0
		for x := 0; x < w; x++ {
			rowSum += pix[y*w+x]
			s[(y+1)*(w+1)+x+1] = s[y*(w+1)+x+1] + rowSum
		}
	}
	return s
}

func integralImageProduct(a, b []float64, w, h int) []float64 {
	s := make([]float64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		rowSum := 0.0
		for x := 0; x < w; x++ {
			rowSum += a[y*w+x] * b[y*w+x]
			s[(y+1)*(w+1)+x+1] = s[y*(w+1)+x+1] + rowSum
		}
	}
	return s
}

// windowSum returns the sum over the half-open window [x0,x1)x[y0,y1).
func windowSum(s []float64, w, x0, y0, x1, y1 int) float64 {
	sw := w + 1
	return s[y1*sw+x1] - s[y0*sw+x1] - s[y1*sw+x0] + s[y0*sw+x0]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

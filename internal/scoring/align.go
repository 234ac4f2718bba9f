package scoring

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// AlignCandidate estimates the global sub-pixel translation between the
// reference and candidate grayscale images by phase correlation and, when
// the shift is within the correctable bound, warps the candidate RGB image
// to cancel it. Shifts beyond MaxShiftPx on either axis indicate a real
// layout difference and the candidate is returned unchanged; hiding them
// would mask the defect the scorer exists to find.
func AlignCandidate(refGray, candGray *imaging.Gray, candRGB *imaging.RGB, cfg Config) *imaging.RGB {
	dy, dx := phaseCorrelation(refGray, candGray, cfg.AlignUpsample)
	if math.Abs(dx) > cfg.MaxShiftPx || math.Abs(dy) > cfg.MaxShiftPx {
		return candRGB
	}
	return translateBilinear(candRGB, dy, dx)
}

// phaseCorrelation returns the (dy, dx) shift that registers the candidate
// onto the reference: ref(y, x) ~= cand(y-dy, x-dx). Precision is roughly
// 1/upsample pixels, refined around the coarse peak with a matrix-multiply
// DFT so the full correlation surface is never upsampled.
func phaseCorrelation(ref, cand *imaging.Gray, upsample int) (dy, dx float64) {
	w, h := ref.W, ref.H
	n := w * h

	fRef := toComplex(ref.Pix)
	fCand := toComplex(cand.Pix)
	fft2(fRef, w, h, false)
	fft2(fCand, w, h, false)

	// Normalized cross-power spectrum: keep phase, drop magnitude.
	cross := make([]complex128, n)
	const tiny = 1e-12
	for i := range cross {
		c := fRef[i] * cmplx.Conj(fCand[i])
		if m := cmplx.Abs(c); m > tiny {
			c /= complex(m, 0)
		}
		cross[i] = c
	}

	corr := make([]complex128, n)
	copy(corr, cross)
	fft2(corr, w, h, true)

	peak := 0
	best := 0.0
	for i, c := range corr {
		if m := cmplx.Abs(c); m > best {
			best = m
			peak = i
		}
	}
	py, px := peak/w, peak%w
	dy = wrapShift(py, h)
	dx = wrapShift(px, w)

	if upsample <= 1 {
		return dy, dx
	}

	// Sub-pixel refinement (Guizar-Sicairos): evaluate an upsampled inverse
	// DFT of the cross-power spectrum on a small grid around the estimate.
	uf := float64(upsample)
	dy = math.Round(dy*uf) / uf
	dx = math.Round(dx*uf) / uf
	region := int(math.Ceil(uf * 1.5))
	shift := math.Trunc(float64(region) / 2)
	offY := shift - dy*uf
	offX := shift - dx*uf

	local := upsampledDFT(cross, w, h, region, region, uf, offX, offY)

	// Content that is constant along an axis leaves the refined surface flat
	// along that axis. Ties resolve toward the grid center, which keeps the
	// coarse estimate unchanged instead of drifting to a corner.
	center := int(shift)
	peak = center*region + center
	best = cmplx.Abs(local[peak])
	bestDist := 0
	for i, c := range local {
		m := cmplx.Abs(c)
		iy, ix := i/region, i%region
		d := (iy-center)*(iy-center) + (ix-center)*(ix-center)
		switch {
		case m > best*(1+1e-12):
			best, bestDist, peak = m, d, i
		case m >= best*(1-1e-12) && d < bestDist:
			best, bestDist, peak = m, d, i
		}
	}
	dy += (float64(peak/region) - shift) / uf
	dx += (float64(peak%region) - shift) / uf
	return dy, dx
}

// toComplex widens a real sample plane for the FFT.
func toComplex(pix []float64) []complex128 {
	out := make([]complex128, len(pix))
	for i, v := range pix {
		out[i] = complex(v, 0)
	}
	return out
}

// fft2 applies an in-place 2-D FFT (rows then columns). The inverse
// transform is normalized by the element count.
func fft2(data []complex128, w, h int, inverse bool) {
	rowFFT := fourier.NewCmplxFFT(w)
	row := make([]complex128, w)
	for y := 0; y < h; y++ {
		copy(row, data[y*w:(y+1)*w])
		if inverse {
			rowFFT.Sequence(data[y*w:(y+1)*w], row)
		} else {
			rowFFT.Coefficients(data[y*w:(y+1)*w], row)
		}
	}

	colFFT := fourier.NewCmplxFFT(h)
	col := make([]complex128, h)
	out := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = data[y*w+x]
		}
		if inverse {
			colFFT.Sequence(out, col)
		} else {
			colFFT.Coefficients(out, col)
		}
		for y := 0; y < h; y++ {
			data[y*w+x] = out[y]
		}
	}

	if inverse {
		scale := complex(1/float64(w*h), 0)
		for i := range data {
			data[i] *= scale
		}
	}
}

// upsampledDFT evaluates the inverse DFT of spectrum on an upsW x upsH grid
// with the given sub-pixel offsets, as two separable matrix products.
func upsampledDFT(spectrum []complex128, w, h, upsW, upsH int, upsample, offX, offY float64) []complex128 {
	kernY := dftKernel(h, upsH, upsample, offY)
	kernX := dftKernel(w, upsW, upsample, offX)

	// rows: collapse the y axis.
	mid := make([]complex128, upsH*w)
	for uy := 0; uy < upsH; uy++ {
		for y := 0; y < h; y++ {
			k := kernY[uy*h+y]
			for x := 0; x < w; x++ {
				mid[uy*w+x] += k * spectrum[y*w+x]
			}
		}
	}

	out := make([]complex128, upsH*upsW)
	for uy := 0; uy < upsH; uy++ {
		for ux := 0; ux < upsW; ux++ {
			var acc complex128
			for x := 0; x < w; x++ {
				acc += kernX[ux*w+x] * mid[uy*w+x]
			}
			out[uy*upsW+ux] = acc
		}
	}
	return out
}

// dftKernel builds the exp(+2*pi*i*(u-offset)*freq(n)) matrix for one axis.
func dftKernel(n, ups int, upsample, offset float64) []complex128 {
	kern := make([]complex128, ups*n)
	for u := 0; u < ups; u++ {
		for i := 0; i < n; i++ {
			freq := fftFreq(i, n) / upsample
			kern[u*n+i] = cmplx.Exp(complex(0, 2*math.Pi*(float64(u)-offset)*freq))
		}
	}
	return kern
}

// fftFreq returns the signed sample frequency index for bin i of an
// n-point DFT, in cycles per sample.
func fftFreq(i, n int) float64 {
	if i < (n+1)/2 {
		return float64(i) / float64(n)
	}
	return float64(i-n) / float64(n)
}

// wrapShift converts a correlation peak index into a signed shift.
func wrapShift(p, n int) float64 {
	if p > n/2 {
		return float64(p - n)
	}
	return float64(p)
}

// translateBilinear shifts the image content by (+dy, +dx) with bilinear
// sampling, filling uncovered pixels with white.
func translateBilinear(img *imaging.RGB, dy, dx float64) *imaging.RGB {
	out := imaging.NewRGB(img.W, img.H)
	for y := 0; y < img.H; y++ {
		sy := float64(y) - dy
		for x := 0; x < img.W; x++ {
			sx := float64(x) - dx
			r, g, b := sampleBilinear(img, sy, sx)
			out.Set(x, y, r, g, b)
		}
	}
	return out
}

// sampleBilinear reads the image at a fractional coordinate, treating
// everything outside the frame as white page background.
func sampleBilinear(img *imaging.RGB, sy, sx float64) (r, g, b float64) {
	y0 := int(math.Floor(sy))
	x0 := int(math.Floor(sx))
	fy := sy - float64(y0)
	fx := sx - float64(x0)

	r, g, b = 0, 0, 0
	for _, c := range [4]struct {
		x, y int
		w    float64
	}{
		{x0, y0, (1 - fx) * (1 - fy)},
		{x0 + 1, y0, fx * (1 - fy)},
		{x0, y0 + 1, (1 - fx) * fy},
		{x0 + 1, y0 + 1, fx * fy},
	} {
		if c.w == 0 {
			continue
		}
		var pr, pg, pb float64 = 1, 1, 1
		if c.x >= 0 && c.x < img.W && c.y >= 0 && c.y < img.H {
			pr, pg, pb = img.At(c.x, c.y)
		}
		r += c.w * pr
		g += c.w * pg
		b += c.w * pb
	}
	return r, g, b
}

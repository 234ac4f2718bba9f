package scoring

import (
	"math"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// verticalInkMap builds a monotonic row mapping that transports the
// candidate's cumulative ink mass onto the reference's. For each reference
// row it finds, by inverse-CDF interpolation, the candidate row holding the
// same cumulative ink fraction. Returns ok=false when either page has no
// ink or the implied displacement is below the minimum drift threshold.
func verticalInkMap(refInk, candInk *Mask, cfg Config) (mapY []float64, strength float64, ok bool) {
	refProj := rowProjection(refInk)
	candProj := rowProjection(candInk)

	if cfg.DriftSigma > 0 {
		refProj = gaussianSmooth1D(refProj, cfg.DriftSigma)
		candProj = gaussianSmooth1D(candProj, cfg.DriftSigma)
	}

	refTotal := sum(refProj)
	candTotal := sum(candProj)
	if refTotal == 0 || candTotal == 0 {
		return nil, 0, false
	}

	refCDF := cumulative(refProj, refTotal)
	candCDF := cumulative(candProj, candTotal)

	// Deduplicate the candidate CDF (keeping the first row of each plateau)
	// and pin explicit 0/1 endpoints so the interpolation domain covers
	// every reference fraction.
	xs, ys := dedupeCDF(candCDF)
	if xs[0] > 0 {
		xs = append([]float64{0}, xs...)
		ys = append([]float64{0}, ys...)
	}
	if xs[len(xs)-1] < 1.0 {
		xs = append(xs, 1.0)
		ys = append(ys, float64(len(candCDF)-1))
	}

	mapY = make([]float64, len(refCDF))
	maxRow := float64(len(candCDF) - 1)
	total := 0.0
	for y, f := range refCDF {
		v := interpLinear(f, xs, ys)
		if v < 0 {
			v = 0
		}
		if v > maxRow {
			v = maxRow
		}
		mapY[y] = v
		total += math.Abs(v - float64(y))
	}

	strength = total / float64(len(mapY))
	if strength < cfg.MinDriftPx {
		return nil, strength, false
	}
	return mapY, strength, true
}

func sum(v []float64) float64 {
	t := 0.0
	for _, x := range v {
		t += x
	}
	return t
}

func cumulative(proj []float64, total float64) []float64 {
	out := make([]float64, len(proj))
	acc := 0.0
	for i, v := range proj {
		acc += v
		out[i] = acc / total
	}
	return out
}

// dedupeCDF collapses a nondecreasing sequence to its distinct values,
// keeping the index of the first occurrence of each.
func dedupeCDF(cdf []float64) (xs, ys []float64) {
	for i, v := range cdf {
		if i == 0 || v != cdf[i-1] {
			xs = append(xs, v)
			ys = append(ys, float64(i))
		}
	}
	return xs, ys
}

// interpLinear evaluates piecewise-linear interpolation of (xs, ys) at x,
// clamping outside the domain.
func interpLinear(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	span := xs[hi] - xs[lo]
	if span == 0 {
		return ys[lo]
	}
	t := (x - xs[lo]) / span
	return ys[lo] + t*(ys[hi]-ys[lo])
}

// gaussianSmooth1D filters a projection with a Gaussian of the given sigma
// (truncated at four standard deviations, reflected borders).
func gaussianSmooth1D(v []float64, sigma float64) []float64 {
	kernel := gaussianKernel1D(sigma)
	radius := len(kernel) / 2
	out := make([]float64, len(v))
	for i := range v {
		acc := 0.0
		for k, kv := range kernel {
			acc += kv * v[reflectIndex(i+k-radius, len(v))]
		}
		out[i] = acc
	}
	return out
}

// applyVerticalMap resamples the candidate's rows through mapY with linear
// interpolation, white fill beyond the frame. Columns are untouched; drift
// correction is strictly vertical.
func applyVerticalMap(img *imaging.RGB, mapY []float64) *imaging.RGB {
	out := imaging.NewRGB(img.W, img.H)
	for y := 0; y < img.H; y++ {
		sy := mapY[y]
		y0 := int(math.Floor(sy))
		f := sy - float64(y0)
		y1 := y0 + 1
		for x := 0; x < img.W; x++ {
			var r0, g0, b0, r1, g1, b1 float64 = 1, 1, 1, 1, 1, 1
			if y0 >= 0 && y0 < img.H {
				r0, g0, b0 = img.At(x, y0)
			}
			if y1 >= 0 && y1 < img.H {
				r1, g1, b1 = img.At(x, y1)
			}
			out.Set(x, y,
				(1-f)*r0+f*r1,
				(1-f)*g0+f*g1,
				(1-f)*b0+f*b1)
		}
	}
	return out
}

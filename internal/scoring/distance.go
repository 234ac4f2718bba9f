package scoring

import "math"

// distLarge stands in for infinity in the squared distance transform. Any
// real squared distance on a page is far below it, and keeping the value
// finite keeps the parabola envelope arithmetic NaN-free.
const distLarge = 1e15

// distanceTransform computes, for every pixel, the exact Euclidean distance
// to the nearest set pixel of the mask (Felzenszwalb-Huttenlocher two-pass
// squared distance transform). Pixels inside the mask get 0; with an empty
// mask every pixel reports a distance beyond any tolerance.
func distanceTransform(m *Mask) []float64 {
	w, h := m.W, m.H
	f := make([]float64, w*h)
	for i, set := range m.Bits {
		if !set {
			f[i] = distLarge
		}
	}

	// Columns first, then rows.
	col := make([]float64, h)
	out := make([]float64, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = f[y*w+x]
		}
		dt1d(col, out)
		for y := 0; y < h; y++ {
			f[y*w+x] = out[y]
		}
	}

	row := make([]float64, w)
	outRow := make([]float64, w)
	for y := 0; y < h; y++ {
		copy(row, f[y*w:(y+1)*w])
		dt1d(row, outRow)
		for x := 0; x < w; x++ {
			f[y*w+x] = math.Sqrt(outRow[x])
		}
	}
	return f
}

// dt1d computes the 1-D squared distance transform of f into out using the
// lower envelope of parabolas.
func dt1d(f, out []float64) {
	n := len(f)
	v := make([]int, n)       // parabola locations in the envelope
	z := make([]float64, n+1) // boundaries between parabolas
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)

	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		d := float64(q - v[k])
		out[q] = d*d + f[v[k]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p meet.
func intersect(f []float64, q, p int) float64 {
	fq := f[q] + float64(q*q)
	fp := f[p] + float64(p*p)
	return (fq - fp) / (2*float64(q) - 2*float64(p))
}

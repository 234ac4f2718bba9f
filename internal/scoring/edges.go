package scoring

import (
	"math"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// Hysteresis thresholds on gradient magnitude for unit-range input.
const (
	cannyLowThreshold  = 0.1
	cannyHighThreshold = 0.2
)

// gaussianKernel1D builds a normalized Gaussian kernel truncated at four
// standard deviations.
func gaussianKernel1D(sigma float64) []float64 {
	radius := int(4.0*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	k := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+radius] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// convolveSeparable applies a 1-D kernel along both axes with reflected
// borders.
func convolveSeparable(g *imaging.Gray, kernel []float64) *imaging.Gray {
	radius := len(kernel) / 2
	tmp := imaging.NewGray(g.W, g.H)
	out := imaging.NewGray(g.W, g.H)

	for y := 0; y < g.H; y++ {
		row := g.Pix[y*g.W : (y+1)*g.W]
		for x := 0; x < g.W; x++ {
			acc := 0.0
			for k, kv := range kernel {
				acc += kv * row[reflectIndex(x+k-radius, g.W)]
			}
			tmp.Pix[y*g.W+x] = acc
		}
	}
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			acc := 0.0
			for k, kv := range kernel {
				acc += kv * tmp.Pix[reflectIndex(y+k-radius, g.H)*g.W+x]
			}
			out.Pix[y*g.W+x] = acc
		}
	}
	return out
}

// reflectIndex mirrors an out-of-range index back into [0, n).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// sobelGradients computes horizontal and vertical Sobel derivatives.
func sobelGradients(g *imaging.Gray) (gx, gy *imaging.Gray) {
	gx = imaging.NewGray(g.W, g.H)
	gy = imaging.NewGray(g.W, g.H)
	at := func(x, y int) float64 {
		return g.Pix[reflectIndex(y, g.H)*g.W+reflectIndex(x, g.W)]
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			gx.Pix[y*g.W+x] = (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			gy.Pix[y*g.W+x] = (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
		}
	}
	return gx, gy
}

// EdgeMask runs Canny edge detection: Gaussian smoothing at sigma, Sobel
// gradients, non-maximum suppression, then hysteresis linking. Edges
// capture structural boundaries (table rules, glyph outlines) that the ink
// mask alone misses.
func EdgeMask(g *imaging.Gray, sigma float64) *Mask {
	smoothed := convolveSeparable(g, gaussianKernel1D(sigma))
	gx, gy := sobelGradients(smoothed)

	w, h := g.W, g.H
	mag := make([]float64, w*h)
	for i := range mag {
		mag[i] = math.Hypot(gx.Pix[i], gy.Pix[i])
	}

	// Non-maximum suppression along the quantized gradient direction.
	thin := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := mag[i]
			if m == 0 {
				continue
			}
			angle := math.Atan2(gy.Pix[i], gx.Pix[i])
			if angle < 0 {
				angle += math.Pi
			}
			var a, b float64
			switch {
			case angle < math.Pi/8 || angle >= 7*math.Pi/8: // horizontal gradient
				a, b = mag[i-1], mag[i+1]
			case angle < 3*math.Pi/8: // gradient along the main diagonal
				a, b = mag[i-w-1], mag[i+w+1]
			case angle < 5*math.Pi/8: // vertical gradient
				a, b = mag[i-w], mag[i+w]
			default: // gradient along the anti-diagonal
				a, b = mag[i-w+1], mag[i+w-1]
			}
			if m >= a && m >= b {
				thin[i] = m
			}
		}
	}

	// Hysteresis: keep weak edges only when connected to a strong one.
	out := NewMask(w, h)
	var stack []int
	for i, m := range thin {
		if m >= cannyHighThreshold && !out.Bits[i] {
			out.Bits[i] = true
			stack = append(stack[:0], i)
			for len(stack) > 0 {
				j := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				x, y := j%w, j/w
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						n := ny*w + nx
						if !out.Bits[n] && thin[n] >= cannyLowThreshold {
							out.Bits[n] = true
							stack = append(stack, n)
						}
					}
				}
			}
		}
	}
	return out
}

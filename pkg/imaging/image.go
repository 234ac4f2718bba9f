// Package imaging provides the floating-point image buffers used by the
// visual scoring pipeline. Pixel samples are float64 values in [0, 1];
// buffers are row-major and treated as immutable once handed to a scorer.
package imaging

import (
	"image"
	"image/color"
)

// RGB is an interleaved three-channel image with samples in [0, 1].
type RGB struct {
	W, H int
	Pix  []float64 // len == W*H*3, ordered r, g, b
}

// NewRGB allocates a zeroed RGB buffer.
func NewRGB(w, h int) *RGB {
	return &RGB{W: w, H: h, Pix: make([]float64, w*h*3)}
}

// NewRGBFilled allocates an RGB buffer with every sample set to v.
func NewRGBFilled(w, h int, v float64) *RGB {
	m := NewRGB(w, h)
	for i := range m.Pix {
		m.Pix[i] = v
	}
	return m
}

// At returns the three samples at (x, y).
func (m *RGB) At(x, y int) (r, g, b float64) {
	i := (y*m.W + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Set stores the three samples at (x, y).
func (m *RGB) Set(x, y int, r, g, b float64) {
	i := (y*m.W + x) * 3
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = r, g, b
}

// Clone returns a deep copy.
func (m *RGB) Clone() *RGB {
	out := &RGB{W: m.W, H: m.H, Pix: make([]float64, len(m.Pix))}
	copy(out.Pix, m.Pix)
	return out
}

// Gray converts to luminance using the ITU-R BT.601 weights used by the
// scoring metrics (0.2125, 0.7154, 0.0721).
func (m *RGB) Gray() *Gray {
	g := NewGray(m.W, m.H)
	for p, i := 0, 0; p < m.W*m.H; p, i = p+1, i+3 {
		g.Pix[p] = 0.2125*m.Pix[i] + 0.7154*m.Pix[i+1] + 0.0721*m.Pix[i+2]
	}
	return g
}

// Gray is a single-channel image with samples in [0, 1].
type Gray struct {
	W, H int
	Pix  []float64 // len == W*H
}

// NewGray allocates a zeroed Gray buffer.
func NewGray(w, h int) *Gray {
	return &Gray{W: w, H: h, Pix: make([]float64, w*h)}
}

// At returns the sample at (x, y).
func (g *Gray) At(x, y int) float64 { return g.Pix[y*g.W+x] }

// Set stores the sample at (x, y).
func (g *Gray) Set(x, y int, v float64) { g.Pix[y*g.W+x] = v }

// FromImage converts a decoded standard-library image into an RGB buffer,
// normalizing 16-bit samples to [0, 1]. Alpha is dropped.
func FromImage(img image.Image) *RGB {
	b := img.Bounds()
	out := NewRGB(b.Dx(), b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out.Pix[i] = float64(r) / 65535.0
			out.Pix[i+1] = float64(g) / 65535.0
			out.Pix[i+2] = float64(bl) / 65535.0
			i += 3
		}
	}
	return out
}

// ToImage converts the buffer to a 16-bit standard-library image. Samples
// outside [0, 1] are clipped.
func (m *RGB) ToImage() *image.RGBA64 {
	out := image.NewRGBA64(image.Rect(0, 0, m.W, m.H))
	i := 0
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			out.SetRGBA64(x, y, color.RGBA64{
				R: quantize16(m.Pix[i]),
				G: quantize16(m.Pix[i+1]),
				B: quantize16(m.Pix[i+2]),
				A: 0xffff,
			})
			i += 3
		}
	}
	return out
}

// ToImage converts the buffer to a 16-bit grayscale image.
func (g *Gray) ToImage() *image.Gray16 {
	out := image.NewGray16(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			out.SetGray16(x, y, color.Gray16{Y: quantize16(g.Pix[y*g.W+x])})
		}
	}
	return out
}

func quantize16(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*65535.0 + 0.5)
}

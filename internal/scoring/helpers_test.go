package scoring

import (
	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// whitePage returns a blank page render.
func whitePage(w, h int) *imaging.RGB {
	return imaging.NewRGBFilled(w, h, 1.0)
}

// fillRect paints a solid rectangle, clipped to the frame.
func fillRect(img *imaging.RGB, x0, y0, x1, y1 int, r, g, b float64) {
	for y := y0; y < y1; y++ {
		if y < 0 || y >= img.H {
			continue
		}
		for x := x0; x < x1; x++ {
			if x < 0 || x >= img.W {
				continue
			}
			img.Set(x, y, r, g, b)
		}
	}
}

// barPage builds a white page with full-width black bars spanning the given
// [start, end) row ranges.
func barPage(w, h int, bars [][2]int) *imaging.RGB {
	img := whitePage(w, h)
	for _, bar := range bars {
		fillRect(img, 0, bar[0], w, bar[1], 0, 0, 0)
	}
	return img
}

// textLikePage scatters black blocks so the page has structure on both axes,
// the way a real page of text does.
func textLikePage(w, h int) *imaging.RGB {
	img := whitePage(w, h)
	blocks := [][4]int{
		{10, 12, 50, 18},
		{60, 12, 110, 18},
		{10, 30, 90, 36},
		{30, 48, 70, 54},
		{10, 66, 110, 72},
		{50, 84, 100, 90},
	}
	for _, b := range blocks {
		fillRect(img, b[0], b[1], b[2], b[3], 0, 0, 0)
	}
	return img
}

// shiftPage translates the page content by integer offsets with white fill.
func shiftPage(img *imaging.RGB, dy, dx int) *imaging.RGB {
	out := whitePage(img.W, img.H)
	for y := 0; y < img.H; y++ {
		sy := y - dy
		if sy < 0 || sy >= img.H {
			continue
		}
		for x := 0; x < img.W; x++ {
			sx := x - dx
			if sx < 0 || sx >= img.W {
				continue
			}
			r, g, b := img.At(sx, sy)
			out.Set(x, y, r, g, b)
		}
	}
	return out
}

// maskFromRows builds an ink mask with the given full-width row ranges set.
func maskFromRows(w, h int, bars [][2]int) *Mask {
	m := NewMask(w, h)
	for _, bar := range bars {
		for y := bar[0]; y < bar[1]; y++ {
			for x := 0; x < w; x++ {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

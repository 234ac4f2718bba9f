package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// Overlay tint colors. Reference-only content renders dark teal, candidate-only
// content dark red; where both have ink the tints blend.
var (
	refTint  = [3]float64{12.0 / 255.0, 86.0 / 255.0, 52.0 / 255.0}
	candTint = [3]float64{160.0 / 255.0, 0.0, 0.0}
)

const (
	diffMaxAlpha     = 200.0 / 255.0
	diffInkThreshold = 20.0 / 255.0
)

type tintLayer struct {
	w, h  int
	color [3]float64
	ink   []float64
}

// tintInk extracts dark content from the image as an ink-strength channel,
// dropping ink below the threshold.
func tintInk(img *imaging.RGB, color [3]float64) *tintLayer {
	gray := img.Gray()
	layer := &tintLayer{w: img.W, h: img.H, color: color, ink: make([]float64, img.W*img.H)}
	for i, v := range gray.Pix {
		ink := 1.0 - v
		if ink < diffInkThreshold {
			continue
		}
		layer.ink[i] = ink
	}
	return layer
}

// BuildDiffOverlay composites tinted ink layers from both renders onto a white
// background. The candidate is resized to the reference frame first.
func BuildDiffOverlay(ref, cand *imaging.RGB) *imaging.RGB {
	cand = imaging.ResizeToMatch(ref, cand)

	layers := []*tintLayer{
		tintInk(ref, refTint),
		tintInk(cand, candTint),
	}

	out := imaging.NewRGBFilled(ref.W, ref.H, 1.0)
	for _, layer := range layers {
		for i, ink := range layer.ink {
			if ink == 0 {
				continue
			}
			// The tint is colorized from the alpha-prescaled ink, so the
			// color term carries the alpha scale as well.
			a := ink * diffMaxAlpha
			base := i * 3
			for c := 0; c < 3; c++ {
				src := layer.color[c] * a
				out.Pix[base+c] = src*a + out.Pix[base+c]*(1.0-a)
			}
		}
	}
	return out
}

// WriteDiffOverlay builds the overlay from two page files and saves it as PNG.
func WriteDiffOverlay(refPath, candPath, outPath string) error {
	ref, err := imaging.Load(refPath)
	if err != nil {
		return fmt.Errorf("load reference %s: %w", refPath, err)
	}
	cand, err := imaging.Load(candPath)
	if err != nil {
		return fmt.Errorf("load candidate %s: %w", candPath, err)
	}
	overlay := BuildDiffOverlay(ref, cand)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create diff dir: %w", err)
	}
	if err := imaging.SavePNG(outPath, overlay.ToImage()); err != nil {
		return fmt.Errorf("save diff overlay %s: %w", outPath, err)
	}
	return nil
}

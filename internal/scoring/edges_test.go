package scoring

import (
	"testing"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

func TestEdgeMaskBlankImage(t *testing.T) {
	g := imaging.NewGray(40, 40)
	for i := range g.Pix {
		g.Pix[i] = 1.0
	}
	if got := EdgeMask(g, 1.2).Count(); got != 0 {
		t.Errorf("blank image edge count: got %d, want 0", got)
	}
}

func TestEdgeMaskVerticalStep(t *testing.T) {
	img := whitePage(60, 60)
	fillRect(img, 0, 0, 30, 60, 0, 0, 0)
	edges := EdgeMask(img.Gray(), 1.2)

	if edges.Count() == 0 {
		t.Fatal("step image should have edges")
	}

	// Edges must hug the step column; nothing detected far away from it.
	for y := 10; y < 50; y++ {
		found := false
		for x := 26; x <= 34; x++ {
			if edges.At(x, y) {
				found = true
			}
		}
		if !found {
			t.Errorf("row %d: no edge near the step column", y)
		}
		if edges.At(10, y) || edges.At(50, y) {
			t.Errorf("row %d: edge detected far from the step", y)
		}
	}
}

func TestEdgeMaskDiagonalStepsAreThin(t *testing.T) {
	const n = 64
	steps := map[string]func(x, y int) bool{
		"anti-diagonal": func(x, y int) bool { return x+y < n },
		"main-diagonal": func(x, y int) bool { return x < y },
	}
	for name, dark := range steps {
		g := imaging.NewGray(n, n)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if !dark(x, y) {
					g.Pix[y*n+x] = 1.0
				}
			}
		}
		edges := EdgeMask(g, 1.2)

		// Non-maximum suppression must thin the response across the step to
		// a one or two pixel crossing per row.
		for y := 16; y < n-16; y++ {
			run := 0
			for x := 0; x < n; x++ {
				if edges.At(x, y) {
					run++
				}
			}
			if run == 0 {
				t.Errorf("%s: row %d has no edge pixels", name, y)
			}
			if run > 2 {
				t.Errorf("%s: row %d has %d edge pixels, want at most 2", name, y, run)
			}
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	k := gaussianKernel1D(1.2)
	total := 0.0
	for _, v := range k {
		total += v
	}
	if absDiff(total, 1.0) > 1e-9 {
		t.Errorf("kernel sum: got %f, want 1.0", total)
	}
	if len(k)%2 != 1 {
		t.Errorf("kernel length %d should be odd", len(k))
	}
}

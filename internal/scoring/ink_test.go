package scoring

import (
	"testing"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

func TestOtsuThresholdBimodal(t *testing.T) {
	g := imaging.NewGray(10, 10)
	for i := range g.Pix {
		if i < 50 {
			g.Pix[i] = 0.1
		} else {
			g.Pix[i] = 0.9
		}
	}

	thr, ok := otsuThreshold(g)
	if !ok {
		t.Fatal("expected a threshold for a bimodal image")
	}
	if thr <= 0.1 || thr >= 0.9 {
		t.Errorf("threshold %f should separate the two modes", thr)
	}
}

func TestOtsuThresholdConstantImage(t *testing.T) {
	g := imaging.NewGray(8, 8)
	for i := range g.Pix {
		g.Pix[i] = 0.5
	}
	if _, ok := otsuThreshold(g); ok {
		t.Error("constant image must not produce a threshold")
	}
}

func TestInkMaskBlankPageIsEmpty(t *testing.T) {
	m := InkMask(whitePage(50, 50).Gray(), 24)
	if m.Count() != 0 {
		t.Errorf("blank page ink count: got %d, want 0", m.Count())
	}
}

func TestInkMaskRemovesSpecks(t *testing.T) {
	img := barPage(100, 60, [][2]int{{20, 24}})
	img.Set(70, 50, 0, 0, 0) // isolated speck

	m := InkMask(img.Gray(), 24)

	if !m.At(50, 22) {
		t.Error("bar interior should be ink")
	}
	if m.At(70, 50) {
		t.Error("isolated speck should be removed")
	}
}

func TestRowProjection(t *testing.T) {
	m := maskFromRows(10, 5, [][2]int{{1, 3}})
	proj := rowProjection(m)
	want := []float64{0, 10, 10, 0, 0}
	for i, v := range want {
		if proj[i] != v {
			t.Errorf("row %d: got %f, want %f", i, proj[i], v)
		}
	}
}

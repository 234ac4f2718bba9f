package scoring

import (
	"testing"
)

func TestVerticalInkMapUniformShift(t *testing.T) {
	cfg := DefaultConfig()
	w, h := 100, 110
	refInk := maskFromRows(w, h, [][2]int{{20, 24}, {50, 54}, {80, 84}})
	candInk := maskFromRows(w, h, [][2]int{{23, 27}, {53, 57}, {83, 87}})

	mapY, strength, ok := verticalInkMap(refInk, candInk, cfg)
	if !ok {
		t.Fatal("a 3px uniform shift should register as drift")
	}
	if strength < 1.0 || strength > 8.0 {
		t.Errorf("drift strength: got %f, want roughly 3", strength)
	}

	// At an ink-carrying reference row the map should point at the shifted
	// candidate row.
	for _, y := range []int{21, 51, 81} {
		if absDiff(mapY[y], float64(y+3)) > 1.0 {
			t.Errorf("mapY[%d]: got %f, want about %d", y, mapY[y], y+3)
		}
	}
}

func TestVerticalInkMapIdenticalPagesWarpIsNoOp(t *testing.T) {
	// CDF plateaus (the blank stretches before, between and after the bars)
	// map onto the first row of the plateau, so the reported strength can be
	// nonzero even for identical pages. What matters is that warping an
	// identical page through its own map changes nothing.
	cfg := DefaultConfig()
	w, h := 100, 110
	page := barPage(w, h, [][2]int{{20, 24}, {60, 64}})
	ink := InkMask(page.Gray(), cfg.InkMinSize)

	mapY, _, ok := verticalInkMap(ink, ink.Clone(), cfg)
	if !ok {
		return // below the drift threshold, nothing to warp
	}

	// Ink-carrying rows must map onto themselves.
	for _, y := range []int{21, 22, 61, 62} {
		if absDiff(mapY[y], float64(y)) > 0.5 {
			t.Errorf("mapY[%d]: got %f, want %d", y, mapY[y], y)
		}
	}

	warped := applyVerticalMap(page, mapY)
	for i := range page.Pix {
		if absDiff(warped.Pix[i], page.Pix[i]) > 1e-6 {
			t.Fatalf("warping an identical page changed pixel %d: %f -> %f",
				i, page.Pix[i], warped.Pix[i])
		}
	}
}

func TestVerticalInkMapBlankPage(t *testing.T) {
	cfg := DefaultConfig()
	ink := maskFromRows(100, 110, [][2]int{{20, 24}})
	blank := NewMask(100, 110)

	if _, _, ok := verticalInkMap(ink, blank, cfg); ok {
		t.Error("a blank page has no ink distribution to map")
	}
	if _, _, ok := verticalInkMap(blank, ink, cfg); ok {
		t.Error("a blank reference has no ink distribution to map")
	}
}

func TestApplyVerticalMapRestoresShiftedBars(t *testing.T) {
	cfg := DefaultConfig()
	w, h := 100, 110
	ref := barPage(w, h, [][2]int{{20, 24}, {50, 54}, {80, 84}})
	cand := barPage(w, h, [][2]int{{23, 27}, {53, 57}, {83, 87}})

	refInk := InkMask(ref.Gray(), cfg.InkMinSize)
	candInk := InkMask(cand.Gray(), cfg.InkMinSize)

	mapY, _, ok := verticalInkMap(refInk, candInk, cfg)
	if !ok {
		t.Fatal("expected drift to be detected")
	}

	warped := applyVerticalMap(cand, mapY)
	for _, y := range []int{21, 51, 81} {
		if v := warped.Gray().At(50, y); v > 0.5 {
			t.Errorf("warped row %d should carry the bar ink, got gray %f", y, v)
		}
	}
}

func TestInterpLinearMatchesEndpoints(t *testing.T) {
	xs := []float64{0, 0.5, 1.0}
	ys := []float64{0, 10, 20}

	cases := []struct{ x, want float64 }{
		{-1, 0}, {0, 0}, {0.25, 5}, {0.5, 10}, {0.75, 15}, {1.0, 20}, {2.0, 20},
	}
	for _, c := range cases {
		if got := interpLinear(c.x, xs, ys); absDiff(got, c.want) > 1e-9 {
			t.Errorf("interp at %f: got %f, want %f", c.x, got, c.want)
		}
	}
}

func TestDedupeCDFKeepsFirstIndex(t *testing.T) {
	xs, ys := dedupeCDF([]float64{0, 0, 0.3, 0.3, 0.3, 1.0})
	wantXs := []float64{0, 0.3, 1.0}
	wantYs := []float64{0, 2, 5}
	if len(xs) != len(wantXs) {
		t.Fatalf("dedupe length: got %d, want %d", len(xs), len(wantXs))
	}
	for i := range wantXs {
		if xs[i] != wantXs[i] || ys[i] != wantYs[i] {
			t.Errorf("entry %d: got (%f, %f), want (%f, %f)", i, xs[i], ys[i], wantXs[i], wantYs[i])
		}
	}
}

package scoring

import (
	"testing"
)

func TestDeltaE2000Identical(t *testing.T) {
	c := rgbToLab(0.3, 0.6, 0.2)
	if got := deltaE2000(c, c); got > 1e-9 {
		t.Errorf("deltaE of identical colors: got %f, want 0", got)
	}
}

func TestDeltaE2000BlackWhite(t *testing.T) {
	black := rgbToLab(0, 0, 0)
	white := rgbToLab(1, 1, 1)
	if got := deltaE2000(black, white); absDiff(got, 100.0) > 0.01 {
		t.Errorf("deltaE black vs white: got %f, want 100", got)
	}
}

// Reference pair from Sharma, Wu, Dalal, "The CIEDE2000 Color-Difference
// Formula: Implementation Notes" (pair 1 of the test data set).
func TestDeltaE2000ReferencePair(t *testing.T) {
	c1 := lab{l: 50.0000, a: 2.6772, b: -79.7751}
	c2 := lab{l: 50.0000, a: 0.0000, b: -82.7485}
	if got := deltaE2000(c1, c2); absDiff(got, 2.0425) > 0.0001 {
		t.Errorf("deltaE reference pair: got %f, want 2.0425", got)
	}
}

func TestMeanDeltaEEmptyMask(t *testing.T) {
	a := whitePage(8, 8)
	b := barPage(8, 8, [][2]int{{2, 6}})
	m := NewMask(8, 8)
	if got := meanDeltaE(a, b, m); got != 0 {
		t.Errorf("mean deltaE over empty mask: got %f, want 0", got)
	}
}

func TestMeanDeltaEMismatchedInk(t *testing.T) {
	a := barPage(20, 20, [][2]int{{5, 10}})
	b := whitePage(20, 20)
	m := maskFromRows(20, 20, [][2]int{{5, 10}})

	got := meanDeltaE(a, b, m)
	if absDiff(got, 100.0) > 0.01 {
		t.Errorf("mean deltaE over black-vs-white ink: got %f, want 100", got)
	}
}

func TestRGBToLabWhite(t *testing.T) {
	c := rgbToLab(1, 1, 1)
	if absDiff(c.l, 100.0) > 0.01 || absDiff(c.a, 0) > 0.01 || absDiff(c.b, 0) > 0.01 {
		t.Errorf("Lab of white: got (%f, %f, %f), want (100, 0, 0)", c.l, c.a, c.b)
	}
}

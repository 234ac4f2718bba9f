package scoring

import (
	"math"
	"testing"
)

func TestDistanceTransformSinglePoint(t *testing.T) {
	m := NewMask(3, 3)
	m.Set(1, 1, true)

	d := distanceTransform(m)

	cases := []struct {
		x, y int
		want float64
	}{
		{1, 1, 0},
		{0, 1, 1},
		{2, 1, 1},
		{1, 0, 1},
		{1, 2, 1},
		{0, 0, math.Sqrt2},
		{2, 2, math.Sqrt2},
	}
	for _, c := range cases {
		got := d[c.y*3+c.x]
		if absDiff(got, c.want) > 1e-9 {
			t.Errorf("distance at (%d,%d): got %f, want %f", c.x, c.y, got, c.want)
		}
	}
}

func TestDistanceTransformEmptyMask(t *testing.T) {
	m := NewMask(4, 4)
	d := distanceTransform(m)
	for i, v := range d {
		if v < 1e6 {
			t.Fatalf("distance %d to an empty mask should be effectively infinite, got %f", i, v)
		}
	}
}

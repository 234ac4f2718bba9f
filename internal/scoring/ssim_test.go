package scoring

import (
	"math/rand"
	"testing"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

func randomGray(w, h int, seed int64) *imaging.Gray {
	rng := rand.New(rand.NewSource(seed))
	g := imaging.NewGray(w, h)
	for i := range g.Pix {
		g.Pix[i] = rng.Float64()
	}
	return g
}

func TestSSIMIdenticalImages(t *testing.T) {
	g := randomGray(64, 64, 1)
	if got := ssim(g, g); absDiff(got, 1.0) > 1e-9 {
		t.Errorf("ssim of an image with itself: got %f, want 1.0", got)
	}
}

func TestSSIMOppositeImages(t *testing.T) {
	w, h := 64, 64
	black := imaging.NewGray(w, h)
	white := imaging.NewGray(w, h)
	for i := range white.Pix {
		white.Pix[i] = 1.0
	}
	if got := ssim(black, white); got > 0.05 {
		t.Errorf("ssim of black vs white: got %f, want near 0", got)
	}
}

func TestSSIMDegradesWithNoise(t *testing.T) {
	base := randomGray(64, 64, 2)
	noisy := imaging.NewGray(base.W, base.H)
	rng := rand.New(rand.NewSource(3))
	for i, v := range base.Pix {
		noisy.Pix[i] = v*0.8 + rng.Float64()*0.2
	}

	got := ssim(base, noisy)
	if got <= 0.1 || got >= 1.0 {
		t.Errorf("ssim of mildly noisy image: got %f, want between 0.1 and 1.0", got)
	}
}

package scoring

import (
	"math"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// lab is a CIE L*a*b* color (D65 reference white).
type lab struct {
	l, a, b float64
}

// rgbToLab converts one sRGB triple in [0,1] to CIE L*a*b*.
func rgbToLab(r, g, b float64) lab {
	rl := srgbToLinear(r)
	gl := srgbToLinear(g)
	bl := srgbToLinear(b)

	// sRGB to XYZ, D65.
	x := 0.4124564*rl + 0.3575761*gl + 0.1804375*bl
	y := 0.2126729*rl + 0.7151522*gl + 0.0721750*bl
	z := 0.0193339*rl + 0.1191920*gl + 0.9503041*bl

	fx := labF(x / 0.95047)
	fy := labF(y / 1.0)
	fz := labF(z / 1.08883)

	return lab{
		l: 116*fy - 16,
		a: 500 * (fx - fy),
		b: 200 * (fy - fz),
	}
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

// deltaE2000 computes the CIEDE2000 color difference between two Lab colors.
func deltaE2000(c1, c2 lab) float64 {
	const (
		kL = 1.0
		kC = 1.0
		kH = 1.0
	)

	cab1 := math.Hypot(c1.a, c1.b)
	cab2 := math.Hypot(c2.a, c2.b)
	cabMean := (cab1 + cab2) / 2

	c7 := math.Pow(cabMean, 7)
	g := 0.5 * (1 - math.Sqrt(c7/(c7+math.Pow(25, 7))))

	a1p := (1 + g) * c1.a
	a2p := (1 + g) * c2.a
	c1p := math.Hypot(a1p, c1.b)
	c2p := math.Hypot(a2p, c2.b)

	h1p := hueAngle(c1.b, a1p)
	h2p := hueAngle(c2.b, a2p)

	dLp := c2.l - c1.l
	dCp := c2p - c1p

	var dhp float64
	switch {
	case c1p*c2p == 0:
		dhp = 0
	case math.Abs(h2p-h1p) <= 180:
		dhp = h2p - h1p
	case h2p-h1p > 180:
		dhp = h2p - h1p - 360
	default:
		dhp = h2p - h1p + 360
	}
	dHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(rad(dhp)/2)

	lpMean := (c1.l + c2.l) / 2
	cpMean := (c1p + c2p) / 2

	var hpMean float64
	switch {
	case c1p*c2p == 0:
		hpMean = h1p + h2p
	case math.Abs(h1p-h2p) <= 180:
		hpMean = (h1p + h2p) / 2
	case h1p+h2p < 360:
		hpMean = (h1p + h2p + 360) / 2
	default:
		hpMean = (h1p + h2p - 360) / 2
	}

	t := 1 - 0.17*math.Cos(rad(hpMean-30)) +
		0.24*math.Cos(rad(2*hpMean)) +
		0.32*math.Cos(rad(3*hpMean+6)) -
		0.20*math.Cos(rad(4*hpMean-63))

	dTheta := 30 * math.Exp(-math.Pow((hpMean-275)/25, 2))
	cp7 := math.Pow(cpMean, 7)
	rc := 2 * math.Sqrt(cp7/(cp7+math.Pow(25, 7)))
	lm50 := (lpMean - 50) * (lpMean - 50)
	sl := 1 + 0.015*lm50/math.Sqrt(20+lm50)
	sc := 1 + 0.045*cpMean
	sh := 1 + 0.015*cpMean*t
	rt := -math.Sin(rad(2*dTheta)) * rc

	lTerm := dLp / (kL * sl)
	cTerm := dCp / (kC * sc)
	hTerm := dHp / (kH * sh)

	return math.Sqrt(lTerm*lTerm + cTerm*cTerm + hTerm*hTerm + rt*cTerm*hTerm)
}

func hueAngle(b, ap float64) float64 {
	if b == 0 && ap == 0 {
		return 0
	}
	h := math.Atan2(b, ap) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

// meanDeltaE computes the mean CIEDE2000 difference between two RGB images
// over the pixels selected by mask. An empty mask is zero difference.
func meanDeltaE(a, b *imaging.RGB, mask *Mask) float64 {
	total := 0.0
	count := 0
	for p, set := range mask.Bits {
		if !set {
			continue
		}
		i := p * 3
		la := rgbToLab(a.Pix[i], a.Pix[i+1], a.Pix[i+2])
		lb := rgbToLab(b.Pix[i], b.Pix[i+1], b.Pix[i+2])
		total += deltaE2000(la, lb)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

package post

import (
	"math"

	"github.com/coreman2200/latticebg/internal/scene"
)

// FilmicToneMap applies exposure (EV), the ACES approximation and an output
// gamma, in place. gamma <= 0 falls back to 2.2.
func FilmicToneMap(buf []scene.Color, exposureEV, gamma float64) {
	if gamma <= 0 {
		gamma = 2.2
	}
	exposure := float32(math.Pow(2.0, exposureEV))
	ig := 1.0 / gamma

	for i := range buf {
		r := acesApprox(buf[i].R * exposure)
		g := acesApprox(buf[i].G * exposure)
		b := acesApprox(buf[i].B * exposure)
		if gamma != 1.0 {
			r = powf(r, ig)
			g = powf(g, ig)
			b = powf(b, ig)
		}
		buf[i].R = clamp01(r)
		buf[i].G = clamp01(g)
		buf[i].B = clamp01(b)
	}
}

// DefaultToneMap is FilmicToneMap at EV 0 / gamma 2.2.
func DefaultToneMap(buf []scene.Color) { FilmicToneMap(buf, 0, 2.2) }

// Approximate ACES filmic curve (Narkowicz 2015).
func acesApprox(x float32) float32 {
	a := float32(2.51)
	b := float32(0.03)
	c := float32(2.43)
	d := float32(0.59)
	e := float32(0.14)
	return clamp01((x * (a*x + b)) / (x*(c*x+d) + e))
}

func powf(x float32, p float64) float32 {
	return float32(math.Pow(float64(x), p))
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

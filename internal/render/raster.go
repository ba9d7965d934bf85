package render

import (
	"image"
	"math"

	"github.com/coreman2200/latticebg/internal/scene"
)

type point2 struct{ x, y float64 }

// blend does src-over with scalar alpha.
func (e *Engine) blend(x, y int, c scene.Color, a float64) {
	if x < 0 || x >= e.w || y < 0 || y >= e.h || a <= 0 {
		return
	}
	i := y*e.w + x
	af := float32(a)
	e.buf[i].R = e.buf[i].R*(1-af) + c.R*af
	e.buf[i].G = e.buf[i].G*(1-af) + c.G*af
	e.buf[i].B = e.buf[i].B*(1-af) + c.B*af
}

// add accumulates light; used for edges, grid and the light splat so
// overlapping strokes brighten instead of occluding.
func (e *Engine) add(x, y int, c scene.Color, a float64) {
	if x < 0 || x >= e.w || y < 0 || y >= e.h || a <= 0 {
		return
	}
	i := y*e.w + x
	af := float32(a)
	e.buf[i].R += c.R * af
	e.buf[i].G += c.G * af
	e.buf[i].B += c.B * af
}

// drawLine rasterizes with a simple DDA walk; good enough at frame sizes
// this compositor targets.
func (e *Engine) drawLine(a, b point2, c scene.Color, alpha float64, additive bool) {
	dx := b.x - a.x
	dy := b.y - a.y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		steps = 1
	}
	sx := dx / float64(steps)
	sy := dy / float64(steps)
	x, y := a.x, a.y
	for i := 0; i <= steps; i++ {
		px, py := int(x+0.5), int(y+0.5)
		if additive {
			e.add(px, py, c, alpha)
		} else {
			e.blend(px, py, c, alpha)
		}
		x += sx
		y += sy
	}
}

func edgeFn(a, b, p point2) float64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// fillTriangle flat-fills via edge functions over the bounding box.
func (e *Engine) fillTriangle(p0, p1, p2 point2, c scene.Color, alpha float64) {
	area := edgeFn(p0, p1, p2)
	if area == 0 {
		return
	}
	if area < 0 {
		p1, p2 = p2, p1
		area = -area
	}
	minX := int(math.Floor(math.Min(p0.x, math.Min(p1.x, p2.x))))
	maxX := int(math.Ceil(math.Max(p0.x, math.Max(p1.x, p2.x))))
	minY := int(math.Floor(math.Min(p0.y, math.Min(p1.y, p2.y))))
	maxY := int(math.Ceil(math.Max(p0.y, math.Max(p1.y, p2.y))))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= e.w {
		maxX = e.w - 1
	}
	if maxY >= e.h {
		maxY = e.h - 1
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := point2{float64(x) + 0.5, float64(y) + 0.5}
			if edgeFn(p0, p1, p) >= 0 && edgeFn(p1, p2, p) >= 0 && edgeFn(p2, p0, p) >= 0 {
				e.blend(x, y, c, alpha)
			}
		}
	}
}

// texTriangle fills with affine texture mapping; per-texel alpha multiplies
// the plane opacity.
func (e *Engine) texTriangle(p0, p1, p2 point2, uv0, uv1, uv2 point2, tex *image.NRGBA, alpha float64) {
	area := edgeFn(p0, p1, p2)
	if area == 0 || tex == nil {
		return
	}
	if area < 0 {
		p1, p2 = p2, p1
		uv1, uv2 = uv2, uv1
		area = -area
	}
	tb := tex.Bounds()
	tw, th := tb.Dx(), tb.Dy()

	minX := int(math.Floor(math.Min(p0.x, math.Min(p1.x, p2.x))))
	maxX := int(math.Ceil(math.Max(p0.x, math.Max(p1.x, p2.x))))
	minY := int(math.Floor(math.Min(p0.y, math.Min(p1.y, p2.y))))
	maxY := int(math.Ceil(math.Max(p0.y, math.Max(p1.y, p2.y))))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= e.w {
		maxX = e.w - 1
	}
	if maxY >= e.h {
		maxY = e.h - 1
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := point2{float64(x) + 0.5, float64(y) + 0.5}
			w0 := edgeFn(p1, p2, p)
			w1 := edgeFn(p2, p0, p)
			w2 := edgeFn(p0, p1, p)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			u := (w0*uv0.x + w1*uv1.x + w2*uv2.x) / area
			v := (w0*uv0.y + w1*uv1.y + w2*uv2.y) / area
			tx := int(u * float64(tw))
			ty := int(v * float64(th))
			if tx < 0 {
				tx = 0
			}
			if ty < 0 {
				ty = 0
			}
			if tx >= tw {
				tx = tw - 1
			}
			if ty >= th {
				ty = th - 1
			}
			o := tex.PixOffset(tb.Min.X+tx, tb.Min.Y+ty)
			pix := tex.Pix[o : o+4 : o+4]
			a := alpha * float64(pix[3]) / 255
			if a <= 0 {
				continue
			}
			c := scene.Color{
				R: float32(pix[0]) / 255,
				G: float32(pix[1]) / 255,
				B: float32(pix[2]) / 255,
			}
			e.blend(x, y, c, a)
		}
	}
}

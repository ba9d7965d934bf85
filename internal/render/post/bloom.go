package post

import "github.com/coreman2200/latticebg/internal/scene"

// Bloom is the glow pass: bright-pass threshold into a reduced-resolution
// buffer, separable blur, additive recombine. Scale sets the working
// resolution relative to the target (dropped to 0.6 on small viewports).
type Bloom struct {
	Strength  float64
	Radius    float64
	Threshold float64
	Scale     float64

	sw, sh int
	small  []scene.Color
	tmp    []scene.Color
}

func NewBloom(strength, radius, threshold, scale float64) *Bloom {
	return &Bloom{Strength: strength, Radius: radius, Threshold: threshold, Scale: scale}
}

// Rescale rebuilds the working buffers for a new target size. Must be called
// together with the target resize so pass resolution never goes stale.
func (b *Bloom) Rescale(w, h int) {
	if b.Scale <= 0 {
		b.Scale = 0.5
	}
	b.sw = int(float64(w) * b.Scale)
	b.sh = int(float64(h) * b.Scale)
	if b.sw < 1 {
		b.sw = 1
	}
	if b.sh < 1 {
		b.sh = 1
	}
	b.small = make([]scene.Color, b.sw*b.sh)
	b.tmp = make([]scene.Color, b.sw*b.sh)
}

// PassSize reports the current working resolution.
func (b *Bloom) PassSize() (int, int) { return b.sw, b.sh }

// Apply runs the pass over buf (w*h, linear). Pixels at or below the
// threshold contribute exactly nothing.
func (b *Bloom) Apply(buf []scene.Color, w, h int) {
	if b.Strength <= 0 || len(buf) < w*h {
		return
	}
	if b.small == nil || b.sw == 0 || b.sh == 0 {
		b.Rescale(w, h)
	}
	thr := float32(b.Threshold)

	// Bright-pass downsample: box-average each source block, then subtract
	// the threshold per channel.
	for sy := 0; sy < b.sh; sy++ {
		y0 := sy * h / b.sh
		y1 := (sy + 1) * h / b.sh
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for sx := 0; sx < b.sw; sx++ {
			x0 := sx * w / b.sw
			x1 := (sx + 1) * w / b.sw
			if x1 <= x0 {
				x1 = x0 + 1
			}
			var r, g, bl float32
			n := float32((y1 - y0) * (x1 - x0))
			for y := y0; y < y1; y++ {
				row := y * w
				for x := x0; x < x1; x++ {
					c := buf[row+x]
					r += c.R
					g += c.G
					bl += c.B
				}
			}
			b.small[sy*b.sw+sx] = scene.Color{
				R: bright(r/n, thr),
				G: bright(g/n, thr),
				B: bright(bl/n, thr),
			}
		}
	}

	// Separable 1-4-1 blur, repeated to approximate the radius.
	passes := int(b.Radius + 0.5)
	if passes < 1 {
		passes = 1
	}
	for p := 0; p < passes; p++ {
		b.blurPass()
	}

	// Additive recombine with nearest upsample.
	s := float32(b.Strength)
	for y := 0; y < h; y++ {
		sy := y * b.sh / h
		row := y * w
		srow := sy * b.sw
		for x := 0; x < w; x++ {
			sx := x * b.sw / w
			g := b.small[srow+sx]
			buf[row+x].R += g.R * s
			buf[row+x].G += g.G * s
			buf[row+x].B += g.B * s
		}
	}
}

func bright(v, thr float32) float32 {
	v -= thr
	if v < 0 {
		return 0
	}
	return v
}

func (b *Bloom) blurPass() {
	w, h := b.sw, b.sh
	clampi := func(x, lo, hi int) int {
		if x < lo {
			return lo
		}
		if x > hi {
			return hi
		}
		return x
	}
	// horizontal
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			l := b.small[row+clampi(x-1, 0, w-1)]
			c := b.small[row+x]
			r := b.small[row+clampi(x+1, 0, w-1)]
			b.tmp[row+x] = scene.Color{
				R: (l.R + 4*c.R + r.R) / 6,
				G: (l.G + 4*c.G + r.G) / 6,
				B: (l.B + 4*c.B + r.B) / 6,
			}
		}
	}
	// vertical
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := b.tmp[clampi(y-1, 0, h-1)*w+x]
			c := b.tmp[y*w+x]
			u := b.tmp[clampi(y+1, 0, h-1)*w+x]
			b.small[y*w+x] = scene.Color{
				R: (d.R + 4*c.R + u.R) / 6,
				G: (d.G + 4*c.G + u.G) / 6,
				B: (d.B + 4*c.B + u.B) / 6,
			}
		}
	}
}

// Pipeline groups the post stages; both are optional.
type Pipeline struct {
	Bloom   *Bloom
	ToneMap func([]scene.Color)
}

func (p Pipeline) Apply(buf []scene.Color, w, h int) {
	if p.Bloom != nil {
		p.Bloom.Apply(buf, w, h)
	}
	if p.ToneMap != nil {
		p.ToneMap(buf)
	}
}

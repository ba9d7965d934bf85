// Package render is the software compositor: it projects the scene graph
// into a linear framebuffer, runs the post pipeline (bloom, tone map) and
// packs 8-bit RGBA frames for the drivers.
package render

import (
	"math"
	"sort"

	"github.com/coreman2200/latticebg/internal/render/post"
	"github.com/coreman2200/latticebg/internal/scene"
)

// Frame is one finished RGBA frame. Pix is reused between frames; drivers
// must copy if they hold on to it.
type Frame struct {
	W, H int
	Pix  []byte
}

type Engine struct {
	w, h       int
	buf        []scene.Color
	frame      Frame
	post       post.Pipeline
	Background scene.Color
}

func NewEngine(w, h int, p post.Pipeline) *Engine {
	e := &Engine{
		post:       p,
		Background: scene.Color{R: 0.012, G: 0.014, B: 0.035},
	}
	e.Resize(w, h)
	return e
}

func (e *Engine) Size() (int, int) { return e.w, e.h }

// Bloom exposes the bloom stage so the resize path can retune its scale
// before rebuilding; may be nil.
func (e *Engine) Bloom() *post.Bloom { return e.post.Bloom }

func (e *Engine) SetPost(p post.Pipeline) {
	e.post = p
	if e.post.Bloom != nil {
		e.post.Bloom.Rescale(e.w, e.h)
	}
}

// Resize rebuilds the target and the post-pass resolution together.
func (e *Engine) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	e.w, e.h = w, h
	e.buf = make([]scene.Color, w*h)
	e.frame = Frame{W: w, H: h, Pix: make([]byte, w*h*4)}
	if e.post.Bloom != nil {
		e.post.Bloom.Rescale(w, h)
	}
}

// RenderOnce draws the already-updated scene and returns the packed frame.
func (e *Engine) RenderOnce(sc *scene.Scene) *Frame {
	for i := range e.buf {
		e.buf[i] = e.Background
	}

	v := newView(sc.Camera, e.w, e.h)
	e.drawGrid(sc, v)
	e.drawCubes(sc, v)
	e.drawLight(sc, v)
	e.drawLogo(sc, v)

	e.post.Apply(e.buf, e.w, e.h)
	e.pack()
	return &e.frame
}

func (e *Engine) pack() {
	for i, c := range e.buf {
		e.frame.Pix[i*4+0] = to8(c.R)
		e.frame.Pix[i*4+1] = to8(c.G)
		e.frame.Pix[i*4+2] = to8(c.B)
		e.frame.Pix[i*4+3] = 0xFF
	}
}

func to8(x float32) byte {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return byte(x*255 + 0.5)
}

func (e *Engine) drawGrid(sc *scene.Scene, v view) {
	g := sc.Grid
	if g.Spacing <= 0 || g.Extent <= 0 {
		return
	}
	// Lines parallel to X scroll toward the camera by the looping offset;
	// lines parallel to Z stay fixed, which reads as an endless conveyor.
	for z := -g.Extent; z <= g.Extent+g.Spacing; z += g.Spacing {
		zz := z + g.Offset
		a := scene.Vec3{X: -g.Extent, Y: g.Y, Z: zz}
		b := scene.Vec3{X: g.Extent, Y: g.Y, Z: zz}
		e.gridLine(a, b, v, g.Color)
	}
	for x := -g.Extent; x <= g.Extent; x += g.Spacing {
		a := scene.Vec3{X: x, Y: g.Y, Z: -g.Extent}
		b := scene.Vec3{X: x, Y: g.Y, Z: g.Extent}
		e.gridLine(a, b, v, g.Color)
	}
}

func (e *Engine) gridLine(a, b scene.Vec3, v view, c scene.Color) {
	ax, ay, _, aok := v.project(a)
	bx, by, _, bok := v.project(b)
	if !aok || !bok {
		return
	}
	e.drawLine(point2{ax, ay}, point2{bx, by}, c, 0.5, true)
}

func (e *Engine) drawCubes(sc *scene.Scene, v view) {
	half := sc.CubeSize / 2
	if half <= 0 {
		half = 0.5
	}

	type drawable struct {
		c     *scene.Cube
		depth float64
	}
	order := make([]drawable, 0, len(sc.Cubes))
	for _, c := range sc.Cubes {
		if c.Opacity <= 0 {
			continue
		}
		center := groupTransform(c.Pos, sc.GroupYaw, sc.GroupPitch)
		order = append(order, drawable{c, v.depth(center)})
	}
	// painter's order, back to front
	sort.Slice(order, func(i, j int) bool { return order[i].depth > order[j].depth })

	var world [8]scene.Vec3
	var pts [8]point2
	var vis [8]bool
	for _, d := range order {
		c := d.c
		for i := 0; i < 8; i++ {
			world[i] = groupTransform(scene.CornerWorld(c, i, half), sc.GroupYaw, sc.GroupPitch)
			x, y, _, ok := v.project(world[i])
			pts[i] = point2{x, y}
			vis[i] = ok
		}

		// front-facing solid faces, lit by the point light
		for _, f := range scene.Faces {
			if !vis[f[0]] || !vis[f[1]] || !vis[f[2]] || !vis[f[3]] {
				continue
			}
			n := faceNormal(world[f[0]], world[f[1]], world[f[2]])
			centerF := world[f[0]].Add(world[f[2]]).Scale(0.5)
			if n.Dot(v.pos.Sub(centerF)) <= 0 {
				continue
			}
			col := e.shadeFace(sc, n, centerF)
			e.fillTriangle(pts[f[0]], pts[f[1]], pts[f[2]], col, c.Opacity)
			e.fillTriangle(pts[f[0]], pts[f[2]], pts[f[3]], col, c.Opacity)
		}

		// wireframe child on top, additive
		ec := c.Edge.Color
		ea := c.Edge.Opacity * 0.9
		for _, edge := range scene.Edges {
			if !vis[edge[0]] || !vis[edge[1]] {
				continue
			}
			e.drawLine(pts[edge[0]], pts[edge[1]], ec, ea, true)
		}
	}
}

func faceNormal(a, b, c scene.Vec3) scene.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

func (e *Engine) shadeFace(sc *scene.Scene, n, center scene.Vec3) scene.Color {
	const ambient = 0.55
	shade := ambient
	if sc.Light.Intensity > 0 {
		toLight := sc.Light.Pos.Sub(center)
		dist := toLight.Length()
		if dist > 0 {
			lambert := n.Dot(toLight.Scale(1 / dist))
			if lambert > 0 {
				shade += lambert * sc.Light.Intensity / (1 + 0.08*dist*dist)
			}
		}
	}
	return sc.FillColor.Scale(float32(shade))
}

func (e *Engine) drawLight(sc *scene.Scene, v view) {
	if sc.Light.Intensity <= 0 {
		return
	}
	x, y, z, ok := v.project(sc.Light.Pos)
	if !ok {
		return
	}
	r := v.fl * 0.5 / z * (sc.Light.Intensity / 10)
	if r < 1 {
		return
	}
	c := sc.Light.Color
	gain := sc.Light.Intensity * 0.12
	ri := int(r + 1)
	cx, cy := int(x), int(y)
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d > r {
				continue
			}
			f := 1 - d/r
			e.add(cx+dx, cy+dy, c, gain*f*f)
		}
	}
}

func (e *Engine) drawLogo(sc *scene.Scene, v view) {
	l := sc.Logo
	if l.Opacity <= 0 || l.Tex == nil || l.Size <= 0 {
		return
	}
	// billboard: span the camera's own right/up axes so it always faces it
	halfH := l.Size / 2
	halfW := halfH
	if b := l.Tex.Bounds(); b.Dy() > 0 {
		halfW = halfH * float64(b.Dx()) / float64(b.Dy())
	}
	r := v.right.Scale(halfW)
	u := v.up.Scale(halfH)

	tl := l.Pos.Sub(r).Add(u)
	tr := l.Pos.Add(r).Add(u)
	br := l.Pos.Add(r).Sub(u)
	bl := l.Pos.Sub(r).Sub(u)

	p0x, p0y, _, ok0 := v.project(tl)
	p1x, p1y, _, ok1 := v.project(tr)
	p2x, p2y, _, ok2 := v.project(br)
	p3x, p3y, _, ok3 := v.project(bl)
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return
	}
	p0 := point2{p0x, p0y}
	p1 := point2{p1x, p1y}
	p2 := point2{p2x, p2y}
	p3 := point2{p3x, p3y}
	e.texTriangle(p0, p1, p2, point2{0, 0}, point2{1, 0}, point2{1, 1}, l.Tex, l.Opacity)
	e.texTriangle(p0, p2, p3, point2{0, 0}, point2{1, 1}, point2{0, 1}, l.Tex, l.Opacity)
}

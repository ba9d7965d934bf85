// Package window is the desktop preview: an ebiten window standing in for
// the page canvas. The wheel plays the role of document scroll, the cursor
// feeds the parallax tracker and minimizing maps to tab visibility.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/coreman2200/latticebg/internal/render"
)

// Host is the application side of the preview loop. Step runs one frame and
// returns the packed result, or nil when the loop is hidden or unchanged.
type Host interface {
	Step() *render.Frame
	Scrolled(deltaPx float64)
	PointerMoved(x, y, w, h float64)
	Resized(w, h int)
	SetVisible(visible bool)
}

// wheelStep converts one wheel notch into synthetic scroll pixels.
const wheelStep = 60.0

type game struct {
	host    Host
	w, h    int
	visible bool
	last    *render.Frame
	img     *ebiten.Image
}

// Run opens the window and hands the loop to ebiten; it blocks until the
// window closes.
func Run(h Host, title string, w, hgt, tps int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, hgt)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if tps > 0 {
		ebiten.SetTPS(tps)
	}
	g := &game{host: h, w: w, h: hgt, visible: true}
	h.Resized(w, hgt)
	return ebiten.RunGame(g)
}

func (g *game) Update() error {
	if vis := !ebiten.IsWindowMinimized(); vis != g.visible {
		g.visible = vis
		g.host.SetVisible(vis)
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.host.Scrolled(-dy * wheelStep)
	}
	cx, cy := ebiten.CursorPosition()
	g.host.PointerMoved(float64(cx), float64(cy), float64(g.w), float64(g.h))

	if w, h := ebiten.WindowSize(); (w != g.w || h != g.h) && w > 0 && h > 0 {
		g.w, g.h = w, h
		g.host.Resized(w, h)
	}

	if f := g.host.Step(); f != nil {
		g.last = f
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	f := g.last
	if f == nil {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != f.W || g.img.Bounds().Dy() != f.H {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(f.W, f.H)
	}
	g.img.WritePixels(f.Pix)

	op := &ebiten.DrawImageOptions{}
	sw := float64(screen.Bounds().Dx()) / float64(f.W)
	sh := float64(screen.Bounds().Dy()) / float64(f.H)
	op.GeoM.Scale(sw, sh)
	screen.DrawImage(g.img, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

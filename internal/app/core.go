// Package app wires the lattice background together: config into scene,
// trackers into the frame loop, finished frames out to the sinks. Core is
// both the ws control target and the preview window host.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/latticebg/internal/anim"
	"github.com/coreman2200/latticebg/internal/config"
	diag "github.com/coreman2200/latticebg/internal/diagnostics"
	"github.com/coreman2200/latticebg/internal/driver"
	"github.com/coreman2200/latticebg/internal/layout"
	"github.com/coreman2200/latticebg/internal/render"
	"github.com/coreman2200/latticebg/internal/render/post"
	"github.com/coreman2200/latticebg/internal/scene"
	"github.com/coreman2200/latticebg/internal/track"
)

const (
	resizeDebounce = 150 * time.Millisecond

	cubeSize = 1.0

	// Preview window mode synthesizes a document of this many viewport
	// heights for the wheel to scroll through.
	virtualPages = 4.0
)

type Core struct {
	cfg *config.Config

	mu     sync.Mutex
	scene  *scene.Scene
	state  anim.State
	engine *render.Engine

	scroll  *track.Scroll
	pointer *track.Pointer
	vis     *track.Visibility
	resize  *track.Debouncer

	sinks   []driver.Driver
	start   time.Time
	reduced bool
	wheelY  float64

	// Diags collects startup degradations (e.g. a missing logo texture) so
	// the caller can forward them to the diag stream once it exists.
	Diags []diag.Diagnostic
}

func New(cfg *config.Config) (*Core, error) {
	palette, err := config.ParsePalette(cfg.Lattice.Palette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	cubes := layout.Generate(layout.Params{
		Size:    cfg.Lattice.Size,
		Step:    cfg.Lattice.Step,
		SpinMax: cfg.Lattice.SpinMax,
		Seed:    cfg.Lattice.Seed,
		Palette: palette,
	})

	sc := scene.New(cubes, scene.Options{
		CubeSize:  cubeSize,
		FillColor: scene.Color{R: 0.05, G: 0.07, B: 0.12},
		LogoSize:  cfg.Logo.Size,
		LogoDepth: cfg.Logo.Depth,
		CameraZ:   cfg.Camera.Z,
		FOV:       cfg.Camera.FOV,
		LightCol:  scene.Color{R: 1, G: 1, B: 1},
	})

	c := &Core{
		cfg:     cfg,
		scene:   sc,
		scroll:  track.NewScroll(),
		pointer: track.NewPointer(),
		vis:     track.NewVisibility(),
		resize:  track.NewDebouncer(resizeDebounce),
		start:   time.Now(),
	}

	tex, err := scene.LoadTexture(cfg.Logo.Texture)
	if err != nil {
		// Degraded, not fatal: the logo plane stays transparent.
		log.Warn().Err(err).Str("path", cfg.Logo.Texture).Msg("logo texture unavailable")
		c.Diags = append(c.Diags, diag.Diagnostic{
			Severity: diag.Warn,
			Code:     "ASSET.LOGO",
			Summary:  "Logo texture unavailable, plane renders transparent",
			Detail:   err.Error(),
			Evidence: map[string]any{"path": cfg.Logo.Texture},
		})
	}
	sc.Logo.Tex = tex

	bloom := post.NewBloom(cfg.Bloom.Strength, cfg.Bloom.Radius, cfg.Bloom.Threshold, 1)
	w := int(float64(cfg.Canvas.W) * cfg.Canvas.DPR)
	h := int(float64(cfg.Canvas.H) * cfg.Canvas.DPR)
	c.engine = render.NewEngine(w, h, post.Pipeline{Bloom: bloom, ToneMap: post.DefaultToneMap})
	return c, nil
}

// AddSink registers a frame consumer. Not safe to call once the loop runs.
func (c *Core) AddSink(d driver.Driver) { c.sinks = append(c.sinks, d) }

// Step runs one frame: snapshot the trackers, advance the scene, render,
// fan out. While the tab is hidden it does nothing and returns nil; the
// caller keeps scheduling.
func (c *Core) Step() *render.Frame {
	if !c.vis.Visible() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, viewportH, progress := c.scroll.Snapshot()
	px, py := c.pointer.Offset()
	anim.Advance(c.scene, &c.state, anim.FrameInput{
		Elapsed:   time.Since(c.start).Seconds(),
		Target:    progress,
		RawScroll: raw,
		ViewportH: viewportH,
		PointerX:  px,
		PointerY:  py,
		Reduced:   c.reduced,
	})

	f := c.engine.RenderOnce(c.scene)
	for _, d := range c.sinks {
		if err := d.Write(f); err != nil {
			log.Debug().Err(err).Msg("sink write")
		}
	}
	return f
}

// RunLoop drives Step at the configured rate until ctx is canceled. Used by
// the headless (ws/ledwall) modes; window mode lets ebiten drive instead.
func (c *Core) RunLoop(ctx context.Context) {
	fps := c.cfg.FPS
	if fps < 1 {
		fps = 1
	}
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Step()
		}
	}
}

func (c *Core) Close() error {
	c.resize.Stop()
	for _, d := range c.sinks {
		if err := d.Close(); err != nil {
			log.Debug().Err(err).Msg("sink close")
		}
	}
	return nil
}

// --- ws.Control ---

func (c *Core) ScrollEvent(y, docHeight, viewportH float64) {
	c.scroll.SetRange(docHeight, viewportH)
	c.scroll.SetOffset(y)
}

func (c *Core) PointerEvent(x, y, w, h float64) {
	c.pointer.SetPosition(x, y, w, h)
}

// ViewportEvent is debounced: only the trailing event of a resize burst
// reconfigures the target.
func (c *Core) ViewportEvent(w, h int, dpr float64) {
	c.resize.Trigger(func() { c.applyViewport(w, h, dpr) })
}

func (c *Core) SetVisible(visible bool) { c.vis.Set(visible) }

func (c *Core) applyViewport(w, h int, dpr float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reduced := w <= c.cfg.Mobile.Breakpoint
	c.reduced = reduced
	if dpr <= 0 {
		dpr = 1
	}
	if reduced && dpr > c.cfg.Mobile.DPRCap {
		dpr = c.cfg.Mobile.DPRCap
	}

	if b := c.engine.Bloom(); b != nil {
		if reduced {
			b.Scale = c.cfg.Mobile.BloomScale
		} else {
			b.Scale = 1
		}
	}
	if reduced {
		c.scene.Logo.Size = c.cfg.Logo.MobileSize
	} else {
		c.scene.Logo.Size = c.cfg.Logo.Size
	}

	c.engine.Resize(int(float64(w)*dpr), int(float64(h)*dpr))
	log.Debug().Int("w", w).Int("h", h).Float64("dpr", dpr).Bool("reduced", reduced).Msg("viewport applied")
}

// --- window.Host (Step and SetVisible shared with ws.Control) ---

func (c *Core) Scrolled(deltaPx float64) {
	c.mu.Lock()
	c.wheelY += deltaPx
	if c.wheelY < 0 {
		c.wheelY = 0
	}
	y := c.wheelY
	c.mu.Unlock()
	c.scroll.SetOffset(y)
}

func (c *Core) PointerMoved(x, y, w, h float64) {
	c.pointer.SetPosition(x, y, w, h)
}

func (c *Core) Resized(w, h int) {
	c.scroll.SetRange(float64(h)*virtualPages, float64(h))
	c.ViewportEvent(w, h, c.cfg.Canvas.DPR)
}

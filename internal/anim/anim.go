package anim

import (
	"math"

	"github.com/coreman2200/latticebg/internal/scene"
)

// Per-frame constants. Rates are fractions per frame (see approach).
const (
	progressRate = 0.1
	cameraRate   = 0.05

	footerStart = 0.85
	footerSpan  = 0.15
	footerShift = 15.0

	expansionGain  = 6.0
	scrollSpinGain = 0.02

	groupYawRate  = 0.15
	groupPitchHz  = 0.3
	groupPitchAmp = 0.1

	// Logo reveal saturates after 1.2 viewport heights of raw scroll; the
	// light stays dark until reveal clears the gate, then ramps to full.
	revealSpan = 1.2
	bloomGate  = 0.7
	lightPeak  = 10.0

	gridSpeed = 4.0
	gridLoop  = 10.0

	camXGain      = 5.0
	camYBase      = 2.0
	camYGain      = 5.0
	logoLiftSmall = 0.4
)

// FrameInput is assembled by the host loop each frame and passed by value;
// the updater reads nothing else. Target is the scroll progress already
// clamped to [0,1] by the tracker; RawScroll and ViewportH are in CSS px.
type FrameInput struct {
	Elapsed   float64
	Target    float64
	RawScroll float64
	ViewportH float64
	PointerX  float64
	PointerY  float64
	Reduced   bool
}

// State carries the smoothed values that persist between frames.
type State struct {
	Progress float64
}

// FooterPhase returns the vertical shift and global fade for smoothed
// progress p. Both are exact at the zone edges: offset 0 / fade 1 for
// p <= 0.85, fade 0 at p = 1.
func FooterPhase(p float64) (offset, fadeOut float64) {
	if p <= footerStart {
		return 0, 1
	}
	fp := clamp01((p - footerStart) / footerSpan)
	return fp * footerShift, 1 - fp
}

// Expansion is linear in smoothed progress: 1 at rest, 7 fully scrolled.
func Expansion(p float64) float64 { return 1 + p*expansionGain }

// Reveal maps raw scroll to logo visibility: eased quadratically, saturating
// after revealSpan viewport heights. Driven by raw scroll rather than the
// smoothed progress so it stays decoupled from the footer transition scale.
func Reveal(rawScroll, viewportH float64) float64 {
	if viewportH <= 0 {
		return 0
	}
	return easeInQuad(clamp01(rawScroll / (viewportH * revealSpan)))
}

// BloomFactor is exactly 0 until reveal passes the gate, then ramps linearly
// to 1 over the remaining range.
func BloomFactor(reveal float64) float64 {
	if reveal <= bloomGate {
		return 0
	}
	return clamp01((reveal - bloomGate) / (1 - bloomGate))
}

// Advance is the per-frame transform: it smooths progress, then mutates
// every node of the scene graph in place. It owns no hidden state beyond st.
func Advance(sc *scene.Scene, st *State, in FrameInput) {
	st.Progress = approach(st.Progress, clamp01(in.Target), progressRate)
	p := st.Progress

	footerOffset, fadeOut := FooterPhase(p)
	exp := Expansion(p)

	for _, c := range sc.Cubes {
		c.Pos = scene.Vec3{
			X: c.Home.X * exp,
			Y: c.Home.Y*exp + footerOffset,
			Z: c.Home.Z * exp,
		}
		d := c.Spin + p*scrollSpinGain
		c.RotX += d
		c.RotY += d
		c.Opacity = fadeOut
		c.Edge.Opacity = fadeOut
	}

	// Slow continuous wobble of the whole lattice, independent of scroll.
	sc.GroupYaw = in.Elapsed * groupYawRate
	sc.GroupPitch = math.Sin(in.Elapsed*groupPitchHz) * groupPitchAmp

	reveal := Reveal(in.RawScroll, in.ViewportH)
	sc.Logo.Opacity = reveal * fadeOut
	sc.Light.Intensity = BloomFactor(reveal) * lightPeak * fadeOut

	lift := 0.0
	if in.Reduced {
		lift = logoLiftSmall
	}
	sc.Logo.Pos.X = 0
	sc.Logo.Pos.Y = footerOffset + lift
	sc.Light.Pos = sc.Logo.Pos
	sc.Light.Pos.Z = sc.Logo.Pos.Z + 1

	sc.Camera.Pos.X = approach(sc.Camera.Pos.X, in.PointerX*camXGain, cameraRate)
	sc.Camera.Pos.Y = approach(sc.Camera.Pos.Y, camYBase-in.PointerY*camYGain, cameraRate)

	sc.Grid.Offset = math.Mod(in.Elapsed*gridSpeed, gridLoop)
}

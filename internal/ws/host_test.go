package ws

import (
	"encoding/json"
	"testing"

	"github.com/coreman2200/latticebg/internal/render"
)

type fakeControl struct {
	scrollY, docH, viewH float64
	px, py, pw, ph       float64
	vw, vh               int
	dpr                  float64
	visible              bool
	visibleSet           bool
}

func (f *fakeControl) ScrollEvent(y, docHeight, viewportH float64) {
	f.scrollY, f.docH, f.viewH = y, docHeight, viewportH
}
func (f *fakeControl) PointerEvent(x, y, w, h float64) { f.px, f.py, f.pw, f.ph = x, y, w, h }
func (f *fakeControl) ViewportEvent(w, h int, dpr float64) {
	f.vw, f.vh, f.dpr = w, h, dpr
}
func (f *fakeControl) SetVisible(v bool) { f.visible = v; f.visibleSet = true }

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

func TestControlScroll(t *testing.T) {
	fc := &fakeControl{}
	h := NewHost(fc, 60)
	h.applyControl(decode(t, `{"scroll":{"y":250,"docHeight":3000,"viewportHeight":900}}`))
	if fc.scrollY != 250 || fc.docH != 3000 || fc.viewH != 900 {
		t.Fatalf("scroll not forwarded: %+v", fc)
	}
}

func TestControlPointerAndViewport(t *testing.T) {
	fc := &fakeControl{}
	h := NewHost(fc, 60)
	h.applyControl(decode(t, `{"pointer":{"x":100,"y":450,"w":400,"h":900},"viewport":{"w":400,"h":900,"dpr":2}}`))
	if fc.px != 100 || fc.ph != 900 {
		t.Fatalf("pointer not forwarded: %+v", fc)
	}
	if fc.vw != 400 || fc.vh != 900 || fc.dpr != 2 {
		t.Fatalf("viewport not forwarded: %+v", fc)
	}
}

func TestControlViewportDefaultsDPR(t *testing.T) {
	fc := &fakeControl{}
	h := NewHost(fc, 60)
	h.applyControl(decode(t, `{"viewport":{"w":400,"h":900}}`))
	if fc.dpr != 1 {
		t.Fatalf("missing dpr should default to 1, got %v", fc.dpr)
	}
}

func TestControlVisible(t *testing.T) {
	fc := &fakeControl{visible: true}
	h := NewHost(fc, 60)
	h.applyControl(decode(t, `{"visible":false}`))
	if !fc.visibleSet || fc.visible {
		t.Fatalf("visibility not forwarded: %+v", fc)
	}
}

func TestControlUnknownKeysIgnored(t *testing.T) {
	fc := &fakeControl{}
	h := NewHost(fc, 60)
	h.applyControl(decode(t, `{"brightness":0.5,"runTest":"sweep"}`))
	if fc.visibleSet || fc.scrollY != 0 {
		t.Fatalf("unknown keys should be ignored: %+v", fc)
	}
}

func TestWriteWithoutClients(t *testing.T) {
	h := NewHost(&fakeControl{}, 60)
	f := &render.Frame{W: 2, H: 2, Pix: make([]byte, 16)}
	for i := 0; i < 3; i++ {
		if err := h.Write(f); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

// Package track caches the host-document observations (scroll, pointer,
// viewport, visibility) between frames. Events arrive on transport
// goroutines and only overwrite scalars: latest value wins, nothing queues.
package track

import "sync"

// Scroll tracks raw scroll offset against the scrollable range.
type Scroll struct {
	mu        sync.Mutex
	raw       float64
	total     float64
	viewportH float64
}

func NewScroll() *Scroll {
	return &Scroll{total: 1}
}

// SetRange recomputes the denominator from document layout. Called on load
// and on (debounced) resize.
func (s *Scroll) SetRange(docHeight, viewportHeight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := docHeight - viewportHeight
	if t < 1 {
		t = 1
	}
	s.total = t
	s.viewportH = viewportHeight
}

// SetOffset records the latest raw scroll position. Never debounced.
func (s *Scroll) SetOffset(y float64) {
	s.mu.Lock()
	s.raw = y
	s.mu.Unlock()
}

// Progress returns clamp(raw/total, 0, 1).
func (s *Scroll) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.raw / s.total
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Snapshot returns raw offset, viewport height and clamped progress in one
// consistent read for the frame callback.
func (s *Scroll) Snapshot() (raw, viewportH, progress float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.raw / s.total
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return s.raw, s.viewportH, p
}

// Pointer caches the pointer position as a normalized offset around the
// viewport center, roughly [-0.5,0.5] on both axes.
type Pointer struct {
	mu   sync.Mutex
	x, y float64
}

func NewPointer() *Pointer { return &Pointer{} }

// SetPosition takes viewport-space coordinates plus the viewport size.
func (p *Pointer) SetPosition(px, py, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	p.mu.Lock()
	p.x = px/w - 0.5
	p.y = py/h - 0.5
	p.mu.Unlock()
}

func (p *Pointer) Offset() (x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y
}

// Visibility is the tab-visibility flag. The frame callback keeps
// rescheduling while hidden but skips mutation and drawing.
type Visibility struct {
	mu      sync.Mutex
	visible bool
}

func NewVisibility() *Visibility { return &Visibility{visible: true} }

func (v *Visibility) Set(visible bool) {
	v.mu.Lock()
	v.visible = visible
	v.mu.Unlock()
}

func (v *Visibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

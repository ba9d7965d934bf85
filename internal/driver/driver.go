// Package driver abstracts the frame sinks: the websocket canvas stream,
// the desktop preview window and the LED wall.
package driver

import "github.com/coreman2200/latticebg/internal/render"

type Driver interface {
	// Write pushes one finished frame. Implementations must copy Pix if
	// they keep it past the call.
	Write(f *render.Frame) error
	// Close releases resources.
	Close() error
}

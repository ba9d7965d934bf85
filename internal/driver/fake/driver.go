package fake

import (
	"fmt"

	"github.com/coreman2200/latticebg/internal/render"
)

// Driver keeps a compact summary of written frames, useful for headless
// runs and tests.
type Driver struct {
	Count int
	Last  []byte
	Quiet bool
}

func (d *Driver) Write(f *render.Frame) error {
	d.Count++
	d.Last = append(d.Last[:0], f.Pix...)

	if d.Quiet {
		return nil
	}
	var r, g, b float64
	for i := 0; i < len(f.Pix); i += 4 {
		r += float64(f.Pix[i])
		g += float64(f.Pix[i+1])
		b += float64(f.Pix[i+2])
	}
	n := float64(len(f.Pix) / 4)
	if n == 0 {
		n = 1
	}
	fmt.Printf("[frame %04d] %dx%d avg=(%.1f,%.1f,%.1f)\n",
		d.Count, f.W, f.H, r/n/255, g/n/255, b/n/255)
	return nil
}

func (d *Driver) Close() error { return nil }

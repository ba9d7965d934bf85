// Package ledwall mirrors the page background onto an NRZ LED strip lining
// the physical booth display. Frames are collapsed to one pixel per LED.
package ledwall

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/coreman2200/latticebg/internal/render"
)

const refreshRate physic.Frequency = 800

type Wall struct {
	pixels int
	drawer display.Drawer
	SPI    bool
	img    *image.NRGBA
}

// New opens the first SPI port and attaches the NRZ driver. Without SPI
// hardware it degrades to periph's terminal screen device so the animation
// stays observable.
func New(pixels int) (*Wall, error) {
	if pixels <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", pixels)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}

	w := &Wall{
		pixels: pixels,
		img:    image.NewNRGBA(image.Rect(0, 0, pixels, 1)),
	}

	port, err := spireg.Open("")
	if err != nil {
		w.drawer = screen.New(pixels)
		return w, nil
	}

	opts := nrzled.Opts{
		NumPixels: pixels,
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	}
	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	dev.Halt()
	w.SPI = true
	w.drawer = dev
	return w, nil
}

// Write collapses the frame to the strip: each LED gets the average of its
// vertical slice.
func (w *Wall) Write(f *render.Frame) error {
	if f.W == 0 || f.H == 0 {
		return nil
	}
	for i := 0; i < w.pixels; i++ {
		x0 := i * f.W / w.pixels
		x1 := (i + 1) * f.W / w.pixels
		if x1 <= x0 {
			x1 = x0 + 1
		}
		var r, g, b int
		n := 0
		for y := 0; y < f.H; y++ {
			row := y * f.W * 4
			for x := x0; x < x1 && x < f.W; x++ {
				o := row + x*4
				r += int(f.Pix[o])
				g += int(f.Pix[o+1])
				b += int(f.Pix[o+2])
				n++
			}
		}
		if n == 0 {
			n = 1
		}
		o := i * 4
		w.img.Pix[o+0] = byte(r / n)
		w.img.Pix[o+1] = byte(g / n)
		w.img.Pix[o+2] = byte(b / n)
		w.img.Pix[o+3] = 0xFF
	}
	return w.drawer.Draw(w.drawer.Bounds(), w.img, image.Point{})
}

func (w *Wall) Close() error {
	return w.drawer.Halt()
}

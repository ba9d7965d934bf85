package scene

import (
	"image"
	"image/draw"
	"image/png"
	"os"
)

// LoadTexture decodes a PNG for the logo plane. A missing or unreadable file
// is not an error condition: the logo simply renders transparent, so the
// caller gets a nil image plus the cause for diagnostics.
func LoadTexture(path string) (*image.NRGBA, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	if n, ok := img.(*image.NRGBA); ok {
		return n, nil
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	return n, nil
}

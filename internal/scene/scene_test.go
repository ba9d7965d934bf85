package scene

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWireframeOwnership(t *testing.T) {
	cubes := []*Cube{{Home: Vec3{1, 1, 1}}}
	sc := New(cubes, Options{CubeSize: 1, LogoSize: 4, LogoDepth: 8, CameraZ: 14, FOV: 60})

	c := sc.Cubes[0]
	if c.Opacity != 1 || c.Edge.Opacity != 1 {
		t.Fatalf("cube and wireframe should start fully opaque")
	}
	// wireframe is a value child: one per cube, no sharing
	c.Edge.Opacity = 0.25
	if sc.Cubes[0].Edge.Opacity != 0.25 {
		t.Fatalf("wireframe not owned by its cube")
	}
}

func TestCornerWorldAppliesRotationAndPosition(t *testing.T) {
	c := &Cube{Pos: Vec3{10, 0, 0}}
	v := CornerWorld(c, 6, 0.5) // corner (1,1,1) scaled to 0.5
	want := Vec3{10.5, 0.5, 0.5}
	if v != want {
		t.Fatalf("corner world mismatch: %+v != %+v", v, want)
	}
}

func TestLoadTextureMissingFileDegrades(t *testing.T) {
	tex, err := LoadTexture(filepath.Join(t.TempDir(), "nope.png"))
	if tex != nil {
		t.Fatal("missing texture must yield nil image")
	}
	if err == nil {
		t.Fatal("expected cause for diagnostics")
	}

	// empty path is not even a degradation, just no logo configured
	tex, err = LoadTexture("")
	if tex != nil || err != nil {
		t.Fatalf("empty path should be a silent no-op: %v %v", tex, err)
	}
}

func TestLoadTextureDecodesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Pix[0] = 0xFF
	img.Pix[3] = 0xFF
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tex == nil || tex.Bounds().Dx() != 4 || tex.Bounds().Dy() != 2 {
		t.Fatalf("unexpected texture: %+v", tex)
	}
	if tex.Pix[0] != 0xFF || tex.Pix[3] != 0xFF {
		t.Fatalf("pixel data lost in decode")
	}
}

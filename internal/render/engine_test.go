package render

import (
	"image"
	"testing"

	"github.com/coreman2200/latticebg/internal/render/post"
	"github.com/coreman2200/latticebg/internal/scene"
)

func testScene() *scene.Scene {
	cubes := []*scene.Cube{{Home: scene.Vec3{}, Pos: scene.Vec3{}}}
	sc := scene.New(cubes, scene.Options{
		CubeSize:  1.5,
		FillColor: scene.Color{R: 0.05, G: 0.05, B: 0.09},
		LogoSize:  4,
		LogoDepth: 8,
		CameraZ:   14,
		FOV:       60,
	})
	sc.Cubes[0].Edge.Color = scene.Color{G: 1, B: 1}
	return sc
}

func frameEnergy(f *Frame) (sum float64) {
	for i := 0; i < len(f.Pix); i += 4 {
		sum += float64(f.Pix[i]) + float64(f.Pix[i+1]) + float64(f.Pix[i+2])
	}
	return
}

func TestRenderOnceProducesFrame(t *testing.T) {
	e := NewEngine(120, 80, post.Pipeline{})
	f := e.RenderOnce(testScene())
	if f.W != 120 || f.H != 80 || len(f.Pix) != 120*80*4 {
		t.Fatalf("bad frame geometry: %dx%d pix=%d", f.W, f.H, len(f.Pix))
	}
	// alpha fully opaque everywhere
	for i := 3; i < len(f.Pix); i += 4 {
		if f.Pix[i] != 0xFF {
			t.Fatalf("alpha not opaque at %d", i)
		}
	}
}

func TestCubeContributesPixels(t *testing.T) {
	e := NewEngine(160, 120, post.Pipeline{})
	sc := testScene()

	base := frameEnergy(e.RenderOnce(sc))

	// Fading all content out leaves background + grid only.
	sc.Cubes[0].Opacity = 0
	sc.Cubes[0].Edge.Opacity = 0
	faded := frameEnergy(e.RenderOnce(sc))
	if faded >= base {
		t.Fatalf("faded cube should render darker: %v >= %v", faded, base)
	}
}

func TestLightAddsEnergyOnlyWhenOn(t *testing.T) {
	e := NewEngine(160, 120, post.Pipeline{})
	sc := testScene()
	sc.Light.Color = scene.Color{R: 1, G: 1, B: 1}

	off := frameEnergy(e.RenderOnce(sc))
	sc.Light.Intensity = 10
	on := frameEnergy(e.RenderOnce(sc))
	if on <= off {
		t.Fatalf("point light should brighten the frame: %v <= %v", on, off)
	}
}

func TestLogoNilTextureRendersNothing(t *testing.T) {
	e := NewEngine(160, 120, post.Pipeline{})
	sc := testScene()
	sc.Cubes[0].Opacity = 0
	sc.Cubes[0].Edge.Opacity = 0
	sc.Grid.Spacing = 0 // background only

	blank := frameEnergy(e.RenderOnce(sc))
	sc.Logo.Opacity = 1 // visible but textureless: degrades to transparent
	withLogo := frameEnergy(e.RenderOnce(sc))
	if blank != withLogo {
		t.Fatalf("nil texture must not draw: %v vs %v", blank, withLogo)
	}
}

func TestLogoTextureDraws(t *testing.T) {
	e := NewEngine(160, 120, post.Pipeline{})
	sc := testScene()
	sc.Cubes[0].Opacity = 0
	sc.Cubes[0].Edge.Opacity = 0
	sc.Grid.Spacing = 0

	tex := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(tex.Pix); i += 4 {
		tex.Pix[i] = 0xFF
		tex.Pix[i+3] = 0xFF
	}
	sc.Logo.Tex = tex
	sc.Logo.Opacity = 1

	blankless := frameEnergy(e.RenderOnce(sc))
	if blankless <= 0 {
		t.Fatal("expected textured logo to contribute pixels")
	}
	sc.Logo.Opacity = 0
	hidden := frameEnergy(e.RenderOnce(sc))
	if hidden >= blankless {
		t.Fatalf("hidden logo should not draw: %v >= %v", hidden, blankless)
	}
}

func TestResizeRebuildsTargetAndBloomTogether(t *testing.T) {
	b := post.NewBloom(1.5, 2, 0.7, 1.0)
	e := NewEngine(200, 100, post.Pipeline{Bloom: b, ToneMap: post.DefaultToneMap})

	sw, sh := b.PassSize()
	if sw != 200 || sh != 100 {
		t.Fatalf("initial bloom pass size: %dx%d", sw, sh)
	}

	b.Scale = 0.6
	e.Resize(500, 900)
	if w, h := e.Size(); w != 500 || h != 900 {
		t.Fatalf("resize did not take: %dx%d", w, h)
	}
	sw, sh = b.PassSize()
	if sw != 300 || sh != 540 {
		t.Fatalf("bloom pass must resize with target: %dx%d", sw, sh)
	}
	f := e.RenderOnce(testScene())
	if len(f.Pix) != 500*900*4 {
		t.Fatalf("frame buffer stale after resize")
	}
}

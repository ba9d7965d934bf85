package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/latticebg/internal/scene"
)

func TestHollowCoreCount(t *testing.T) {
	// 5^3 minus the 2x2x2 core = 117
	assert.Equal(t, 117, Count(5))

	p := Params{Size: 5, Step: 2.5, SpinMax: 0.01, Seed: 1}
	cubes := Generate(p)
	require.Len(t, cubes, 117)
}

func TestLatticeCentered(t *testing.T) {
	p := Params{Size: 5, Step: 2.0, Seed: 7}
	cubes := Generate(p)

	// offset = 5*2/2 - 2/2 = 4; corner cube at coord (0,0,0) lands at -4.
	assert.InDelta(t, -4.0, cubes[0].Home.X, 1e-9)
	assert.InDelta(t, -4.0, cubes[0].Home.Y, 1e-9)
	assert.InDelta(t, -4.0, cubes[0].Home.Z, 1e-9)

	// Lattice is symmetric around the origin.
	var sum scene.Vec3
	for _, c := range cubes {
		sum = sum.Add(c.Home)
	}
	assert.InDelta(t, 0, sum.X, 1e-9)
	assert.InDelta(t, 0, sum.Y, 1e-9)
	assert.InDelta(t, 0, sum.Z, 1e-9)
}

func TestHollowExcludesInterior(t *testing.T) {
	p := Params{Size: 5, Step: 1.0, Seed: 3}
	// offset = 2; interior coords 1,2 map to -1 and 0.
	for _, c := range Generate(p) {
		inX := c.Home.X == -1 || c.Home.X == 0
		inY := c.Home.Y == -1 || c.Home.Y == 0
		inZ := c.Home.Z == -1 || c.Home.Z == 0
		assert.False(t, inX && inY && inZ, "interior cube leaked at %+v", c.Home)
	}
}

func TestRandomAttributes(t *testing.T) {
	palette := []scene.Color{{R: 1}, {G: 1}, {B: 1}}
	p := Params{Size: 5, Step: 2.5, SpinMax: 0.01, Seed: 42, Palette: palette}
	cubes := Generate(p)

	seen := map[scene.Color]bool{}
	for _, c := range cubes {
		assert.Contains(t, palette, c.Edge.Color)
		assert.GreaterOrEqual(t, c.Spin, -0.01)
		assert.LessOrEqual(t, c.Spin, 0.01)
		seen[c.Edge.Color] = true
	}
	// With 117 draws all three palette entries should show up.
	assert.Len(t, seen, 3)
}

func TestSeedDeterminism(t *testing.T) {
	p := Params{Size: 4, Step: 1.5, SpinMax: 0.02, Seed: 99,
		Palette: []scene.Color{{R: 1, G: 1, B: 1}, {R: 0.5, B: 1}}}
	a := Generate(p)
	b := Generate(p)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Home, b[i].Home)
		assert.Equal(t, a[i].Spin, b[i].Spin)
		assert.Equal(t, a[i].Edge.Color, b[i].Edge.Color)
	}
}

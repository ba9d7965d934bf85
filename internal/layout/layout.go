package layout

import (
	"math/rand"

	"github.com/coreman2200/latticebg/internal/scene"
)

// Params describes the cube lattice. Size is cubes per axis, Step the world
// distance between neighbors. SpinMax bounds the random base rotation speed
// (radians per frame, symmetric around zero).
type Params struct {
	Size    int
	Step    float64
	SpinMax float64
	Seed    int64
	Palette []scene.Color
}

// hollow reports whether the coordinate sits in the 2x2x2 interior core that
// is left empty so the lattice reads as a shell.
func hollow(x, y, z int) bool {
	in := func(c int) bool { return c >= 1 && c <= 2 }
	return in(x) && in(y) && in(z)
}

// Count returns the number of cubes Generate will produce for size n.
func Count(n int) int {
	c := 0
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if !hollow(x, y, z) {
					c++
				}
			}
		}
	}
	return c
}

// Generate produces the cube list: shape is deterministic, edge colors and
// spin rates are random (seeded). World position centers the lattice on the
// origin: pos = coord*step - (n*step/2 - step/2).
func Generate(p Params) []*scene.Cube {
	rng := rand.New(rand.NewSource(p.Seed))
	offset := float64(p.Size)*p.Step/2 - p.Step/2

	cubes := make([]*scene.Cube, 0, Count(p.Size))
	for z := 0; z < p.Size; z++ {
		for y := 0; y < p.Size; y++ {
			for x := 0; x < p.Size; x++ {
				if hollow(x, y, z) {
					continue
				}
				home := scene.Vec3{
					X: float64(x)*p.Step - offset,
					Y: float64(y)*p.Step - offset,
					Z: float64(z)*p.Step - offset,
				}
				c := &scene.Cube{
					Home: home,
					Pos:  home,
					Spin: (rng.Float64()*2 - 1) * p.SpinMax,
				}
				if len(p.Palette) > 0 {
					c.Edge.Color = p.Palette[rng.Intn(len(p.Palette))]
				}
				cubes = append(cubes, c)
			}
		}
	}
	return cubes
}

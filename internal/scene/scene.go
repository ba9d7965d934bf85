package scene

import "image"

// Wireframe is the edge overlay owned by exactly one parent cube. It is
// positioned relative to its parent; only color and opacity are its own.
type Wireframe struct {
	Color   Color
	Opacity float64
}

// Cube is one lattice element. Home is fixed at construction; Pos is
// recomputed every frame from Home and the current expansion. RotX/RotY
// accumulate without bound. Spin is the base per-frame rotation increment.
type Cube struct {
	Home    Vec3
	Pos     Vec3
	RotX    float64
	RotY    float64
	Opacity float64
	Spin    float64
	Edge    Wireframe
}

// Logo is a single billboard plane. Tex may be nil, in which case the plane
// renders fully transparent (see LoadTexture).
type Logo struct {
	Pos     Vec3
	Size    float64
	Opacity float64
	Tex     *image.NRGBA
}

type Light struct {
	Pos       Vec3
	Intensity float64
	Color     Color
}

// Grid is the scrolling floor. Offset loops along Z; Spacing and Extent are
// fixed after construction unless Dirty is set by a reconfigure.
type Grid struct {
	Y       float64
	Spacing float64
	Extent  float64
	Offset  float64
	Color   Color
	Dirty   bool
}

type Camera struct {
	Pos    Vec3
	Target Vec3
	FOV    float64 // vertical, degrees
}

// Scene is the full node graph, built once at startup and mutated in place
// by the per-frame updater. GroupYaw/GroupPitch rotate the whole lattice.
type Scene struct {
	Cubes      []*Cube
	GroupYaw   float64
	GroupPitch float64
	Logo       Logo
	Light      Light
	Grid       Grid
	Camera     Camera
	CubeSize   float64
	FillColor  Color
}

type Options struct {
	CubeSize  float64
	FillColor Color
	LogoSize  float64
	LogoDepth float64
	GridY     float64
	CameraZ   float64
	FOV       float64
	LightCol  Color
}

// New assembles the static node graph around an already generated cube list.
func New(cubes []*Cube, o Options) *Scene {
	sc := &Scene{
		Cubes:     cubes,
		CubeSize:  o.CubeSize,
		FillColor: o.FillColor,
		Logo: Logo{
			Pos:  Vec3{0, 0, o.LogoDepth},
			Size: o.LogoSize,
		},
		Light: Light{
			Pos:   Vec3{0, 0, o.LogoDepth + 1},
			Color: o.LightCol,
		},
		Grid: Grid{
			Y:       -6,
			Spacing: 1,
			Extent:  30,
			Color:   Color{0.06, 0.10, 0.16},
		},
		Camera: Camera{
			Pos:    Vec3{0, 2, o.CameraZ},
			Target: Vec3{},
			FOV:    o.FOV,
		},
	}
	if o.GridY != 0 {
		sc.Grid.Y = o.GridY
	}
	for _, c := range sc.Cubes {
		c.Pos = c.Home
		c.Opacity = 1
		c.Edge.Opacity = 1
	}
	return sc
}

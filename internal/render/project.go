package render

import (
	"math"

	"github.com/coreman2200/latticebg/internal/scene"
)

const nearClip = 0.1

// view is the per-frame camera basis plus projection constants.
type view struct {
	pos   scene.Vec3
	right scene.Vec3
	up    scene.Vec3
	fwd   scene.Vec3
	fl    float64
	cx    float64
	cy    float64
}

func newView(c scene.Camera, w, h int) view {
	fwd := c.Target.Sub(c.Pos).Normalize()
	worldUp := scene.Vec3{Y: 1}
	right := fwd.Cross(worldUp).Normalize()
	if right.Length() == 0 {
		right = scene.Vec3{X: 1}
	}
	up := right.Cross(fwd)

	fov := c.FOV * math.Pi / 180
	if fov <= 0 {
		fov = math.Pi / 3
	}
	return view{
		pos:   c.Pos,
		right: right,
		up:    up,
		fwd:   fwd,
		fl:    float64(h) / 2 / math.Tan(fov/2),
		cx:    float64(w) / 2,
		cy:    float64(h) / 2,
	}
}

// depth returns the view-space distance along the camera forward axis.
func (v view) depth(p scene.Vec3) float64 {
	return p.Sub(v.pos).Dot(v.fwd)
}

// project maps a world point to screen space. ok is false behind the near
// plane.
func (v view) project(p scene.Vec3) (x, y, z float64, ok bool) {
	d := p.Sub(v.pos)
	z = d.Dot(v.fwd)
	if z < nearClip {
		return 0, 0, z, false
	}
	x = v.cx + d.Dot(v.right)*v.fl/z
	y = v.cy - d.Dot(v.up)*v.fl/z
	return x, y, z, true
}

// groupTransform applies the whole-lattice wobble: pitch about X, then yaw
// about Y, both around the origin.
func groupTransform(p scene.Vec3, yaw, pitch float64) scene.Vec3 {
	return p.RotateX(pitch).RotateY(yaw)
}

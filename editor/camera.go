package editor

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FovY is the vertical field of view shared by the picking math and the
// renderer's camera, in degrees.
const FovY = 45.0

// Near/far planes matching raylib's 3D mode defaults.
const (
	nearPlane = 0.01
	farPlane  = 1000.0
)

const (
	tau        = 2 * math.Pi
	pitchLimit = (math.Pi / 2) * 0.9
)

// Camera is an orbit camera around the grid center. The same parameters
// drive both the renderer and the mouse-picking transform, so a ray built
// from the inverse of ViewProjection matches what is on screen.
type Camera struct {
	Rotation mgl32.Vec2 // yaw around Y, pitch around X, radians
	Distance float32
	Center   mgl32.Vec3
}

// NewCamera frames a grid of the given size from a slightly raised angle.
func NewCamera(gridSize int) Camera {
	half := float32(gridSize) / 2
	return Camera{
		Rotation: mgl32.Vec2{math.Pi / -8, math.Pi / -8},
		Distance: float32(gridSize) * 2.2,
		Center:   mgl32.Vec3{half, half, half},
	}
}

// Rotate applies a scroll delta to the orbit angles. Yaw wraps at a full
// turn, pitch is clamped short of the poles.
func (c *Camera) Rotate(delta mgl32.Vec2) {
	c.Rotation = c.Rotation.Add(delta.Mul(-0.002))

	if c.Rotation.X() > tau {
		c.Rotation[0] -= tau
	} else if c.Rotation.X() < -tau {
		c.Rotation[0] += tau
	}
	c.Rotation[1] = mgl32.Clamp(c.Rotation.Y(), -pitchLimit, pitchLimit)
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() mgl32.Vec3 {
	yaw := float64(c.Rotation.X())
	pitch := float64(c.Rotation.Y())
	dir := mgl32.Vec3{
		float32(math.Cos(pitch) * math.Sin(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Cos(yaw)),
	}
	return c.Center.Add(dir.Mul(c.Distance))
}

// ViewProjection builds the combined camera transform for the given aspect
// ratio.
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(FovY), aspect, nearPlane, farPlane)
	view := mgl32.LookAtV(c.Eye(), c.Center, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// MouseRay unprojects a point in normalized device coordinates into a world
// space ray origin and direction.
func (c *Camera) MouseRay(ndc mgl32.Vec2, aspect float32) (origin, dir mgl32.Vec3) {
	inv := c.ViewProjection(aspect).Inv()
	near := unproject(inv, mgl32.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := unproject(inv, mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})
	return near, far.Sub(near).Normalize()
}

func unproject(inv mgl32.Mat4, clip mgl32.Vec4) mgl32.Vec3 {
	world := inv.Mul4x1(clip)
	return world.Vec3().Mul(1 / world.W())
}

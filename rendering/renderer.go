// Package rendering draws the atom grid and the editor's selection feedback
// with raylib. It reads grid state only through Positions and At; nothing
// here mutates the simulation.
package rendering

import (
	"math"

	"github.com/crazy3lf/colorconv"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"atombox/core"
	"atombox/editor"
)

const (
	// Pressures below this render nothing, matching the simulation's idea of
	// negligible.
	minVisiblePressure = 0.001
	minVisibleSpeedSqr = 0.001

	solidShrink = 0.9
)

// Draw renders one frame of the grid inside an active drawing context.
func Draw(grid *core.Grid, ed *editor.Editor) {
	cam := rlCamera(ed.Camera())
	highlighted, hasHighlight := ed.Highlighted()
	proposed, hasProposed := ed.Proposed()

	rl.BeginMode3D(cam)

	for pos := range grid.Positions() {
		atom := grid.At(pos)
		center := rlVec(pos.Center())

		switch atom.Variant {
		case core.Solid:
			color := vec4Color(atom.Color)
			if hasHighlight && pos == highlighted {
				color = rl.Red
			}
			rl.DrawCube(center, solidShrink, solidShrink, solidShrink, color)
			rl.DrawCubeWires(center, solidShrink, solidShrink, solidShrink, rl.DarkGray)

		case core.GasSource:
			color := rl.RayWhite
			if hasHighlight && pos == highlighted {
				color = rl.Red
			}
			rl.DrawCube(center, solidShrink, solidShrink, solidShrink, color)
			tip := rlVec(pos.Center().Add(atom.Direction.Mul(0.8)))
			rl.DrawLine3D(center, tip, rl.Yellow)

		case core.Gas:
			if atom.Pressure >= minVisiblePressure {
				radius := atom.Pressure * 0.5
				rl.DrawSphere(center, radius, PressureColor(atom.Pressure))
			}
			if atom.Velocity.LenSqr() >= minVisibleSpeedSqr {
				tip := rlVec(pos.Center().Add(atom.Velocity.Normalize().Mul(0.5)))
				rl.DrawLine3D(center, tip, rl.SkyBlue)
			}
		}
	}

	if hasProposed {
		center := rlVec(proposed.Center())
		rl.DrawCube(center, 0.5, 0.5, 0.5, rl.Fade(rl.Green, 0.6))
		rl.DrawCubeWires(center, 0.5, 0.5, 0.5, rl.Green)
	}

	rl.EndMode3D()
}

// PressureColor maps a pressure to a hue-cycled color so small differences
// stay visible at any magnitude.
func PressureColor(pressure float32) rl.Color {
	hue := math.Mod(float64(pressure)*120, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b, _ := colorconv.HSVToRGB(hue, 1, 1)
	return rl.NewColor(r, g, b, 200)
}

func rlCamera(c *editor.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rlVec(c.Eye()),
		Target:     rlVec(c.Center),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       editor.FovY,
		Projection: rl.CameraPerspective,
	}
}

func rlVec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func vec4Color(v mgl32.Vec4) rl.Color {
	return rl.NewColor(
		uint8(mgl32.Clamp(v.X(), 0, 1)*255),
		uint8(mgl32.Clamp(v.Y(), 0, 1)*255),
		uint8(mgl32.Clamp(v.Z(), 0, 1)*255),
		uint8(mgl32.Clamp(v.W(), 0, 1)*255),
	)
}

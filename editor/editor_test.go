package editor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"atombox/core"
	"atombox/physics"
)

// allGasGrid returns a grid with no selectable atoms.
func allGasGrid(size int) *core.Grid {
	g := core.NewGrid(size)
	for pos := range g.Positions() {
		*g.At(pos) = core.NewGas()
	}
	return g
}

// lookDownZ aims the editor's camera straight down -Z through target so a
// centered mouse ray passes through it.
func lookDownZ(e *Editor, target mgl32.Vec3, distance float32) {
	e.camera.Rotation = mgl32.Vec2{0, 0}
	e.camera.Center = target
	e.camera.Distance = distance
}

func TestUpdateStepGating(t *testing.T) {
	grid := allGasGrid(8)
	sim := physics.NewDiffusion(grid)
	e := NewEditor(8, 1)
	ui := NewUIState()

	events := []Event{}
	e.Update(grid, sim, &events, &ui)
	require.Equal(t, uint64(0), grid.StepCounter)

	ui.ShouldStep = true
	e.Update(grid, sim, &events, &ui)
	require.Equal(t, uint64(1), grid.StepCounter)
	require.False(t, ui.ShouldStep, "single-step request is one-shot")

	ui.IsPlaying = true
	e.Update(grid, sim, &events, &ui)
	e.Update(grid, sim, &events, &ui)
	require.Equal(t, uint64(3), grid.StepCounter)
}

func TestUpdateDrainsEventQueueEveryFrame(t *testing.T) {
	grid := allGasGrid(8)
	sim := physics.NewDiffusion(grid)
	e := NewEditor(8, 1)
	ui := NewUIState()

	// The main loop appends at least one mouse position per frame; a
	// long-running session must not accumulate them.
	events := make([]Event, 0, 8)
	for frame := 0; frame < 1000; frame++ {
		events = append(events, Event{Kind: MousePosEvent, Pos: mgl32.Vec2{0, 0}})
		if frame%10 == 0 {
			events = append(events, Event{Kind: RightClickReleasedEvent})
		}
		e.Update(grid, sim, &events, &ui)
		require.Empty(t, events, "frame %d", frame)
	}
}

func TestUpdateRemembersMousePositionAcrossFrames(t *testing.T) {
	grid := allGasGrid(10)
	target := core.Pos{X: 4, Y: 4, Z: 4}
	*grid.At(target) = core.NewSolid(mgl32.Vec4{0.5, 0.5, 0.5, 1})

	sim := physics.NewDiffusion(grid)
	e := NewEditor(10, 1)
	lookDownZ(e, target.Center(), 30)
	ui := NewUIState()

	events := []Event{{Kind: MousePosEvent, Pos: mgl32.Vec2{0, 0}}}
	e.Update(grid, sim, &events, &ui)

	// A frame with no mouse movement still picks at the last known position.
	events = events[:0]
	e.Update(grid, sim, &events, &ui)

	highlighted, ok := e.Highlighted()
	require.True(t, ok)
	require.Equal(t, target, highlighted)
}

func TestUpdateScrollRotatesCamera(t *testing.T) {
	grid := allGasGrid(8)
	sim := physics.NewDiffusion(grid)
	e := NewEditor(8, 1)
	ui := NewUIState()

	before := e.camera.Rotation
	events := []Event{{Kind: ScrollEvent, Pos: mgl32.Vec2{100, 0}}}
	e.Update(grid, sim, &events, &ui)

	require.NotEqual(t, before, e.camera.Rotation)
}

func TestCameraPitchClampAndYawWrap(t *testing.T) {
	c := NewCamera(8)

	// A huge downward scroll cannot push the pitch past the limit.
	c.Rotate(mgl32.Vec2{0, -1e6})
	require.LessOrEqual(t, float64(c.Rotation.Y()), (math.Pi/2)*0.9+1e-5)

	// Yaw stays within one full turn of zero.
	c.Rotation = mgl32.Vec2{float32(2*math.Pi) - 0.001, 0}
	c.Rotate(mgl32.Vec2{-10, 0})
	require.Less(t, float64(mgl32.Abs(c.Rotation.X())), 2*math.Pi+1e-5)
}

func TestPickHighlightsSolidAndProposesNeighbor(t *testing.T) {
	grid := allGasGrid(10)
	target := core.Pos{X: 4, Y: 4, Z: 4}
	*grid.At(target) = core.NewSolid(mgl32.Vec4{0.5, 0.5, 0.5, 1})

	e := NewEditor(10, 1)
	lookDownZ(e, target.Center(), 30)
	mouse := mgl32.Vec2{0, 0}
	e.mousePos = &mouse

	e.pick(grid)

	highlighted, ok := e.Highlighted()
	require.True(t, ok)
	require.Equal(t, target, highlighted)

	// The camera sits toward +Z, so the hit is on the +Z face.
	proposed, ok := e.Proposed()
	require.True(t, ok)
	require.Equal(t, core.Pos{X: 4, Y: 4, Z: 5}, proposed)
}

func TestPickIgnoresGas(t *testing.T) {
	grid := allGasGrid(10)
	grid.At(core.Pos{X: 4, Y: 4, Z: 4}).Pressure = 5

	e := NewEditor(10, 1)
	lookDownZ(e, core.Pos{X: 4, Y: 4, Z: 4}.Center(), 30)
	mouse := mgl32.Vec2{0, 0}
	e.mousePos = &mouse

	e.pick(grid)

	_, ok := e.Highlighted()
	require.False(t, ok)
}

func TestUpdateAddsAndRemovesAtoms(t *testing.T) {
	grid := allGasGrid(10)
	target := core.Pos{X: 4, Y: 4, Z: 4}
	*grid.At(target) = core.NewSolid(mgl32.Vec4{0.5, 0.5, 0.5, 1})

	sim := physics.NewDiffusion(grid)
	e := NewEditor(10, 1)
	lookDownZ(e, target.Center(), 30)
	ui := NewUIState()
	ui.SelectedVariant = core.GasSource

	events := []Event{
		{Kind: MousePosEvent, Pos: mgl32.Vec2{0, 0}},
		{Kind: LeftClickPressedEvent},
	}
	e.Update(grid, sim, &events, &ui)

	placed := grid.At(core.Pos{X: 4, Y: 4, Z: 5})
	require.Equal(t, core.GasSource, placed.Variant)
	require.Equal(t, ui.SourceDirection, placed.Direction)

	// Clear the placed source so it does not occlude the solid, then remove
	// the highlighted solid with a right click.
	*grid.At(core.Pos{X: 4, Y: 4, Z: 5}) = core.NewGas()
	events = []Event{
		{Kind: MousePosEvent, Pos: mgl32.Vec2{0, 0}},
		{Kind: RightClickPressedEvent},
	}
	e.Update(grid, sim, &events, &ui)

	require.Equal(t, core.Gas, grid.At(target).Variant)
}

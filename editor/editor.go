// Package editor translates input events into grid mutations and camera
// state. It owns mouse picking and the add/remove interaction; rendering and
// the simulation only read its outputs.
package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"atombox/core"
	"atombox/physics"
)

// Editor holds the interactive session state around a grid.
type Editor struct {
	camera      Camera
	aspect      float32
	mousePos    *mgl32.Vec2
	highlighted *core.Pos
	proposed    *core.Pos
}

// NewEditor creates an editor framing a grid of the given size.
func NewEditor(gridSize int, aspect float32) *Editor {
	return &Editor{
		camera: NewCamera(gridSize),
		aspect: aspect,
	}
}

// Camera exposes the orbit camera so the renderer can match the picking
// transform.
func (e *Editor) Camera() *Camera {
	return &e.camera
}

// Highlighted returns the cell under the cursor, if any.
func (e *Editor) Highlighted() (core.Pos, bool) {
	if e.highlighted == nil {
		return core.Pos{}, false
	}
	return *e.highlighted, true
}

// Proposed returns the insertion cell adjacent to the highlighted one, if any.
func (e *Editor) Proposed() (core.Pos, bool) {
	if e.proposed == nil {
		return core.Pos{}, false
	}
	return *e.proposed, true
}

// Update drains this frame's events, advances the simulation when the UI
// asks for it, moves the camera and applies click mutations. The queue is
// emptied every frame; the last mouse position is remembered across frames.
func (e *Editor) Update(grid *core.Grid, sim *physics.Diffusion, events *[]Event, ui *UIState) {
	var (
		addAtom    bool
		removeAtom bool
		scroll     mgl32.Vec2
	)

	for _, ev := range *events {
		switch ev.Kind {
		case MousePosEvent:
			pos := ev.Pos
			e.mousePos = &pos
		case ScrollEvent:
			scroll = ev.Pos
		case LeftClickPressedEvent:
			addAtom = true
		case RightClickPressedEvent:
			removeAtom = true
		}
	}
	*events = (*events)[:0]

	if ui.IsPlaying || ui.ShouldStep {
		sim.Step()
		ui.ShouldStep = false
	}

	e.camera.Rotate(scroll)
	e.pick(grid)

	if addAtom {
		if e.proposed != nil {
			*grid.At(*e.proposed) = e.atomForVariant(ui)
		}
	} else if removeAtom {
		if e.highlighted != nil {
			*grid.At(*e.highlighted) = core.NewGas()
		}
	}
}

// pick refreshes the highlighted and proposed cells from the current mouse
// position. Only solid and source cells are selectable; gas is transparent
// to the cursor.
func (e *Editor) pick(grid *core.Grid) {
	e.highlighted = nil
	e.proposed = nil
	if e.mousePos == nil {
		return
	}

	origin, dir := e.camera.MouseRay(*e.mousePos, e.aspect)

	selectable := func(yield func(core.Pos) bool) {
		for pos := range grid.Positions() {
			if grid.At(pos).Variant == core.Gas {
				continue
			}
			if !yield(pos) {
				return
			}
		}
	}

	cell, hit, ok := closestRayGridIntersection(origin, dir, selectable)
	if !ok {
		return
	}
	e.highlighted = &cell

	proposed := adjacentCell(cell, hit)
	if proposed == cell || !grid.InBounds(proposed) {
		return
	}
	e.proposed = &proposed
}

func (e *Editor) atomForVariant(ui *UIState) core.Atom {
	switch ui.SelectedVariant {
	case core.Solid:
		return core.NewSolid(mgl32.Vec4{0.5, 0.5, 0.5, 1.0})
	case core.GasSource:
		return core.NewGasSource(ui.SourceDirection)
	default:
		return core.NewGas()
	}
}

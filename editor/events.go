package editor

import "github.com/go-gl/mathgl/mgl32"

// EventKind enumerates the discrete input events the editor understands.
type EventKind uint8

const (
	MousePosEvent EventKind = iota
	ScrollEvent
	LeftClickPressedEvent
	LeftClickReleasedEvent
	RightClickPressedEvent
	RightClickReleasedEvent
)

// Event is one input event. Pos is in normalized device coordinates for the
// mouse events and a raw delta for ScrollEvent.
type Event struct {
	Kind EventKind
	Pos  mgl32.Vec2
}

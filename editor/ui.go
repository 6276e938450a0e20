package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"atombox/core"
)

// UIState carries the user's interaction mode through Update. It is owned by
// the application loop and passed down explicitly; nothing in the editor is
// process-global.
type UIState struct {
	// SelectedVariant is written into the grid on a left click.
	SelectedVariant core.Variant

	// SourceDirection is the emission direction given to newly placed gas
	// sources. Must be a unit axis step.
	SourceDirection mgl32.Vec3

	// IsPlaying runs one simulation step every frame while set.
	IsPlaying bool

	// ShouldStep requests a single step; Update clears it after stepping.
	ShouldStep bool
}

// NewUIState returns the startup interaction mode: paused, placing solids,
// sources emitting toward +X.
func NewUIState() UIState {
	return UIState{
		SelectedVariant: core.Solid,
		SourceDirection: mgl32.Vec3{1, 0, 0},
	}
}

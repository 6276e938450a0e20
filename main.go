package main

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"atombox/config"
	"atombox/core"
	"atombox/editor"
	"atombox/physics"
	"atombox/rendering"
)

// wheelScrollScale turns mouse wheel notches into the pixel-sized scroll
// deltas the editor's camera expects.
const wheelScrollScale = -60.0

func main() {
	settings, err := config.Load("settings.json")
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	grid := core.LoadGrid(settings.Simulation.SavePath, settings.Simulation.GridSize)
	sim := physics.NewDiffusion(grid)
	sim.SpreadInterval = settings.Simulation.SpreadInterval
	sim.SourcePressure = settings.Simulation.SourcePressure

	publishInterval := time.Duration(settings.Server.UpdateIntervalMs) * time.Millisecond
	var server *stateServer
	if settings.Server.Enabled {
		server = newStateServer(publishInterval)
		go server.run(settings.Server.Port)
	}

	rl.InitWindow(int32(settings.Window.Width), int32(settings.Window.Height), settings.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	aspect := float32(settings.Window.Width) / float32(settings.Window.Height)
	ed := editor.NewEditor(grid.Size(), aspect)
	ui := editor.NewUIState()

	lastPublish := time.Now()

	fmt.Println("Controls:")
	fmt.Println("  Left click: place atom   Right click: remove atom")
	fmt.Println("  1/2/3: select Solid/Gas/GasSource   Scroll: rotate")
	fmt.Println("  Space: play/pause   N: single step   ESC: quit and save")

	events := make([]editor.Event, 0, 8)
	for !rl.WindowShouldClose() {
		collectInput(&events, &ui, settings.Window.Width, settings.Window.Height)
		ed.Update(grid, sim, &events, &ui)

		if server != nil && time.Since(lastPublish) >= publishInterval {
			if err := server.publish(grid); err != nil {
				log.Printf("Failed to publish grid snapshot: %v", err)
			}
			lastPublish = time.Now()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rendering.Draw(grid, ed)
		drawHUD(grid, &ui)
		rl.EndDrawing()
	}

	if err := grid.Save(settings.Simulation.SavePath); err != nil {
		log.Fatalf("Failed to save grid: %v", err)
	}
	log.Printf("Grid saved to %s", settings.Simulation.SavePath)
}

// collectInput translates this frame's raylib input into editor events and
// UI toggles.
func collectInput(events *[]editor.Event, ui *editor.UIState, width, height int) {
	mouse := rl.GetMousePosition()
	*events = append(*events, editor.Event{
		Kind: editor.MousePosEvent,
		Pos:  screenToNDC(mouse, width, height),
	})

	if wheel := rl.GetMouseWheelMoveV(); wheel.X != 0 || wheel.Y != 0 {
		*events = append(*events, editor.Event{
			Kind: editor.ScrollEvent,
			Pos:  mgl32.Vec2{wheel.X * wheelScrollScale, wheel.Y * wheelScrollScale},
		})
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		*events = append(*events, editor.Event{Kind: editor.LeftClickPressedEvent})
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		*events = append(*events, editor.Event{Kind: editor.LeftClickReleasedEvent})
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		*events = append(*events, editor.Event{Kind: editor.RightClickPressedEvent})
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		*events = append(*events, editor.Event{Kind: editor.RightClickReleasedEvent})
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		ui.IsPlaying = !ui.IsPlaying
	}
	if rl.IsKeyPressed(rl.KeyN) {
		ui.ShouldStep = true
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		ui.SelectedVariant = core.Solid
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		ui.SelectedVariant = core.Gas
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		ui.SelectedVariant = core.GasSource
	}
}

// screenToNDC maps window pixels to normalized device coordinates, y up.
func screenToNDC(p rl.Vector2, width, height int) mgl32.Vec2 {
	return mgl32.Vec2{
		2*p.X/float32(width) - 1,
		1 - 2*p.Y/float32(height),
	}
}

func drawHUD(grid *core.Grid, ui *editor.UIState) {
	state := "paused"
	if ui.IsPlaying {
		state = "playing"
	}
	rl.DrawText(fmt.Sprintf("%s | step %d | placing %v", state, grid.StepCounter, ui.SelectedVariant),
		10, 10, 20, rl.RayWhite)
	rl.DrawFPS(10, 36)
}

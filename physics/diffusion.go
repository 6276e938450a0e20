// Package physics implements the gas diffusion step for an atom grid:
// velocity advection, source injection, checkerboard pressure equalization
// and the open-boundary vacuum. Everything runs synchronously on the caller's
// goroutine; the grid is mutated in place.
package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"atombox/core"
)

// velocityEpsilon is the squared speed below which a gas cell is treated as
// still. It guards against degenerate vectors coming in from the editor.
const velocityEpsilon = 0.001

// Diffusion advances a grid one discrete step at a time.
type Diffusion struct {
	grid *core.Grid

	// SourcePressure is injected by every GasSource into its neighbor each step.
	SourcePressure float32

	// SpreadInterval gates the equalization phase: it runs only on steps whose
	// counter is a multiple of this value, alternating checkerboard phases.
	SpreadInterval uint64
}

// NewDiffusion wraps grid with the default tuning.
func NewDiffusion(grid *core.Grid) *Diffusion {
	return &Diffusion{
		grid:           grid,
		SourcePressure: 1.0,
		SpreadInterval: 1,
	}
}

// Step advances the grid by one step. The four phases always run in the same
// order: advection, injection, spread, edge vacuum. The step counter wraps on
// overflow.
func (d *Diffusion) Step() {
	d.advectVelocity()
	d.injectSources()
	d.spreadGas()
	d.applyEdgeVacuum()
	d.grid.StepCounter++
}

// advectVelocity moves each moving gas cell's contents into the neighbor its
// velocity points at. The source cell is emptied whether or not the transfer
// lands; pressure pushed into a solid, a source or out of the grid is lost.
//
// The moving cells are gathered up front so gas merged into a still cell
// this phase does not immediately advect again.
func (d *Diffusion) advectVelocity() {
	g := d.grid

	movers := make([]core.Pos, 0, 64)
	for pos := range g.Positions() {
		atom := g.At(pos)
		if atom.Variant == core.Gas && atom.Velocity.LenSqr() >= velocityEpsilon {
			movers = append(movers, pos)
		}
	}

	for _, pos := range movers {
		src := g.At(pos)
		// An earlier merge may have cancelled this cell's velocity.
		if src.Velocity.LenSqr() < velocityEpsilon {
			continue
		}

		moving := *src
		*src = core.NewGas()

		target := moving.Velocity.Normalize().Add(pos.Center())
		dst := floorPos(target)
		if dst == pos {
			panic(fmt.Sprintf("advection destination equals source at %v", pos))
		}
		if !g.InBounds(dst) {
			continue
		}
		neighbor := g.At(dst)
		if neighbor.Variant != core.Gas {
			continue
		}
		*neighbor = core.SumGas(*neighbor, moving)
	}
}

// injectSources merges a fixed pressure, carried along the source's emission
// direction, into the gas neighbor each GasSource points at.
func (d *Diffusion) injectSources() {
	g := d.grid
	for pos := range g.Positions() {
		atom := g.At(pos)
		if atom.Variant != core.GasSource {
			continue
		}

		offset := unitOffset(atom.Direction)
		if absInt(offset.X)+absInt(offset.Y)+absInt(offset.Z) != 1 {
			panic(fmt.Sprintf("gas source at %v has direction %v, not a unit axis step", pos, atom.Direction))
		}

		dst := pos.Add(offset)
		if !g.InBounds(dst) {
			continue
		}
		neighbor := g.At(dst)
		if neighbor.Variant != core.Gas {
			continue
		}
		emitted := core.Atom{
			Variant:  core.Gas,
			Pressure: d.SourcePressure,
			Velocity: atom.Direction,
		}
		*neighbor = core.SumGas(*neighbor, emitted)
	}
}

// spreadGas equalizes pressure and velocity within 2x2x2 blocks. The blocks
// alternate between even-aligned and odd-aligned (interior) tilings on
// consecutive spread steps, so adjacent blocks are never averaged in the same
// step and no second buffer is needed.
func (d *Diffusion) spreadGas() {
	g := d.grid
	if g.StepCounter%d.SpreadInterval != 0 {
		return
	}

	size := g.Size()
	phase := (g.StepCounter / d.SpreadInterval) % 2
	if phase == 0 {
		for x := 0; x < size; x += 2 {
			for y := 0; y < size; y += 2 {
				for z := 0; z < size; z += 2 {
					d.equalizeBlock(core.Pos{X: x, Y: y, Z: z})
				}
			}
		}
	} else {
		for x := 1; x < size-1; x += 2 {
			for y := 1; y < size-1; y += 2 {
				for z := 1; z < size-1; z += 2 {
					d.equalizeBlock(core.Pos{X: x, Y: y, Z: z})
				}
			}
		}
	}
}

// equalizeBlock averages pressure and velocity across the gas cells of the
// block whose low corner is start, clipped to the grid. Values are staged
// into a local buffer and written back by position, so no two references to
// the array are live at once. Solids and sources neither contribute nor
// change.
func (d *Diffusion) equalizeBlock(start core.Pos) {
	g := d.grid
	size := g.Size()

	gasCells := make([]core.Pos, 0, 8)
	var pressureSum float32
	var velocitySum mgl32.Vec3

	for x := start.X; x < start.X+2 && x < size; x++ {
		for y := start.Y; y < start.Y+2 && y < size; y++ {
			for z := start.Z; z < start.Z+2 && z < size; z++ {
				p := core.Pos{X: x, Y: y, Z: z}
				atom := g.At(p)
				if atom.Variant != core.Gas {
					continue
				}
				gasCells = append(gasCells, p)
				pressureSum += atom.Pressure
				velocitySum = velocitySum.Add(atom.Velocity)
			}
		}
	}
	if len(gasCells) == 0 {
		return
	}

	n := float32(len(gasCells))
	pressure := pressureSum / n
	velocity := velocitySum.Mul(1 / n)
	for _, p := range gasCells {
		atom := g.At(p)
		atom.Pressure = pressure
		atom.Velocity = velocity
	}
}

// applyEdgeVacuum resets the grid's outer shell to still, empty gas, venting
// whatever reached the boundary. Each pass fixes one axis at an extreme and
// sweeps the other two, once per face.
func (d *Diffusion) applyEdgeVacuum() {
	g := d.grid
	s := g.Size() - 1
	for a := 0; a <= s; a++ {
		for b := 0; b <= s; b++ {
			*g.At(core.Pos{X: a, Y: b, Z: 0}) = core.NewGas()
			*g.At(core.Pos{X: a, Y: 0, Z: b}) = core.NewGas()
			*g.At(core.Pos{X: 0, Y: a, Z: b}) = core.NewGas()
			*g.At(core.Pos{X: a, Y: b, Z: s}) = core.NewGas()
			*g.At(core.Pos{X: a, Y: s, Z: b}) = core.NewGas()
			*g.At(core.Pos{X: s, Y: a, Z: b}) = core.NewGas()
		}
	}
}

func floorPos(v mgl32.Vec3) core.Pos {
	return core.Pos{
		X: int(math.Floor(float64(v.X()))),
		Y: int(math.Floor(float64(v.Y()))),
		Z: int(math.Floor(float64(v.Z()))),
	}
}

func unitOffset(direction mgl32.Vec3) core.Pos {
	return core.Pos{
		X: int(math.Round(float64(direction.X()))),
		Y: int(math.Round(float64(direction.Y()))),
		Z: int(math.Round(float64(direction.Z()))),
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

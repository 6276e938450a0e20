package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// lattice holds the eight cells surrounding a sample point and their
// trilinear weights. Atom values are treated as point samples at integer
// coordinates.
type lattice struct {
	cells   [8]Pos
	weights [8]float32
}

func latticeAround(p mgl32.Vec3) lattice {
	x0 := int(math.Floor(float64(p.X())))
	y0 := int(math.Floor(float64(p.Y())))
	z0 := int(math.Floor(float64(p.Z())))

	dx := p.X() - float32(x0)
	dy := p.Y() - float32(y0)
	dz := p.Z() - float32(z0)

	var l lattice
	i := 0
	for cx := 0; cx < 2; cx++ {
		wx := dx
		if cx == 0 {
			wx = 1 - dx
		}
		for cy := 0; cy < 2; cy++ {
			wy := dy
			if cy == 0 {
				wy = 1 - dy
			}
			for cz := 0; cz < 2; cz++ {
				wz := dz
				if cz == 0 {
					wz = 1 - dz
				}
				l.cells[i] = Pos{x0 + cx, y0 + cy, z0 + cz}
				l.weights[i] = wx * wy * wz
				i++
			}
		}
	}
	return l
}

// SamplePressure trilinearly interpolates pressure at p. All eight
// surrounding lattice points must be in bounds.
func (g *Grid) SamplePressure(p mgl32.Vec3) float32 {
	l := latticeAround(p)
	var out float32
	for i, cell := range l.cells {
		out += g.At(cell).Pressure * l.weights[i]
	}
	return out
}

// SampleVelocity trilinearly interpolates velocity at p.
func (g *Grid) SampleVelocity(p mgl32.Vec3) mgl32.Vec3 {
	l := latticeAround(p)
	var out mgl32.Vec3
	for i, cell := range l.cells {
		out = out.Add(g.At(cell).Velocity.Mul(l.weights[i]))
	}
	return out
}

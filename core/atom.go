package core

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Variant tags the discrete state of a cell.
type Variant uint8

const (
	Solid Variant = iota
	Gas
	GasSource
)

var variantNames = map[Variant]string{
	Solid:     "Solid",
	Gas:       "Gas",
	GasSource: "GasSource",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Atom is the full state of one grid cell. It is a closed sum type: the
// Variant tag decides which payload fields are meaningful.
//
//	Solid     -> Color
//	Gas       -> Pressure, Velocity
//	GasSource -> Direction
//
// Atoms are plain values and are copied freely.
type Atom struct {
	Variant   Variant
	Pressure  float32
	Velocity  mgl32.Vec3
	Color     mgl32.Vec4
	Direction mgl32.Vec3
}

// NewGas returns a still gas cell with zero pressure.
func NewGas() Atom {
	return Atom{Variant: Gas}
}

// NewSolid returns a solid cell with the given display color.
func NewSolid(color mgl32.Vec4) Atom {
	return Atom{Variant: Solid, Color: color}
}

// NewGasSource returns an emitter cell that injects gas toward direction.
// The direction must point at a face neighbor (a unit axis step).
func NewGasSource(direction mgl32.Vec3) Atom {
	return Atom{Variant: GasSource, Direction: direction}
}

// SumGas merges two gas atoms. The pressures add, and the velocity is the
// pressure-weighted sum of the two velocities. The velocity is deliberately
// not divided by the total pressure; every snapshot of this sandbox has used
// the unnormalized form and the simulation is tuned around it.
func SumGas(a, b Atom) Atom {
	if a.Variant != Gas || b.Variant != Gas {
		panic(fmt.Sprintf("SumGas called on %v and %v", a.Variant, b.Variant))
	}
	return Atom{
		Variant:  Gas,
		Pressure: a.Pressure + b.Pressure,
		Velocity: a.Velocity.Mul(a.Pressure).Add(b.Velocity.Mul(b.Pressure)),
	}
}

// atomJSON is the persisted form of an Atom: a variant tag plus only the
// payload fields that variant carries.
type atomJSON struct {
	Variant   string      `json:"variant"`
	Color     *mgl32.Vec4 `json:"color,omitempty"`
	Pressure  *float32    `json:"pressure,omitempty"`
	Velocity  *mgl32.Vec3 `json:"velocity,omitempty"`
	Direction *mgl32.Vec3 `json:"direction,omitempty"`
}

func (a Atom) MarshalJSON() ([]byte, error) {
	out := atomJSON{Variant: a.Variant.String()}
	switch a.Variant {
	case Solid:
		color := a.Color
		out.Color = &color
	case Gas:
		pressure := a.Pressure
		velocity := a.Velocity
		out.Pressure = &pressure
		out.Velocity = &velocity
	case GasSource:
		direction := a.Direction
		out.Direction = &direction
	default:
		return nil, fmt.Errorf("cannot encode atom variant %v", a.Variant)
	}
	return json.Marshal(out)
}

func (a *Atom) UnmarshalJSON(data []byte) error {
	var in atomJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*a = Atom{}
	switch in.Variant {
	case "Solid":
		a.Variant = Solid
		if in.Color != nil {
			a.Color = *in.Color
		}
	case "Gas":
		a.Variant = Gas
		if in.Pressure != nil {
			a.Pressure = *in.Pressure
		}
		if in.Velocity != nil {
			a.Velocity = *in.Velocity
		}
	case "GasSource":
		a.Variant = GasSource
		if in.Direction != nil {
			a.Direction = *in.Direction
		}
	default:
		return fmt.Errorf("unknown atom variant %q", in.Variant)
	}
	return nil
}

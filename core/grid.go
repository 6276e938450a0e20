package core

import (
	"encoding/json"
	"fmt"
	"iter"
	"log"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
)

// Pos addresses a single cell. Every component is within [0, Size) on a
// valid grid; accessors do not clamp, callers do.
type Pos struct {
	X, Y, Z int
}

// Add returns the componentwise sum of two positions.
func (p Pos) Add(o Pos) Pos {
	return Pos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Vec3 returns the cell's corner as a float vector.
func (p Pos) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
}

// Center returns the center of the unit cube occupied by the cell.
func (p Pos) Center() mgl32.Vec3 {
	return p.Vec3().Add(mgl32.Vec3{0.5, 0.5, 0.5})
}

// Grid is the dense cubic atom array plus the simulation step counter.
// It owns all atom storage outright; atoms are mutated in place through At.
type Grid struct {
	Atoms       [][][]Atom
	StepCounter uint64
}

var defaultSolidColor = mgl32.Vec4{0.5, 0.5, 0.5, 1.0}

// NewGrid builds the default grid: a uniform gas fill with five solid
// anchors inset one cell from the diagonal corners.
func NewGrid(size int) *Grid {
	g := &Grid{Atoms: makeAtoms(size)}
	if size >= 3 {
		s := size - 2
		anchors := []Pos{
			{1, 1, 1},
			{s, 1, 1},
			{1, s, 1},
			{1, 1, s},
			{s, s, s},
		}
		for _, p := range anchors {
			*g.At(p) = NewSolid(defaultSolidColor)
		}
	}
	return g
}

func makeAtoms(size int) [][][]Atom {
	atoms := make([][][]Atom, size)
	for x := range atoms {
		atoms[x] = make([][]Atom, size)
		for y := range atoms[x] {
			atoms[x][y] = make([]Atom, size)
			for z := range atoms[x][y] {
				atoms[x][y][z] = NewGas()
			}
		}
	}
	return atoms
}

// Size returns the cell count per axis.
func (g *Grid) Size() int {
	return len(g.Atoms)
}

// InBounds reports whether p addresses a cell of this grid.
func (g *Grid) InBounds(p Pos) bool {
	size := g.Size()
	return p.X >= 0 && p.X < size &&
		p.Y >= 0 && p.Y < size &&
		p.Z >= 0 && p.Z < size
}

// At returns the addressed atom for reading or in-place mutation.
// Out-of-bounds positions panic.
func (g *Grid) At(p Pos) *Atom {
	return &g.Atoms[p.X][p.Y][p.Z]
}

// Positions yields every cell position exactly once, x outermost and z
// innermost. Each call starts a fresh pass.
func (g *Grid) Positions() iter.Seq[Pos] {
	size := g.Size()
	return func(yield func(Pos) bool) {
		for x := 0; x < size; x++ {
			for y := 0; y < size; y++ {
				for z := 0; z < size; z++ {
					if !yield(Pos{x, y, z}) {
						return
					}
				}
			}
		}
	}
}

// LoadGrid restores a grid from the save file at path. Any failure, from a
// missing file to a malformed or wrong-shape atom array, falls back to the
// default grid; a corrupt save is discarded, not surfaced.
func LoadGrid(path string, size int) *Grid {
	atoms, err := loadAtoms(path, size)
	if err != nil {
		log.Printf("No usable grid save at %s (%v), creating new atoms", path, err)
		return NewGrid(size)
	}
	log.Printf("Loading atoms from %s", path)
	return &Grid{Atoms: atoms}
}

func loadAtoms(path string, size int) ([][][]Atom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var atoms [][][]Atom
	if err := json.Unmarshal(data, &atoms); err != nil {
		return nil, err
	}
	if len(atoms) != size {
		return nil, fmt.Errorf("saved grid is %d cells per axis, want %d", len(atoms), size)
	}
	for x := range atoms {
		if len(atoms[x]) != size {
			return nil, fmt.Errorf("saved grid is not cubic at x=%d", x)
		}
		for y := range atoms[x] {
			if len(atoms[x][y]) != size {
				return nil, fmt.Errorf("saved grid is not cubic at x=%d y=%d", x, y)
			}
		}
	}
	return atoms, nil
}

// Save writes the full atom array to path, overwriting whatever is there.
// There is no partial-write protection; an interrupted save corrupts the
// file, which LoadGrid then treats as absent.
func (g *Grid) Save(path string) error {
	data, err := json.Marshal(g.Atoms)
	if err != nil {
		return fmt.Errorf("serialize grid: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write grid save: %w", err)
	}
	return nil
}

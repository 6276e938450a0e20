// Package prototype keeps the flat 2D predecessor of the 3D sandbox alive:
// a square pressure grid with 2x2 checkerboard equalization, edge venting
// and drag-path painting. It shares no code with the 3D grid but documents
// where the equalization scheme came from.
package prototype

import "fmt"

// CellKind tags the discrete state of a 2D cell.
type CellKind uint8

const (
	CellGas CellKind = iota
	CellSolid
	CellLiquid
)

// Cell is one 2D grid cell. Pressure is only meaningful for CellGas.
type Cell struct {
	Kind     CellKind
	Pressure float32
}

// Grid2D is a square grid of cells indexed [x][y].
type Grid2D struct {
	Cells [][]Cell
}

// NewGrid2D builds an empty gas grid. The size must be even so the
// equalization blocks tile it exactly.
func NewGrid2D(size int) *Grid2D {
	if size%2 != 0 {
		panic(fmt.Sprintf("grid size %d is not even", size))
	}
	cells := make([][]Cell, size)
	for x := range cells {
		cells[x] = make([]Cell, size)
	}
	return &Grid2D{Cells: cells}
}

// Size returns the cell count per axis.
func (g *Grid2D) Size() int {
	return len(g.Cells)
}

// Update runs one simulation tick: equalize the even-aligned 2x2 blocks,
// then the odd-aligned interior blocks, then vent the edges.
func (g *Grid2D) Update() {
	size := g.Size()
	for x := 0; x < size; x += 2 {
		for y := 0; y < size; y += 2 {
			g.equalize2x2(x, y)
		}
	}
	for x := 1; x < size-1; x += 2 {
		for y := 1; y < size-1; y += 2 {
			g.equalize2x2(x, y)
		}
	}
	g.eraseEdges()
}

// equalize2x2 averages pressure across the gas cells of the block whose low
// corner is (x, y). Solids and liquids are skipped.
func (g *Grid2D) equalize2x2(x, y int) {
	var gas []*Cell
	var total float32
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			cell := &g.Cells[x+dx][y+dy]
			if cell.Kind != CellGas {
				continue
			}
			gas = append(gas, cell)
			total += cell.Pressure
		}
	}
	if len(gas) == 0 {
		return
	}
	share := total / float32(len(gas))
	for _, cell := range gas {
		cell.Pressure = share
	}
}

func (g *Grid2D) eraseEdges() {
	size := g.Size()
	for x := 0; x < size; x++ {
		g.Cells[x][0] = Cell{}
		g.Cells[x][size-1] = Cell{}
	}
	for y := 0; y < size; y++ {
		g.Cells[0][y] = Cell{}
		g.Cells[size-1][y] = Cell{}
	}
}

// PathBetween rasterizes a line of cells from start to end, stepping one
// cell at a time along whichever axis is currently furthest from the target.
// Both endpoints are included; identical endpoints yield a single cell.
func PathBetween(start, end [2]int) [][2]int {
	path := [][2]int{start}
	mover := start

	for mover != end {
		dx := mover[0] - end[0]
		dy := mover[1] - end[1]
		if absInt(dx) > absInt(dy) {
			if mover[0] < end[0] {
				mover[0]++
			} else {
				mover[0]--
			}
		} else {
			if mover[1] < end[1] {
				mover[1]++
			} else {
				mover[1]--
			}
		}
		path = append(path, mover)
	}
	return path
}

// PaintPath writes cell into every grid cell on the path between two drag
// points, clamping both endpoints into bounds.
func (g *Grid2D) PaintPath(start, end [2]int, cell Cell) {
	start = g.clamp(start)
	end = g.clamp(end)
	for _, p := range PathBetween(start, end) {
		g.Cells[p[0]][p[1]] = cell
	}
}

func (g *Grid2D) clamp(p [2]int) [2]int {
	max := g.Size() - 1
	for i := range p {
		if p[i] < 0 {
			p[i] = 0
		} else if p[i] > max {
			p[i] = max
		}
	}
	return p
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

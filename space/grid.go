// Package space implements the toroidal multi-occupancy grid.
package space

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/manifoldweb/simlab/components"
)

// Kind tags a grid occupant so cell contents can be filtered without
// consulting the entity store.
type Kind uint8

const (
	KindAgent Kind = iota
	KindResource
)

// Ref identifies one occupant of a cell.
type Ref struct {
	Kind   Kind
	Entity ecs.Entity
}

// Grid is a width x height toroidal lattice. Each cell holds zero or more
// occupants; agents and resources may share a cell. The grid indexes
// positions only - entity state lives in the ECS world.
type Grid struct {
	width     int
	height    int
	cells     [][]Ref
	locations map[Ref]components.Position
}

// NewGrid creates an empty grid. Dimensions must be positive.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("space: grid dimensions must be positive, got %dx%d", width, height)
	}
	return &Grid{
		width:     width,
		height:    height,
		cells:     make([][]Ref, width*height),
		locations: make(map[Ref]components.Position),
	}, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Wrap reduces arbitrary coordinates onto the torus. Go's % can return
// negative values, so the remainder is normalized.
func (g *Grid) Wrap(x, y int) (int, int) {
	return ((x % g.width) + g.width) % g.width, ((y % g.height) + g.height) % g.height
}

// Place inserts ref into the cell at (x, y) after modulo reduction.
// Placing a ref that is already on the grid panics: it means the caller
// and the grid have desynchronized.
func (g *Grid) Place(ref Ref, x, y int) {
	if _, ok := g.locations[ref]; ok {
		panic(fmt.Sprintf("space: ref already placed: %+v", ref))
	}
	x, y = g.Wrap(x, y)
	idx := g.index(x, y)
	g.cells[idx] = append(g.cells[idx], ref)
	g.locations[ref] = components.Position{X: x, Y: y}
}

// Move relocates ref to (x, y) after modulo reduction. Panics if ref is not
// currently placed.
func (g *Grid) Move(ref Ref, x, y int) {
	pos, ok := g.locations[ref]
	if !ok {
		panic(fmt.Sprintf("space: move of untracked ref: %+v", ref))
	}
	g.removeFromCell(ref, pos)
	x, y = g.Wrap(x, y)
	idx := g.index(x, y)
	g.cells[idx] = append(g.cells[idx], ref)
	g.locations[ref] = components.Position{X: x, Y: y}
}

// PositionOf returns the current cell of ref. Panics if ref is not placed.
func (g *Grid) PositionOf(ref Ref) components.Position {
	pos, ok := g.locations[ref]
	if !ok {
		panic(fmt.Sprintf("space: position query for untracked ref: %+v", ref))
	}
	return pos
}

// Contents returns a snapshot of the occupants at (x, y). Mutating the
// returned slice does not affect the grid.
func (g *Grid) Contents(x, y int) []Ref {
	x, y = g.Wrap(x, y)
	cell := g.cells[g.index(x, y)]
	out := make([]Ref, len(cell))
	copy(out, cell)
	return out
}

// Neighborhood returns the distinct Moore-adjacent cells around (x, y) with
// toroidal wraparound, in row-major scan order. On grids narrower than three
// cells neighbors collapse onto each other and duplicates are dropped, so
// fewer than eight cells may be returned (zero on a 1x1 grid when the center
// is excluded).
func (g *Grid) Neighborhood(x, y int, includeCenter bool) []components.Position {
	x, y = g.Wrap(x, y)
	out := make([]components.Position, 0, 9)
	seen := make(map[components.Position]struct{}, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := g.Wrap(x+dx, y+dy)
			p := components.Position{X: nx, Y: ny}
			if p.X == x && p.Y == y && !includeCenter {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

func (g *Grid) index(x, y int) int { return y*g.width + x }

// removeFromCell deletes ref from its cell preserving the order of the
// remaining occupants, so cell iteration stays deterministic.
func (g *Grid) removeFromCell(ref Ref, pos components.Position) {
	idx := g.index(pos.X, pos.Y)
	cell := g.cells[idx]
	for i, r := range cell {
		if r == ref {
			g.cells[idx] = append(cell[:i], cell[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("space: ref tracked at (%d,%d) but missing from cell: %+v", pos.X, pos.Y, ref))
}

// Package systems provides the occupancy grid, lookup tables, tile
// encoding and world generation for the simulation.
package systems

// Fixed-point layout: world coordinates carry 8 fractional bits and one
// grid cell covers 8 pixels, so converting a coordinate to a cell index
// shifts out 11 bits after half-cell rounding.
const (
	FracBits  = 8
	CellBits  = 3
	CellShift = CellBits + FracBits
	CellSize  = 1 << CellShift // one grid cell in fixed-point units
	HalfCell  = CellSize / 2
	OnePixel  = 1 << FracBits
)

// Grid cell sentinels. Positive values are agent slot index + 1.
const (
	CellEmpty int32 = 0
	CellWall  int32 = -1
)

// CellKind is the tagged classification of a raw cell value.
type CellKind uint8

const (
	CellKindEmpty CellKind = iota
	CellKindWall
	CellKindAgent
)

// Classify splits a raw cell value into its classification and, for
// agent cells, the agent's slot index.
func Classify(v int32) (CellKind, int) {
	switch {
	case v == CellEmpty:
		return CellKindEmpty, 0
	case v < 0:
		return CellKindWall, 0
	}
	return CellKindAgent, int(v) - 1
}

// GridPad is the permanent wall margin around the playable area, in cells.
// Two cells cover the worst case of a 2x2 block probe one cell past the
// playable edge, so block reads never need bounds checks.
const GridPad = 2

// Grid is the collision table: one int32 per cell, padded on all sides
// with permanent walls. Each agent occupies the 2x2 block of cells
// nearest its position. Mutated synchronously within a step, never
// concurrently.
type Grid struct {
	width  int // playable cells
	height int
	stride int
	cells  []int32
}

// NewGrid creates a grid for a playable area of width x height cells,
// all empty, surrounded by the padded wall border.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		stride: width + 2*GridPad,
	}
	g.cells = make([]int32, g.stride*(height+2*GridPad))
	g.Reset()
	return g
}

// Reset clears every playable cell to empty and restores the padding walls.
func (g *Grid) Reset() {
	for cy := -GridPad; cy < g.height+GridPad; cy++ {
		for cx := -GridPad; cx < g.width+GridPad; cx++ {
			v := CellEmpty
			if cx < 0 || cx >= g.width || cy < 0 || cy >= g.height {
				v = CellWall
			}
			g.cells[g.idx(cx, cy)] = v
		}
	}
}

// Width returns the playable width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the playable height in cells.
func (g *Grid) Height() int { return g.height }

func (g *Grid) idx(cx, cy int) int {
	return (cy+GridPad)*g.stride + cx + GridPad
}

// CellCoord converts a fixed-point world coordinate to a cell index with
// half-cell rounding.
func CellCoord(c int32) int {
	return int((c + HalfCell) >> CellShift)
}

// BlockOrigin returns the top-left cell of the 2x2 block nearest the
// given world position, clamped so the whole block stays in the padded
// array.
func (g *Grid) BlockOrigin(x, y int32) (int, int) {
	cx := clampInt(CellCoord(x), -GridPad, g.width+GridPad-2)
	cy := clampInt(CellCoord(y), -GridPad, g.height+GridPad-2)
	return cx, cy
}

// SetOccupant writes v into all 4 cells of the block nearest (x, y).
// Padding cells are never overwritten: they stay permanent walls.
func (g *Grid) SetOccupant(x, y int32, v int32) {
	cx, cy := g.BlockOrigin(x, y)
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if g.inPlayable(cx+dx, cy+dy) {
				g.cells[g.idx(cx+dx, cy+dy)] = v
			}
		}
	}
}

// Occupants returns the 4 cell values of the block nearest (x, y) in
// row-major order.
func (g *Grid) Occupants(x, y int32) [4]int32 {
	cx, cy := g.BlockOrigin(x, y)
	return [4]int32{
		g.cells[g.idx(cx, cy)],
		g.cells[g.idx(cx+1, cy)],
		g.cells[g.idx(cx, cy+1)],
		g.cells[g.idx(cx+1, cy+1)],
	}
}

// IsEmpty reports whether all 4 cells of the block nearest (x, y) are
// empty. Pure read: calling it repeatedly without mutation in between
// always returns the same result.
func (g *Grid) IsEmpty(x, y int32) bool {
	for _, v := range g.Occupants(x, y) {
		if v != CellEmpty {
			return false
		}
	}
	return true
}

// CellAt returns the value of a single cell by cell coordinates.
// Anything outside the padded array reads as permanent wall.
func (g *Grid) CellAt(cx, cy int) int32 {
	if cx < -GridPad || cx >= g.width+GridPad || cy < -GridPad || cy >= g.height+GridPad {
		return CellWall
	}
	return g.cells[g.idx(cx, cy)]
}

// SetCell writes a single playable cell by cell coordinates.
// Writes outside the playable area are dropped so the border stays wall.
func (g *Grid) SetCell(cx, cy int, v int32) {
	if g.inPlayable(cx, cy) {
		g.cells[g.idx(cx, cy)] = v
	}
}

func (g *Grid) inPlayable(cx, cy int) bool {
	return cx >= 0 && cx < g.width && cy >= 0 && cy < g.height
}

// CellCenter returns the fixed-point world position whose 2x2 block
// origin is exactly (cx, cy). Used for spawn placement.
func CellCenter(cx, cy int) (int32, int32) {
	return int32(cx) << CellShift, int32(cy) << CellShift
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

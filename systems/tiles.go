package systems

import "math/rand"

// Wall tile indices follow the tile table convention: indices
// 0x00..0x0f encode the 4-bit orthogonal adjacency of an empty cell,
// 0x10..0x7f are random variations of those, and 0x80 is the solid wall
// tile. Diagonal neighbors are deliberately ignored; 8x8 tiles don't
// have enough detail to make diagonal variants worthwhile.
const (
	AdjRight = 1 << 0 // neighbor to the right is a wall
	AdjBelow = 1 << 1
	AdjLeft  = 1 << 2
	AdjAbove = 1 << 3

	WallTileSolid     = 0x80
	wallVariantShift  = 4
	wallVariantValues = 8 // 3 variation bits
)

// WallTile is the unpacked form of a non-solid wall tile index.
type WallTile struct {
	Adjacency uint8 // 4 bits, Adj* mask
	Variant   uint8 // 3 bits
}

// Pack encodes the tile into its table index.
func (t WallTile) Pack() uint8 {
	return t.Adjacency&0x0f | t.Variant<<wallVariantShift&0x70
}

// UnpackWallTile decodes a non-solid wall tile index.
func UnpackWallTile(v uint8) WallTile {
	return WallTile{
		Adjacency: v & 0x0f,
		Variant:   v >> wallVariantShift & 0x07,
	}
}

// FloorTileCells is the edge length of one floor tile in grid cells
// (floor tiles are 64px over 8px cells).
const FloorTileCells = 8

// Floor tile indices carry two continuity bits so adjacent tiles join
// up visually: bit 6 copies bit 0 of the tile above, bit 7 copies bit 1
// of the tile to the left. The remaining 6 bits are free variation.
const (
	floorFromAbove = 0x40
	floorFromLeft  = 0x80
	floorRandom    = 0x3f
)

// FloorTile builds a floor tile index from its neighbors and a random byte.
func FloorTile(above, left, random uint8) uint8 {
	return (left&0x02)<<6 | (above&0x01)<<6 | random&floorRandom
}

// TileMaps holds the derived wall and floor tile layers plus the
// decoration state that goes with them. Read-mostly views over the
// occupancy grid: regenerated wholesale per world, patched locally when
// a wall cell is destroyed.
type TileMaps struct {
	Width  int // in cells (wall layer resolution)
	Height int
	Wall   []uint8

	FloorW int // in floor tiles
	FloorH int
	Floor  []uint8

	SpecialX, SpecialY int // floor-tile coordinates of the respawn trigger tile
	ShiftX, ShiftY     int // decorative sub-tile pixel shift of the floor layer
}

// NewTileMaps allocates tile layers for a playable area of w x h cells.
func NewTileMaps(w, h int) *TileMaps {
	fw := (w + FloorTileCells - 1) / FloorTileCells
	fh := (h + FloorTileCells - 1) / FloorTileCells
	return &TileMaps{
		Width:  w,
		Height: h,
		Wall:   make([]uint8, w*h),
		FloorW: fw,
		FloorH: fh,
		Floor:  make([]uint8, fw*fh),
	}
}

// WallAt returns the wall tile index at cell (cx, cy).
func (t *TileMaps) WallAt(cx, cy int) uint8 {
	return t.Wall[cy*t.Width+cx]
}

// SetWall writes the wall tile index at cell (cx, cy).
func (t *TileMaps) SetWall(cx, cy int, v uint8) {
	t.Wall[cy*t.Width+cx] = v
}

// FloorAt returns the floor tile index at floor-tile coordinates.
func (t *TileMaps) FloorAt(fx, fy int) uint8 {
	return t.Floor[fy*t.FloorW+fx]
}

// SpecialTileCellRect returns the cell rectangle covered by the special
// floor tile, clipped to the playable area.
func (t *TileMaps) SpecialTileCellRect() (x0, y0, x1, y1 int) {
	x0 = t.SpecialX * FloorTileCells
	y0 = t.SpecialY * FloorTileCells
	x1 = x0 + FloorTileCells
	y1 = y0 + FloorTileCells
	if x1 > t.Width {
		x1 = t.Width
	}
	if y1 > t.Height {
		y1 = t.Height
	}
	return
}

// wallTileFor derives the tile index for one cell from grid wall state.
func wallTileFor(g *Grid, cx, cy int, rng *rand.Rand) uint8 {
	if g.CellAt(cx, cy) == CellWall {
		return WallTileSolid
	}
	var adj uint8
	if g.CellAt(cx+1, cy) == CellWall {
		adj |= AdjRight
	}
	if g.CellAt(cx, cy+1) == CellWall {
		adj |= AdjBelow
	}
	if g.CellAt(cx-1, cy) == CellWall {
		adj |= AdjLeft
	}
	if g.CellAt(cx, cy-1) == CellWall {
		adj |= AdjAbove
	}
	return WallTile{Adjacency: adj, Variant: uint8(rng.Intn(wallVariantValues))}.Pack()
}

// RederiveWallTiles repairs the wall tile layer after a wall cell at
// (cx, cy) changes: the cell itself and its 4 orthogonal neighbors are
// recomputed from the grid. Local patch only, never a full-map pass.
func RederiveWallTiles(g *Grid, t *TileMaps, cx, cy int, rng *rand.Rand) {
	patch := [5][2]int{{cx, cy}, {cx + 1, cy}, {cx - 1, cy}, {cx, cy + 1}, {cx, cy - 1}}
	for _, p := range patch {
		px, py := p[0], p[1]
		if px < 0 || px >= t.Width || py < 0 || py >= t.Height {
			continue
		}
		t.SetWall(px, py, wallTileFor(g, px, py, rng))
	}
}

package systems

import (
	"math/rand"
	"time"
)

// CellXY is a cell coordinate pair.
type CellXY struct {
	X, Y int
}

// GenPhase identifies a world generation phase. Phases run in declaration
// order; WaitForGameEnd blocks until the previous game is flagged over so
// a half-built world never replaces one still being played.
type GenPhase uint8

const (
	PhaseSeed GenPhase = iota
	PhaseSmooth
	PhaseBorder
	PhaseCarveSpawns
	PhaseConvertSentinels
	PhaseWallTiles
	PhaseFloorTiles
	PhaseSpecialTile
	PhaseWaitForGameEnd
	PhaseCommitGrid
	PhaseCommitWallTiles
	PhaseDone
)

func (p GenPhase) String() string {
	switch p {
	case PhaseSeed:
		return "seed"
	case PhaseSmooth:
		return "smooth"
	case PhaseBorder:
		return "border"
	case PhaseCarveSpawns:
		return "carve_spawns"
	case PhaseConvertSentinels:
		return "convert_sentinels"
	case PhaseWallTiles:
		return "wall_tiles"
	case PhaseFloorTiles:
		return "floor_tiles"
	case PhaseSpecialTile:
		return "special_tile"
	case PhaseWaitForGameEnd:
		return "wait_for_game_end"
	case PhaseCommitGrid:
		return "commit_grid"
	case PhaseCommitWallTiles:
		return "commit_wall_tiles"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// GeneratorConfig holds the generation tuning constants.
type GeneratorConfig struct {
	WallSeedProbability float64
	SmoothingRounds     int
	RowsPerWorkUnit     int
}

// Generator builds the next world into private scratch buffers as a
// sequence of bounded work units, then commits into the live grid and
// tile maps. Cellular automaton cave generation: random seed, majority
// smoothing, wall border, spawn carving. Generation never fails; a
// pathological seed just yields a more or less open map.
//
// Connectivity is NOT guaranteed. A flood-fill pass that sealed off
// unreachable pockets was prototyped and rejected: breakable walls let
// agents punch through to wherever they want to go at a fraction of the
// cost.
type Generator struct {
	grid  *Grid
	tiles *TileMaps
	rng   *rand.Rand
	cfg   GeneratorConfig

	spawns []CellXY

	w, h       int
	walls, buf []bool // double-buffered smoothing scratch
	cells      []int32
	wallTiles  []uint8
	floorTiles []uint8

	// Floor generation carry (one row of already-placed tiles).
	prevRow  []uint8
	prevCell uint8

	specialX, specialY int
	shiftX, shiftY     int

	phase    GenPhase
	row      int
	round    int
	progress int
	total    int
}

// NewGenerator creates a generator targeting the given live grid and tile
// maps. spawns are the planned initial agent positions; empty holes are
// carved there so every spawn is valid. The generator owns rng; reuse of
// a seeded source makes the whole sequence deterministic.
func NewGenerator(grid *Grid, tiles *TileMaps, spawns []CellXY, cfg GeneratorConfig, rng *rand.Rand) *Generator {
	w, h := grid.Width(), grid.Height()
	gen := &Generator{
		grid:       grid,
		tiles:      tiles,
		rng:        rng,
		cfg:        cfg,
		spawns:     spawns,
		w:          w,
		h:          h,
		walls:      make([]bool, w*h),
		buf:        make([]bool, w*h),
		cells:      make([]int32, w*h),
		wallTiles:  make([]uint8, w*h),
		floorTiles: make([]uint8, tiles.FloorW*tiles.FloorH),
		prevRow:    make([]uint8, tiles.FloorW),
		phase:      PhaseSeed,
	}

	rowUnits := (h + cfg.RowsPerWorkUnit - 1) / cfg.RowsPerWorkUnit
	floorUnits := tiles.FloorH
	// Seed + smoothing rounds + convert + wall tiles are row-batched;
	// border, carve, special and the two commits are single units. The
	// commits are an irreducible fixed-cost tail: bulk copies that can't
	// be split further.
	gen.total = rowUnits*(3+cfg.SmoothingRounds) + floorUnits + 5
	return gen
}

// Progress returns completed and total work units.
func (gen *Generator) Progress() (done, total int) {
	return gen.progress, gen.total
}

// Phase returns the current generation phase.
func (gen *Generator) Phase() GenPhase { return gen.phase }

// Done reports whether the new world has been committed.
func (gen *Generator) Done() bool { return gen.phase == PhaseDone }

// Step runs work units until the budget is exhausted or generation
// completes, and reports completion. A budget <= 0 means unbounded (the
// synchronous regeneration path). gameEnded gates the commit phases: the
// scratch world only replaces the live one once the previous game is no
// longer active. Individual units have no timeout; only the aggregate
// budget is enforced, so a unit that overruns simply ends the slice late.
func (gen *Generator) Step(budget time.Duration, gameEnded bool) bool {
	if gen.phase == PhaseDone {
		return true
	}
	start := time.Now()
	for gen.phase != PhaseDone {
		if gen.phase == PhaseWaitForGameEnd {
			if !gameEnded {
				return false
			}
			gen.phase = PhaseCommitGrid
		}
		gen.runUnit()
		if budget > 0 && time.Since(start) >= budget {
			break
		}
	}
	return gen.phase == PhaseDone
}

// runUnit executes one bounded work unit of the current phase.
func (gen *Generator) runUnit() {
	switch gen.phase {
	case PhaseSeed:
		gen.seedRows()
	case PhaseSmooth:
		gen.smoothRows()
	case PhaseBorder:
		gen.forceBorder()
		gen.phase = PhaseCarveSpawns
	case PhaseCarveSpawns:
		gen.carveSpawns()
		gen.phase = PhaseConvertSentinels
	case PhaseConvertSentinels:
		gen.convertRows()
	case PhaseWallTiles:
		gen.wallTileRows()
	case PhaseFloorTiles:
		gen.floorTileRow()
	case PhaseSpecialTile:
		gen.placeSpecialTile()
		gen.phase = PhaseWaitForGameEnd
	case PhaseCommitGrid:
		gen.commitGrid()
		gen.phase = PhaseCommitWallTiles
	case PhaseCommitWallTiles:
		gen.commitTiles()
		gen.phase = PhaseDone
	}
	gen.progress++
}

func (gen *Generator) wallAt(x, y int) bool {
	if x < 0 || x >= gen.w || y < 0 || y >= gen.h {
		return true
	}
	return gen.walls[y*gen.w+x]
}

// advanceRows moves the row cursor one batch forward and reports whether
// the current pass over the map is finished.
func (gen *Generator) advanceRows() (y0, y1 int, passDone bool) {
	y0 = gen.row
	y1 = y0 + gen.cfg.RowsPerWorkUnit
	if y1 >= gen.h {
		y1 = gen.h
		passDone = true
		gen.row = 0
	} else {
		gen.row = y1
	}
	return
}

func (gen *Generator) seedRows() {
	y0, y1, done := gen.advanceRows()
	for y := y0; y < y1; y++ {
		for x := 0; x < gen.w; x++ {
			gen.walls[y*gen.w+x] = gen.rng.Float64() < gen.cfg.WallSeedProbability
		}
	}
	if done {
		gen.phase = PhaseSmooth
	}
}

// smoothRows applies one batch of majority-rule smoothing into the back
// buffer; a cell becomes wall when 5 or more of its 3x3 neighborhood are
// wall, with out-of-range treated as wall.
func (gen *Generator) smoothRows() {
	y0, y1, done := gen.advanceRows()
	for y := y0; y < y1; y++ {
		for x := 0; x < gen.w; x++ {
			count := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if gen.wallAt(x+dx, y+dy) {
						count++
					}
				}
			}
			gen.buf[y*gen.w+x] = count >= 5
		}
	}
	if done {
		gen.walls, gen.buf = gen.buf, gen.walls
		gen.round++
		if gen.round >= gen.cfg.SmoothingRounds {
			gen.phase = PhaseBorder
		}
	}
}

func (gen *Generator) forceBorder() {
	for x := 0; x < gen.w; x++ {
		gen.walls[x] = true
		gen.walls[(gen.h-1)*gen.w+x] = true
	}
	for y := 0; y < gen.h; y++ {
		gen.walls[y*gen.w] = true
		gen.walls[y*gen.w+gen.w-1] = true
	}
}

// carveSpawns punches an empty hole around every planned spawn block so
// placement never lands inside a wall.
func (gen *Generator) carveSpawns() {
	for _, s := range gen.spawns {
		for y := s.Y - 1; y <= s.Y+2; y++ {
			for x := s.X - 1; x <= s.X+2; x++ {
				if x > 0 && x < gen.w-1 && y > 0 && y < gen.h-1 {
					gen.walls[y*gen.w+x] = false
				}
			}
		}
	}
}

func (gen *Generator) convertRows() {
	y0, y1, done := gen.advanceRows()
	for y := y0; y < y1; y++ {
		for x := 0; x < gen.w; x++ {
			v := CellEmpty
			if gen.walls[y*gen.w+x] {
				v = CellWall
			}
			gen.cells[y*gen.w+x] = v
		}
	}
	if done {
		gen.phase = PhaseWallTiles
	}
}

func (gen *Generator) wallTileRows() {
	y0, y1, done := gen.advanceRows()
	for y := y0; y < y1; y++ {
		for x := 0; x < gen.w; x++ {
			gen.wallTiles[y*gen.w+x] = gen.scratchWallTile(x, y)
		}
	}
	if done {
		gen.phase = PhaseFloorTiles
		// Invisible previous row seeding the floor continuity chain.
		for i := range gen.prevRow {
			gen.prevRow[i] = uint8(gen.rng.Intn(256))
		}
	}
}

func (gen *Generator) scratchWallTile(x, y int) uint8 {
	if gen.wallAt(x, y) {
		return WallTileSolid
	}
	var adj uint8
	if gen.wallAt(x+1, y) {
		adj |= AdjRight
	}
	if gen.wallAt(x, y+1) {
		adj |= AdjBelow
	}
	if gen.wallAt(x-1, y) {
		adj |= AdjLeft
	}
	if gen.wallAt(x, y-1) {
		adj |= AdjAbove
	}
	return WallTile{Adjacency: adj, Variant: uint8(gen.rng.Intn(wallVariantValues))}.Pack()
}

// floorTileRow generates one row of floor tiles, chaining the two high
// continuity bits from the tiles above and to the left.
func (gen *Generator) floorTileRow() {
	fw := gen.tiles.FloorW
	y := gen.row
	// Invisible tile to the left of the first column.
	gen.prevCell = uint8(gen.rng.Intn(256))
	for x := 0; x < fw; x++ {
		cell := FloorTile(gen.prevRow[x], gen.prevCell, uint8(gen.rng.Intn(256)))
		gen.floorTiles[y*fw+x] = cell
		gen.prevRow[x] = cell
		gen.prevCell = cell
	}
	gen.row++
	if gen.row >= gen.tiles.FloorH {
		gen.row = 0
		gen.phase = PhaseSpecialTile
	}
}

// placeSpecialTile marks exactly one interior floor tile as the respawn
// trigger and forces edge continuity on its orthogonal neighbors, then
// rolls the decorative sub-tile pixel shift for the floor layer.
func (gen *Generator) placeSpecialTile() {
	fw, fh := gen.tiles.FloorW, gen.tiles.FloorH
	gen.specialX = 1 + gen.rng.Intn(fw-2)
	gen.specialY = 1 + gen.rng.Intn(fh-2)

	sx, sy := gen.specialX, gen.specialY
	above := gen.floorTiles[(sy-1)*fw+sx]
	left := gen.floorTiles[sy*fw+sx-1]
	special := FloorTile(above, left, uint8(gen.rng.Intn(256)))
	gen.floorTiles[sy*fw+sx] = special

	// Right and below neighbors copy their continuity bits from the
	// special tile; above and left already fed into it.
	right := gen.floorTiles[sy*fw+sx+1]
	gen.floorTiles[sy*fw+sx+1] = right&^floorFromLeft | (special&0x02)<<6
	below := gen.floorTiles[(sy+1)*fw+sx]
	gen.floorTiles[(sy+1)*fw+sx] = below&^floorFromAbove | (special&0x01)<<6

	tilePixels := FloorTileCells * (1 << CellBits)
	gen.shiftX = gen.rng.Intn(tilePixels)
	gen.shiftY = gen.rng.Intn(tilePixels)
}

// commitGrid swaps the scratch wall layout into the live occupancy grid.
// Runs only after the previous game has fully ended.
func (gen *Generator) commitGrid() {
	gen.grid.Reset()
	for y := 0; y < gen.h; y++ {
		for x := 0; x < gen.w; x++ {
			if gen.cells[y*gen.w+x] == CellWall {
				gen.grid.SetCell(x, y, CellWall)
			}
		}
	}
}

func (gen *Generator) commitTiles() {
	copy(gen.tiles.Wall, gen.wallTiles)
	copy(gen.tiles.Floor, gen.floorTiles)
	gen.tiles.SpecialX = gen.specialX
	gen.tiles.SpecialY = gen.specialY
	gen.tiles.ShiftX = gen.shiftX
	gen.tiles.ShiftY = gen.shiftY
}

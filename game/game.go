// Package game wires the occupancy grid, agent store, movement engine,
// collision resolver and respawn subsystem into a tick-driven simulation.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/triogrid/melee/components"
	"github.com/triogrid/melee/config"
	"github.com/triogrid/melee/systems"
	"github.com/triogrid/melee/telemetry"
)

// Options configures a new Game.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
}

// Game is the simulation world aggregate: ECS agent store, occupancy
// grid, tile maps, per-kind population counters, RNG and the background
// world generator. Everything runs on a single goroutine; background
// generation is cooperative interleaving inside Step, not a thread.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	agentMapper *ecs.Map3[components.Position, components.Motion, components.Status]
	agentFilter *ecs.Filter3[components.Position, components.Motion, components.Status]
	posMap      *ecs.Map1[components.Position]
	motMap      *ecs.Map1[components.Motion]
	statMap     *ecs.Map1[components.Status]

	// agents holds one entity per slot for the process lifetime. Slots
	// are never freed; slot index + 1 is the value occupancy grid cells
	// carry. Kinds are assigned from the slot index once, at creation.
	agents []ecs.Entity

	grid   *systems.Grid
	tiles  *systems.TileMaps
	gen    *systems.Generator
	spawns []systems.CellXY

	liveCount  [components.NumKinds]int
	dyingCount [components.NumKinds]int
	deadCount  [components.NumKinds]int

	tick       int64
	gameActive bool

	viewX, viewY int32
	player       playerControl
	respawnGate  func(components.Kind) bool

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perf      *PerfStats
	logStats  bool
}

// NewGame creates a game, generates the first world synchronously and
// places the initial population.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	world := ecs.NewWorld()

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		agentMapper: ecs.NewMap3[
			components.Position,
			components.Motion,
			components.Status,
		](world),
		agentFilter: ecs.NewFilter3[
			components.Position,
			components.Motion,
			components.Status,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		motMap:    ecs.NewMap1[components.Motion](world),
		statMap:   ecs.NewMap1[components.Status](world),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindowTicks),
		perf:      NewPerfStats(),
		logStats:  opts.LogStats,
	}
	g.player.slot = -1

	g.grid = systems.NewGrid(cfg.World.Width, cfg.World.Height)
	g.tiles = systems.NewTileMaps(cfg.World.Width, cfg.World.Height)

	var err error
	g.spawns, err = spawnLattice(cfg)
	if err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	g.output = om
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	g.createAgents(cfg)
	g.ResetWorld()

	return g, nil
}

// createAgents allocates every agent slot. Kind is a pure function of the
// slot index and never changes afterwards; all other fields are reset per
// round.
func (g *Game) createAgents(cfg *config.Config) {
	g.agents = make([]ecs.Entity, cfg.Derived.TotalAgents)
	for i := range g.agents {
		pos := components.Position{}
		mot := components.Motion{Heading: 1, TargetHeading: 1}
		st := components.Status{Kind: kindForSlot(cfg, i), State: components.StateDead}
		g.agents[i] = g.agentMapper.NewEntity(&pos, &mot, &st)
	}
}

// kindForSlot maps a slot index to its fixed kind: battle kinds in
// contiguous blocks, then alternating slimes.
func kindForSlot(cfg *config.Config, i int) components.Kind {
	per := cfg.Population.PerKind
	switch {
	case i < per:
		return components.KindRock
	case i < 2*per:
		return components.KindPaper
	case i < 3*per:
		return components.KindScissors
	}
	if (i-3*per)%2 == 0 {
		return components.KindLightSlime
	}
	return components.KindDarkSlime
}

// spawnLattice lays out candidate spawn cells on a fixed-pitch lattice
// inside the playable area, enough for the whole population.
func spawnLattice(cfg *config.Config) ([]systems.CellXY, error) {
	const margin = 3
	pitch := cfg.Population.SpawnSpacing
	if pitch < 3 {
		pitch = 3
	}

	var cells []systems.CellXY
	for y := margin; y < cfg.World.Height-margin; y += pitch {
		for x := margin; x < cfg.World.Width-margin; x += pitch {
			cells = append(cells, systems.CellXY{X: x, Y: y})
			if len(cells) == cfg.Derived.TotalAgents {
				return cells, nil
			}
		}
	}
	return nil, fmt.Errorf("world %dx%d too small for %d agents at spacing %d",
		cfg.World.Width, cfg.World.Height, cfg.Derived.TotalAgents, pitch)
}

// Step runs one full simulation tick: movement and collision for every
// agent, then the respawn check, then whatever remains of the tick budget
// goes to background world generation. One step always runs to
// completion; nothing suspends mid-step.
func (g *Game) Step() {
	cfg := config.Cfg()
	start := time.Now()

	if g.gameActive {
		g.stepAgents()
		g.checkRespawn()
	}
	g.tick++

	if g.collector.ShouldFlush(g.tick) {
		stats := g.collector.Flush(g.tick, g.liveCount, g.dyingCount, g.deadCount)
		if g.logStats {
			stats.LogStats()
		}
		if err := g.output.WriteStats(stats); err != nil {
			slog.Warn("stats write failed", "error", err)
		}
	}

	if g.gen != nil && !g.gen.Done() {
		budget := time.Duration(cfg.Scheduler.TickBudgetMicros)*time.Microsecond - time.Since(start)
		if budget > 0 {
			g.gen.Step(budget, !g.gameActive)
		}
	}

	g.perf.Record("step", time.Since(start))
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 { return g.tick }

// Active reports whether a round is currently being played.
func (g *Game) Active() bool { return g.gameActive }

// LiveCount returns the live population of a kind.
func (g *Game) LiveCount(k components.Kind) int { return g.liveCount[k] }

// Counts returns the live/dying/dead population arrays.
func (g *Game) Counts() (live, dying, dead [components.NumKinds]int) {
	return g.liveCount, g.dyingCount, g.deadCount
}

// Tiles exposes the derived tile layers for the rendering collaborator.
func (g *Game) Tiles() *systems.TileMaps { return g.tiles }

// Grid exposes the occupancy grid. Read-only for collaborators.
func (g *Game) Grid() *systems.Grid { return g.grid }

// SetViewCenter supplies the current view position used by the respawn
// visibility-window exclusion.
func (g *Game) SetViewCenter(x, y int32) {
	g.viewX, g.viewY = x, y
}

// SetRespawnGate installs a caller-owned veto over revivals of a kind.
// The game-state collaborator uses this to protect the player-controlled
// kind's elimination from being undone.
func (g *Game) SetRespawnGate(gate func(components.Kind) bool) {
	g.respawnGate = gate
}

// AgentSnapshot is the read-only view of one agent handed to rendering.
type AgentSnapshot struct {
	Kind    components.Kind
	State   components.State
	X, Y    int32
	Heading uint8
	Frame   int32
}

// Agent returns a snapshot of the agent in the given slot.
func (g *Game) Agent(slot int) AgentSnapshot {
	e := g.agents[slot]
	pos := g.posMap.Get(e)
	mot := g.motMap.Get(e)
	st := g.statMap.Get(e)
	return AgentSnapshot{
		Kind:    st.Kind,
		State:   st.State,
		X:       pos.X,
		Y:       pos.Y,
		Heading: mot.Heading,
		Frame:   st.Frame,
	}
}

// NumAgents returns the total number of agent slots.
func (g *Game) NumAgents() int { return len(g.agents) }

// Close flushes output files.
func (g *Game) Close() error {
	return g.output.Close()
}

package game

import (
	"log/slog"

	"github.com/triogrid/melee/components"
	"github.com/triogrid/melee/config"
	"github.com/triogrid/melee/systems"
)

// ResetWorld discards the current world, generates a fresh one
// synchronously and starts a new round on it. Used at startup and by
// headless runs; interactive restarts go through StartWorldGeneration so
// the old round keeps playing while the next map builds.
func (g *Game) ResetWorld() {
	g.gameActive = false
	g.StartWorldGeneration()
	g.gen.Step(0, true)
	g.BeginRound()
}

// StartWorldGeneration kicks off background generation of the next world.
// The generator runs in slices inside Step and parks before touching
// shared state until the current round ends.
func (g *Game) StartWorldGeneration() {
	cfg := config.Cfg()
	g.gen = systems.NewGenerator(g.grid, g.tiles, g.spawns, systems.GeneratorConfig{
		WallSeedProbability: cfg.Generation.WallSeedProbability,
		SmoothingRounds:     cfg.Generation.SmoothingRounds,
		RowsPerWorkUnit:     cfg.Generation.RowsPerWorkUnit,
	}, g.rng)
}

// WorldReady reports whether the pending world has been committed and a
// new round can begin.
func (g *Game) WorldReady() bool {
	return g.gen != nil && g.gen.Done()
}

// GenerationProgress returns completed and total work units of the
// pending generation, or zeros when none is running.
func (g *Game) GenerationProgress() (done, total int) {
	if g.gen == nil {
		return 0, 0
	}
	return g.gen.Progress()
}

// BeginRound places the full population on the committed world and
// activates the simulation. Every agent comes back live with a fresh
// random spawn cell, heading and gait phase.
func (g *Game) BeginRound() {
	if !g.WorldReady() {
		slog.Warn("round start before world committed")
		return
	}

	perm := g.rng.Perm(len(g.spawns))

	g.liveCount = [components.NumKinds]int{}
	g.dyingCount = [components.NumKinds]int{}
	g.deadCount = [components.NumKinds]int{}

	for i, e := range g.agents {
		cell := g.spawns[perm[i]]
		pos := g.posMap.Get(e)
		mot := g.motMap.Get(e)
		st := g.statMap.Get(e)

		pos.X, pos.Y = systems.CellCenter(cell.X, cell.Y)
		h := systems.WrapHeading(1 + g.rng.Intn(systems.NumHeadings))
		mot.Heading = h
		mot.TargetHeading = h
		mot.KillerHeading = 0
		mot.StunFrames = 0
		st.State = components.StateLive
		st.Frame = int32(g.rng.Intn(systems.GaitFrames))

		g.grid.SetOccupant(pos.X, pos.Y, int32(i)+1)
		g.liveCount[st.Kind]++
	}

	g.gameActive = true
	slog.Info("round started", "tick", g.tick, "agents", len(g.agents))
}

// EndRound freezes the simulation. Agents stay in place until the next
// BeginRound; the parked generator may now commit a pending world.
func (g *Game) EndRound() {
	g.gameActive = false
}

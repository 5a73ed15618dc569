package game

import (
	"github.com/triogrid/melee/components"
	"github.com/triogrid/melee/config"
	"github.com/triogrid/melee/systems"
)

// resolveMove attempts to move one agent to (nx, ny), resolving whatever
// occupies the destination block. Moves within the current block always
// commit. Crossing into a new block kills live prey found there, may
// break walls, and rolls the move back with a stun when anything else is
// in the way. Only the mover can kill: a predator standing still is safe
// ground for its prey to bump into.
func (g *Game) resolveMove(slot int, pos *components.Position, mot *components.Motion, st *components.Status, nx, ny int32) {
	cfg := config.Cfg()

	obx, oby := g.grid.BlockOrigin(pos.X, pos.Y)
	nbx, nby := g.grid.BlockOrigin(nx, ny)
	if obx == nbx && oby == nby {
		pos.X, pos.Y = nx, ny
		return
	}

	id := int32(slot) + 1
	g.grid.SetOccupant(pos.X, pos.Y, systems.CellEmpty)

	blocked := false
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			cx, cy := nbx+dx, nby+dy
			kind, other := systems.Classify(g.grid.CellAt(cx, cy))
			switch kind {
			case systems.CellKindEmpty:
			case systems.CellKindWall:
				if g.rng.Float64() < cfg.Combat.WallBreakChance {
					g.grid.SetCell(cx, cy, systems.CellEmpty)
					systems.RederiveWallTiles(g.grid, g.tiles, cx, cy, g.rng)
					g.collector.RecordWallBreak()
				}
				// A broken wall still blocks the tick it breaks on.
				blocked = true
			case systems.CellKindAgent:
				if other == slot {
					// Stale self reference from a partially overlapping
					// block; our cells were just cleared, treat as free.
					continue
				}
				ost := g.statMap.Get(g.agents[other])
				if ost.State == components.StateLive && st.Kind.Prey() == ost.Kind {
					g.killAgent(slot, other)
				} else {
					blocked = true
				}
			}
		}
	}

	if blocked {
		g.grid.SetOccupant(pos.X, pos.Y, id)
		j := cfg.Combat.HeadingJitter
		mot.TargetHeading = systems.WrapHeading(int(mot.Heading) + g.rng.Intn(2*j+1) - j)
		if st.Kind.IsSlime() {
			mot.StunFrames = int16(cfg.Combat.SlimeStunFrames)
		} else {
			mot.StunFrames = int16(cfg.Combat.StunFrames)
		}
		g.collector.RecordStun()
		return
	}

	g.grid.SetOccupant(nx, ny, id)
	pos.X, pos.Y = nx, ny
}

// killAgent moves a victim to the dying state and frees its grid cells
// immediately so the kill opens the path within the same tick.
func (g *Game) killAgent(killer, victim int) {
	vp := g.posMap.Get(g.agents[victim])
	vm := g.motMap.Get(g.agents[victim])
	vs := g.statMap.Get(g.agents[victim])
	km := g.motMap.Get(g.agents[killer])

	g.grid.SetOccupant(vp.X, vp.Y, systems.CellEmpty)
	vs.State = components.StateDying
	vs.Frame = 0
	vm.KillerHeading = km.Heading
	vm.StunFrames = 0

	g.liveCount[vs.Kind]--
	g.dyingCount[vs.Kind]++
	g.collector.RecordKill(vs.Kind)
}

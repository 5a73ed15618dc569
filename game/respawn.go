package game

import (
	"log/slog"

	"github.com/triogrid/melee/components"
	"github.com/triogrid/melee/config"
	"github.com/triogrid/melee/systems"
)

// checkRespawn runs once per tick after movement. When a battle kind has
// been wiped out while the other two still stand, a live agent of the
// extinct kind's prey standing on the special floor tile revives one dead
// agent of the extinct kind. Prey triggers the return of its own
// predator; lingering near the tile is a gamble.
func (g *Game) checkRespawn() {
	missing := g.extinctBattleKind()
	if missing < 0 {
		return
	}
	m := components.Kind(missing)
	if g.deadCount[m] == 0 {
		return
	}
	if g.respawnGate != nil && !g.respawnGate(m) {
		return
	}
	if !g.kindOnSpecialTile(m.Prey()) {
		return
	}

	if slot := g.findRevivable(m); slot >= 0 {
		g.revive(slot)
	}
}

// extinctBattleKind returns the one battle kind with no live members, or
// -1 unless exactly two battle kinds remain alive.
func (g *Game) extinctBattleKind() int {
	missing := -1
	alive := 0
	for k := 0; k < components.NumBattleKinds; k++ {
		if g.liveCount[k] > 0 {
			alive++
		} else {
			missing = k
		}
	}
	if alive != 2 {
		return -1
	}
	return missing
}

// kindOnSpecialTile probes the special tile's cell block for a live agent
// of the given kind. Cells are sampled on a stride rather than scanned
// exhaustively; an agent covers 2x2 cells, so a stride of 2 cannot step
// over one.
func (g *Game) kindOnSpecialTile(k components.Kind) bool {
	cfg := config.Cfg()
	x0, y0, x1, y1 := g.tiles.SpecialTileCellRect()
	stride := cfg.Respawn.SampleStride
	if stride < 1 {
		stride = 1
	}
	for cy := y0; cy < y1; cy += stride {
		for cx := x0; cx < x1; cx += stride {
			kind, slot := systems.Classify(g.grid.CellAt(cx, cy))
			if kind != systems.CellKindAgent {
				continue
			}
			st := g.statMap.Get(g.agents[slot])
			if st.State == components.StateLive && st.Kind == k {
				return true
			}
		}
	}
	return false
}

// findRevivable returns the first dead agent of kind m, in slot order,
// whose body lies outside the visibility window and whose cell block is
// currently free. Returns -1 when no candidate qualifies this tick.
func (g *Game) findRevivable(m components.Kind) int {
	r := config.Cfg().Derived.VisibilityRadiusFP
	for i, e := range g.agents {
		st := g.statMap.Get(e)
		if st.Kind != m || st.State != components.StateDead {
			continue
		}
		pos := g.posMap.Get(e)
		dx := pos.X - g.viewX
		dy := pos.Y - g.viewY
		if absInt32(dx) <= r && absInt32(dy) <= r {
			continue
		}
		if !g.grid.IsEmpty(pos.X, pos.Y) {
			continue
		}
		return i
	}
	return -1
}

// revive brings a dead agent back at its body position.
func (g *Game) revive(slot int) {
	e := g.agents[slot]
	pos := g.posMap.Get(e)
	mot := g.motMap.Get(e)
	st := g.statMap.Get(e)

	st.State = components.StateLive
	st.Frame = int32(g.rng.Intn(systems.GaitFrames))
	h := systems.WrapHeading(1 + g.rng.Intn(systems.NumHeadings))
	mot.Heading = h
	mot.TargetHeading = h
	mot.KillerHeading = 0
	mot.StunFrames = 0
	g.grid.SetOccupant(pos.X, pos.Y, int32(slot)+1)

	g.deadCount[st.Kind]--
	g.liveCount[st.Kind]++
	g.collector.RecordRespawn()
	slog.Debug("agent revived", "slot", slot, "kind", st.Kind.String(), "tick", g.tick)
}

// KindRevivable reports whether a kind could currently come back through
// the respawn path: extinct, not vetoed and with bodies left to revive.
func (g *Game) KindRevivable(k components.Kind) bool {
	if int(k) != g.extinctBattleKind() {
		return false
	}
	if g.respawnGate != nil && !g.respawnGate(k) {
		return false
	}
	return g.deadCount[k] > 0
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

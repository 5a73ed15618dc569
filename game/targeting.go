package game

import (
	"github.com/triogrid/melee/components"
	"github.com/triogrid/melee/config"
	"github.com/triogrid/melee/systems"
)

// samplingGranularity spaces retarget decisions out over ticks. Crowded
// rounds sample coarsely; as the battle population thins out every agent
// gets to reconsider every tick.
func (g *Game) samplingGranularity() int64 {
	cfg := config.Cfg()
	live := 0
	for k := components.Kind(0); k < components.NumBattleKinds; k++ {
		live += g.liveCount[k]
	}
	t := cfg.Movement.ActionSamplingThresholds
	switch {
	case live >= t[0]:
		return 16
	case live >= t[1]:
		return 8
	case live >= t[2]:
		return 4
	}
	return 1
}

// shouldRetarget decides whether this agent reconsiders its target this
// tick. The slot offset staggers agents across the sampling window so
// retargets spread evenly instead of spiking on one tick.
func (g *Game) shouldRetarget(slot int, kind components.Kind) bool {
	cfg := config.Cfg()
	if (g.tick+int64(slot))%g.samplingGranularity() != 0 {
		return false
	}
	if kind.IsSlime() {
		return g.rng.Intn(8) == 0
	}
	prey := kind.Prey()
	victims := g.liveCount[prey]
	if victims == 0 {
		return false
	}
	denom := victims + g.liveCount[kind]
	return g.rng.Intn(denom) < cfg.Movement.RetargetScale
}

func (g *Game) retarget(slot int, pos *components.Position, mot *components.Motion, st *components.Status) {
	if st.Kind.IsSlime() {
		mot.TargetHeading = systems.WrapHeading(1 + g.rng.Intn(systems.NumHeadings))
		return
	}

	victim := g.selectVictim(slot, st.Kind, st.Kind.Prey())
	if victim < 0 {
		return
	}

	cfg := config.Cfg()
	vp := g.posMap.Get(g.agents[victim])
	vm := g.motMap.Get(g.agents[victim])

	step := systems.StepVector(vm.Heading)
	lead := int32(cfg.Movement.LookaheadSteps)
	h := systems.CoarseAtan(vp.X+step.DX*lead-pos.X, vp.Y+step.DY*lead-pos.Y)

	mbx, mby := g.grid.BlockOrigin(pos.X, pos.Y)
	vbx, vby := g.grid.BlockOrigin(vp.X+step.DX, vp.Y+step.DY)
	switch {
	case mbx == vbx && mby == vby:
		// Head-on within one block. Chasing the projected point would
		// aim behind us; mirror the victim's heading to intercept.
		h = systems.OppositeHeading(vm.Heading)
	case h == vm.Heading:
		// Parallel courses never close. Cut to the victim's immediate
		// next position instead of the long projection.
		h = systems.CoarseAtan(vp.X+step.DX-pos.X, vp.Y+step.DY-pos.Y)
	}
	mot.TargetHeading = h
}

// selectVictim picks a live agent of the prey kind by parenthesis
// matching: scanning outward from the hunter's slot, each live agent of
// the hunter's own kind claims the next unclaimed prey, so hunters fan
// out over distinct victims instead of piling onto one. Falls back to the
// last live prey seen when the scan runs out before the skip count does.
func (g *Game) selectVictim(slot int, own, prey components.Kind) int {
	skip := 0
	last := -1
	n := len(g.agents)
	for off := 1; off < n; off++ {
		j := (slot + off) % n
		st := g.statMap.Get(g.agents[j])
		if st.State != components.StateLive {
			continue
		}
		switch st.Kind {
		case own:
			skip++
		case prey:
			last = j
			if skip == 0 {
				return j
			}
			skip--
		}
	}
	return last
}

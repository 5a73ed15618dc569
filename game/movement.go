package game

import (
	"github.com/triogrid/melee/components"
	"github.com/triogrid/melee/config"
	"github.com/triogrid/melee/systems"
)

// stepAgents advances every agent one tick, in slot order. Slot order is
// part of the deterministic contract: earlier slots move first and see a
// grid already updated by everyone before them.
func (g *Game) stepAgents() {
	for i := range g.agents {
		g.stepAgent(i)
	}
}

func (g *Game) stepAgent(slot int) {
	cfg := config.Cfg()
	e := g.agents[slot]
	pos := g.posMap.Get(e)
	mot := g.motMap.Get(e)
	st := g.statMap.Get(e)

	switch st.State {
	case components.StateDead:
		return
	case components.StateDying:
		st.Frame++
		if st.Frame >= int32(cfg.Movement.DeathFrames) {
			st.State = components.StateDead
			g.dyingCount[st.Kind]--
			g.deadCount[st.Kind]++
		}
		return
	}

	if g.player.slot == slot {
		g.stepControlled(slot, pos, mot, st)
		return
	}

	mot.Heading = systems.Converge(mot.Heading, mot.TargetHeading)
	st.Frame++

	if mot.StunFrames > 0 {
		mot.StunFrames--
		return
	}

	if g.shouldRetarget(slot, st.Kind) {
		g.retarget(slot, pos, mot, st)
	}

	v := systems.Velocity(st.Kind, mot.Heading, st.Frame)
	g.resolveMove(slot, pos, mot, st, pos.X+v.DX, pos.Y+v.DY)
}

// stepControlled applies direct player input to one agent. Controlled
// agents skip autonomous retargeting and stun but still move through the
// shared collision resolver, so they kill, bounce and break walls by the
// same rules as everyone else.
func (g *Game) stepControlled(slot int, pos *components.Position, mot *components.Motion, st *components.Status) {
	in := g.player.in
	st.Frame++
	mot.StunFrames = 0

	switch in.Mode {
	case ControlHeading:
		mot.TargetHeading = systems.WrapHeading(int(in.Heading))
		mot.Heading = systems.Converge(mot.Heading, mot.TargetHeading)
		v := systems.Velocity(st.Kind, mot.Heading, st.Frame)
		g.resolveMove(slot, pos, mot, st, pos.X+v.DX, pos.Y+v.DY)

	case ControlCrank:
		// Crank input snaps the heading without convergence.
		mot.Heading = systems.WrapHeading(int(in.Heading))
		mot.TargetHeading = mot.Heading
		v := systems.Velocity(st.Kind, mot.Heading, st.Frame)
		g.resolveMove(slot, pos, mot, st, pos.X+v.DX, pos.Y+v.DY)

	case ControlDisplacement:
		if in.DX != 0 || in.DY != 0 {
			mot.Heading = systems.CoarseAtan(in.DX, in.DY)
			mot.TargetHeading = mot.Heading
		}
		g.resolveMove(slot, pos, mot, st, pos.X+in.DX, pos.Y+in.DY)
	}
}

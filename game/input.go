package game

// ControlMode selects how player input steers the controlled agent.
type ControlMode uint8

const (
	// ControlNone leaves the agent autonomous.
	ControlNone ControlMode = iota
	// ControlHeading sets a desired heading the agent turns toward at
	// its normal turn rate, moving at table speed.
	ControlHeading
	// ControlCrank sets the heading absolutely with no turn-rate limit.
	ControlCrank
	// ControlDisplacement moves the agent by a raw fixed-point offset
	// per tick, deriving the facing from the offset.
	ControlDisplacement
)

// ControlInput is one tick's worth of player steering.
type ControlInput struct {
	Mode    ControlMode
	Heading uint8
	DX, DY  int32
}

type playerControl struct {
	slot int
	in   ControlInput
}

// SetPlayerControl puts one agent slot under direct player control.
// The controlled agent ignores stun and autonomous targeting but is
// otherwise subject to normal movement and collision rules.
func (g *Game) SetPlayerControl(slot int, in ControlInput) {
	if slot < 0 || slot >= len(g.agents) || in.Mode == ControlNone {
		g.ClearPlayerControl()
		return
	}
	g.player = playerControl{slot: slot, in: in}
}

// ClearPlayerControl returns the controlled agent, if any, to autonomy.
func (g *Game) ClearPlayerControl() {
	g.player = playerControl{slot: -1}
}

// ControlledSlot returns the player-controlled slot, or -1.
func (g *Game) ControlledSlot() int { return g.player.slot }

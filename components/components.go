// Package components defines ECS components for the simulation.
package components

// Kind identifies an agent species. Predation is cyclic among the three
// battle kinds (Rock eats Scissors eats Paper eats Rock); slimes are
// neutral wandering obstacles that neither kill nor die.
type Kind uint8

const (
	KindRock Kind = iota
	KindPaper
	KindScissors
	KindLightSlime
	KindDarkSlime
	NumKinds
)

// NumBattleKinds is the count of mutually-predating kinds.
const NumBattleKinds = 3

// Prey returns the kind k eliminates on contact.
// Only meaningful for battle kinds.
func (k Kind) Prey() Kind {
	switch k {
	case KindRock:
		return KindScissors
	case KindScissors:
		return KindPaper
	case KindPaper:
		return KindRock
	}
	return k
}

// Predator returns the kind that eliminates k on contact.
func (k Kind) Predator() Kind {
	switch k {
	case KindScissors:
		return KindRock
	case KindPaper:
		return KindScissors
	case KindRock:
		return KindPaper
	}
	return k
}

// IsSlime reports whether k is one of the neutral wandering kinds.
func (k Kind) IsSlime() bool {
	return k == KindLightSlime || k == KindDarkSlime
}

func (k Kind) String() string {
	switch k {
	case KindRock:
		return "rock"
	case KindPaper:
		return "paper"
	case KindScissors:
		return "scissors"
	case KindLightSlime:
		return "light_slime"
	case KindDarkSlime:
		return "dark_slime"
	}
	return "unknown"
}

// State is the agent lifecycle state. Agents move Live -> Dying -> Dead;
// the respawn subsystem can move Dead back to Live. Slots are never freed.
type State uint8

const (
	StateDead State = iota
	StateDying
	StateLive
)

// Position is a fixed-point world position with 8 fractional bits.
// One grid cell is 8 pixels, so cell coordinates are position >> 11.
type Position struct {
	X, Y int32
}

// Motion holds the discretized heading state. Headings are in [1..32];
// 1 points along +X and values advance counterclockwise in 360/32 steps.
type Motion struct {
	Heading       uint8
	TargetHeading uint8
	KillerHeading uint8 // heading of the killer at the moment of death
	StunFrames    int16 // movement disabled while > 0
}

// Status holds kind, lifecycle state and the animation frame counter.
// Kind is immutable after creation.
type Status struct {
	Kind  Kind
	State State
	Frame int32
}

package game

import (
	"github.com/triogrid/melee/components"
)

// Winner returns the single battle kind with members still standing
// (live or dying), when exactly one remains.
func (g *Game) Winner() (components.Kind, bool) {
	winner := components.Kind(0)
	remaining := 0
	for k := components.Kind(0); k < components.NumBattleKinds; k++ {
		if g.liveCount[k]+g.dyingCount[k] > 0 {
			winner = k
			remaining++
		}
	}
	return winner, remaining == 1
}

// SimulateUntilOneKindRemains runs a fresh headless round from the given
// seed until one battle kind is left, returning the winner and the step
// count. The same seed always yields the same winner and step count.
// When maxSteps is exceeded the kind with the most live members wins the
// tie, lowest kind first.
func SimulateUntilOneKindRemains(seed int64, maxSteps int64) (components.Kind, int64, error) {
	g, err := NewGame(Options{Seed: seed})
	if err != nil {
		return 0, 0, err
	}
	defer g.Close()

	var steps int64
	for {
		if w, ok := g.Winner(); ok {
			return w, steps, nil
		}
		if maxSteps > 0 && steps >= maxSteps {
			return g.leadingKind(), steps, nil
		}
		g.Step()
		steps++
	}
}

func (g *Game) leadingKind() components.Kind {
	best := components.Kind(0)
	for k := components.Kind(1); k < components.NumBattleKinds; k++ {
		if g.liveCount[k] > g.liveCount[best] {
			best = k
		}
	}
	return best
}

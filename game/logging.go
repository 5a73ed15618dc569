package game

import (
	"log/slog"

	"github.com/triogrid/melee/components"
)

// LogWorldState dumps the current population and generation state.
// Meant for periodic diagnostics and end-of-run summaries, not per tick.
func (g *Game) LogWorldState() {
	live, dying, dead := g.Counts()

	stunned := 0
	hunting := 0
	query := g.agentFilter.Query()
	for query.Next() {
		_, mot, st := query.Get()
		if st.State != components.StateLive {
			continue
		}
		if mot.StunFrames > 0 {
			stunned++
		} else if !st.Kind.IsSlime() {
			hunting++
		}
	}

	attrs := []any{
		"tick", g.tick,
		"active", g.gameActive,
		"stunned", stunned,
		"hunting", hunting,
	}
	for k := components.Kind(0); k < components.NumKinds; k++ {
		attrs = append(attrs, k.String(), slog.GroupValue(
			slog.Int("live", live[k]),
			slog.Int("dying", dying[k]),
			slog.Int("dead", dead[k]),
		))
	}
	if done, total := g.GenerationProgress(); total > 0 && done < total {
		attrs = append(attrs, "gen_progress", float64(done)/float64(total))
	}
	slog.Info("world state", attrs...)
}

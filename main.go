// Headless simulation runner. Steps rounds to completion and reports the
// winning kind; rendering and input live in a separate front end that
// consumes the game package.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/triogrid/melee/components"
	"github.com/triogrid/melee/config"
	"github.com/triogrid/melee/game"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (embedded defaults if empty)")
	seed := flag.Int64("seed", 1, "simulation seed")
	maxTicks := flag.Int64("max-ticks", 200000, "stop after this many ticks (0 = no limit)")
	untilWinner := flag.Bool("until-winner", true, "stop as soon as one battle kind remains")
	logStats := flag.Bool("log-stats", false, "log telemetry windows as they close")
	statsWindow := flag.Int("stats-window", 0, "override the stats window length in ticks")
	outputDir := flag.String("output-dir", "", "write config and stats CSV under this directory")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	config.MustInit(*configPath)
	if *statsWindow > 0 {
		config.Cfg().Telemetry.StatsWindowTicks = *statsWindow
	}

	g, err := game.NewGame(game.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	slog.Info("simulation starting", "seed", *seed, "agents", g.NumAgents())

	var winner components.Kind
	won := false
	for {
		if *untilWinner {
			if w, ok := g.Winner(); ok {
				winner, won = w, true
				break
			}
		}
		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			break
		}
		g.Step()
	}

	g.LogWorldState()
	g.LogPerf()
	if won {
		slog.Info("round decided", "winner", winner.String(), "ticks", g.Tick())
	} else {
		slog.Info("tick limit reached", "ticks", g.Tick())
	}
}

// Balance sweep: runs many seeded rounds to completion and reports
// per-kind win rates and round-length statistics. Used to sanity-check
// tuning changes without watching rounds by hand.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/triogrid/melee/components"
	"github.com/triogrid/melee/config"
	"github.com/triogrid/melee/game"
)

// runResult is one row of the sweep output CSV.
type runResult struct {
	Seed   int64  `csv:"seed"`
	Winner string `csv:"winner"`
	Steps  int64  `csv:"steps"`
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file (embedded defaults if empty)")
	runs := flag.Int("runs", 50, "number of seeded rounds to run")
	firstSeed := flag.Int64("first-seed", 1, "seed of the first run, subsequent runs increment")
	maxSteps := flag.Int64("max-steps", 200000, "per-run step cap")
	out := flag.String("out", "", "write per-run results CSV to this file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	config.MustInit(*configPath)

	results := make([]runResult, 0, *runs)
	var wins [components.NumBattleKinds]int
	steps := make([]float64, 0, *runs)

	for i := 0; i < *runs; i++ {
		seed := *firstSeed + int64(i)
		w, n, err := game.SimulateUntilOneKindRemains(seed, *maxSteps)
		if err != nil {
			slog.Error("run failed", "seed", seed, "error", err)
			os.Exit(1)
		}
		wins[w]++
		steps = append(steps, float64(n))
		results = append(results, runResult{Seed: seed, Winner: w.String(), Steps: n})
		slog.Info("run finished", "seed", seed, "winner", w.String(), "steps", n)
	}

	mean, std := stat.MeanStdDev(steps, nil)
	fmt.Printf("runs: %d\n", *runs)
	for k := components.Kind(0); k < components.NumBattleKinds; k++ {
		fmt.Printf("%-9s wins: %3d (%.1f%%)\n",
			k.String(), wins[k], 100*float64(wins[k])/float64(*runs))
	}
	fmt.Printf("steps: mean %.1f stddev %.1f\n", mean, std)

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			slog.Error("creating results file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := gocsv.Marshal(results, f); err != nil {
			slog.Error("writing results", "error", err)
			os.Exit(1)
		}
	}
}

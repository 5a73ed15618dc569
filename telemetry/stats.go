package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Population counts at window end
	LiveRock     int `csv:"live_rock"`
	LivePaper    int `csv:"live_paper"`
	LiveScissors int `csv:"live_scissors"`

	DyingRock     int `csv:"dying_rock"`
	DyingPaper    int `csv:"dying_paper"`
	DyingScissors int `csv:"dying_scissors"`

	DeadRock     int `csv:"dead_rock"`
	DeadPaper    int `csv:"dead_paper"`
	DeadScissors int `csv:"dead_scissors"`

	// Events during window
	RockKilled     int `csv:"rock_killed"`
	PaperKilled    int `csv:"paper_killed"`
	ScissorsKilled int `csv:"scissors_killed"`
	WallBreaks     int `csv:"wall_breaks"`
	Respawns       int `csv:"respawns"`
	Stuns          int `csv:"stuns"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("live_rock", s.LiveRock),
		slog.Int("live_paper", s.LivePaper),
		slog.Int("live_scissors", s.LiveScissors),
		slog.Int("dying_rock", s.DyingRock),
		slog.Int("dying_paper", s.DyingPaper),
		slog.Int("dying_scissors", s.DyingScissors),
		slog.Int("dead_rock", s.DeadRock),
		slog.Int("dead_paper", s.DeadPaper),
		slog.Int("dead_scissors", s.DeadScissors),
		slog.Int("rock_killed", s.RockKilled),
		slog.Int("paper_killed", s.PaperKilled),
		slog.Int("scissors_killed", s.ScissorsKilled),
		slog.Int("wall_breaks", s.WallBreaks),
		slog.Int("respawns", s.Respawns),
		slog.Int("stuns", s.Stuns),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

// MeanStdDev returns the mean and standard deviation of values.
func MeanStdDev(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.MeanStdDev(values, nil)
}

// Percentile calculates the p-th percentile (p in [0, 1]) of values,
// sorting a copy first. Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

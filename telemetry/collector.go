// Package telemetry accumulates simulation events into windowed stats and
// writes them to CSV and structured logs.
package telemetry

import "github.com/triogrid/melee/components"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int64

	windowStartTick int64

	kills      [components.NumKinds]int // deaths by kind (victim side)
	wallBreaks int
	respawns   int
	stuns      int
}

// NewCollector creates a stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordKill records an elimination of a victim of the given kind.
func (c *Collector) RecordKill(victim components.Kind) {
	c.kills[victim]++
}

// RecordWallBreak records a destroyed wall cell.
func (c *Collector) RecordWallBreak() {
	c.wallBreaks++
}

// RecordRespawn records a revival.
func (c *Collector) RecordRespawn() {
	c.respawns++
}

// RecordStun records a blocked move that stunned the mover.
func (c *Collector) RecordStun() {
	c.stuns++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces WindowStats for the closing window and resets the
// counters. Population counts are sampled by the caller and passed in.
func (c *Collector) Flush(currentTick int64, live, dying, dead [components.NumKinds]int) WindowStats {
	s := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		LiveRock:     live[components.KindRock],
		LivePaper:    live[components.KindPaper],
		LiveScissors: live[components.KindScissors],

		DyingRock:     dying[components.KindRock],
		DyingPaper:    dying[components.KindPaper],
		DyingScissors: dying[components.KindScissors],

		DeadRock:     dead[components.KindRock],
		DeadPaper:    dead[components.KindPaper],
		DeadScissors: dead[components.KindScissors],

		RockKilled:     c.kills[components.KindRock],
		PaperKilled:    c.kills[components.KindPaper],
		ScissorsKilled: c.kills[components.KindScissors],

		WallBreaks: c.wallBreaks,
		Respawns:   c.respawns,
		Stuns:      c.stuns,
	}

	c.windowStartTick = currentTick
	c.kills = [components.NumKinds]int{}
	c.wallBreaks = 0
	c.respawns = 0
	c.stuns = 0

	return s
}

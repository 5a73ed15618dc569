package game

import (
	"log/slog"
	"sort"
	"time"
)

// PerfStats accumulates wall-clock timings per named stage.
type PerfStats struct {
	entries map[string]*perfEntry
}

type perfEntry struct {
	total time.Duration
	count int64
}

func NewPerfStats() *PerfStats {
	return &PerfStats{entries: make(map[string]*perfEntry)}
}

// Record adds one sample for a stage.
func (p *PerfStats) Record(name string, d time.Duration) {
	e := p.entries[name]
	if e == nil {
		e = &perfEntry{}
		p.entries[name] = e
	}
	e.total += d
	e.count++
}

// Avg returns the mean duration of a stage, zero if never recorded.
func (p *PerfStats) Avg(name string) time.Duration {
	e := p.entries[name]
	if e == nil || e.count == 0 {
		return 0
	}
	return e.total / time.Duration(e.count)
}

// Total returns the accumulated duration of a stage.
func (p *PerfStats) Total(name string) time.Duration {
	e := p.entries[name]
	if e == nil {
		return 0
	}
	return e.total
}

// SortedNames returns all recorded stage names in alphabetical order.
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.entries))
	for n := range p.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LogPerf writes the accumulated stage timings at info level.
func (g *Game) LogPerf() {
	g.perf.LogPerf()
}

// LogPerf writes every stage's averages at info level.
func (p *PerfStats) LogPerf() {
	for _, n := range p.SortedNames() {
		e := p.entries[n]
		slog.Info("perf",
			"stage", n,
			"avg", p.Avg(n).String(),
			"total", e.total.String(),
			"samples", e.count,
		)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.World.Width <= 0 || cfg.World.Height <= 0 {
		t.Errorf("world %dx%d", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Generation.WallSeedProbability <= 0 || cfg.Generation.WallSeedProbability >= 1 {
		t.Errorf("wall seed probability %f", cfg.Generation.WallSeedProbability)
	}
	if len(cfg.Movement.ActionSamplingThresholds) != 3 {
		t.Fatalf("expected 3 sampling thresholds, got %d", len(cfg.Movement.ActionSamplingThresholds))
	}
	th := cfg.Movement.ActionSamplingThresholds
	if th[0] <= th[1] || th[1] <= th[2] {
		t.Errorf("thresholds %v not strictly decreasing", th)
	}
	if cfg.Combat.WallBreakChance <= 0.2 || cfg.Combat.WallBreakChance >= 0.5 {
		t.Errorf("wall break chance %f", cfg.Combat.WallBreakChance)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Population.PerKind = 10
	cfg.Population.SlimesPerKind = 3
	cfg.Respawn.VisibilityRadius = 200
	cfg.ComputeDerived()

	if cfg.Derived.BattleAgents != 30 {
		t.Errorf("battle agents = %d", cfg.Derived.BattleAgents)
	}
	if cfg.Derived.TotalAgents != 36 {
		t.Errorf("total agents = %d", cfg.Derived.TotalAgents)
	}
	if cfg.Derived.VisibilityRadiusFP != 200<<8 {
		t.Errorf("visibility radius fp = %d", cfg.Derived.VisibilityRadiusFP)
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("world:\n  width: 99\ncombat:\n  stun_frames: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s): %v", path, err)
	}
	if cfg.World.Width != 99 {
		t.Errorf("width = %d, want 99", cfg.World.Width)
	}
	if cfg.Combat.StunFrames != 3 {
		t.Errorf("stun frames = %d, want 3", cfg.Combat.StunFrames)
	}
	// Untouched fields keep their defaults.
	if cfg.World.Height <= 0 || cfg.Population.PerKind <= 0 {
		t.Error("defaults lost during override")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.World.Width = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if back.World.Width != 77 {
		t.Errorf("round trip width = %d", back.World.Width)
	}
}

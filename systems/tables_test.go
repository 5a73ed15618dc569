package systems

import (
	"testing"

	"github.com/triogrid/melee/components"
)

func TestConvergeTerminatesForAllPairs(t *testing.T) {
	for cur := 1; cur <= NumHeadings; cur++ {
		for target := 1; target <= NumHeadings; target++ {
			h := uint8(cur)
			tgt := uint8(target)
			prev := HeadingDistance(h, tgt)
			for i := 0; h != tgt; i++ {
				if i > NumHeadings {
					t.Fatalf("Converge(%d -> %d) did not terminate", cur, target)
				}
				h = Converge(h, tgt)
				d := HeadingDistance(h, tgt)
				if d >= prev {
					t.Fatalf("Converge(%d -> %d): distance %d -> %d, no progress", cur, target, prev, d)
				}
				prev = d
			}
		}
	}
}

func TestConvergeIdentity(t *testing.T) {
	for h := 1; h <= NumHeadings; h++ {
		if got := Converge(uint8(h), uint8(h)); got != uint8(h) {
			t.Errorf("Converge(%d, %d) = %d", h, h, got)
		}
	}
}

func TestCoarseAtanCardinals(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int32
		want   uint8
	}{
		{"east", 1000, 0, 1},
		{"southeast", 1000, 1000, 5},
		{"south", 0, 1000, 9},
		{"west", -1000, 0, 17},
		{"north", 0, -1000, 25},
		{"zero vector", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoarseAtan(tt.dx, tt.dy); got != tt.want {
				t.Errorf("CoarseAtan(%d, %d) = %d, want %d", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestCoarseAtanMatchesStepVectors(t *testing.T) {
	// Feeding a heading's own step vector back through the arc tangent
	// must recover that heading.
	for h := 1; h <= NumHeadings; h++ {
		v := StepVector(uint8(h))
		if got := CoarseAtan(v.DX*16, v.DY*16); got != uint8(h) {
			t.Errorf("CoarseAtan(StepVector(%d)) = %d", h, got)
		}
	}
}

func TestWrapHeading(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{1, 1}, {32, 32}, {33, 1}, {0, 32}, {-15, 17}, {65, 1},
	}
	for _, tt := range tests {
		if got := WrapHeading(tt.in); got != tt.want {
			t.Errorf("WrapHeading(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOppositeHeading(t *testing.T) {
	for h := 1; h <= NumHeadings; h++ {
		opp := OppositeHeading(uint8(h))
		if HeadingDistance(uint8(h), opp) != NumHeadings/2 {
			t.Errorf("OppositeHeading(%d) = %d", h, opp)
		}
		if OppositeHeading(opp) != uint8(h) {
			t.Errorf("OppositeHeading not an involution at %d", h)
		}
	}
}

func TestVelocityDirectionAndGait(t *testing.T) {
	// Heading 1 points along +X at every gait frame, with nonzero speed.
	for f := int32(0); f < GaitFrames; f++ {
		v := Velocity(components.KindRock, 1, f)
		if v.DX <= 0 || v.DY != 0 {
			t.Errorf("Velocity(rock, 1, %d) = %+v", f, v)
		}
	}

	// Gait swells mid-cycle.
	slow := Velocity(components.KindRock, 1, 0)
	fast := Velocity(components.KindRock, 1, GaitFrames/2)
	if fast.DX <= slow.DX {
		t.Errorf("gait not modulated: frame 0 dx=%d, mid dx=%d", slow.DX, fast.DX)
	}

	// Scissors outpace rocks at the same heading and frame.
	if Velocity(components.KindScissors, 1, 0).DX <= Velocity(components.KindRock, 1, 0).DX {
		t.Error("kind speeds not ordered")
	}

	// Frame indexing wraps.
	if Velocity(components.KindRock, 1, GaitFrames) != Velocity(components.KindRock, 1, 0) {
		t.Error("frame index does not wrap at the gait cycle")
	}
}

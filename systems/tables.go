package systems

import (
	"math"

	"github.com/triogrid/melee/components"
)

// Angle space is discretized into 32 headings. Heading h covers the
// angle 2*pi*(h-1)/32 from the +X axis, increasing toward +Y.
const (
	NumHeadings = 32
	GaitFrames  = 8 // animation frames per gait cycle
)

// Vec is a fixed-point displacement.
type Vec struct {
	DX, DY int32
}

// Per-kind base speed in pixels per tick. These stand in for the asset
// pipeline's precomputed velocity tables; the simulation only ever
// indexes the tables, it never recomputes them.
var kindSpeed = [components.NumKinds]float64{
	components.KindRock:       1.25,
	components.KindPaper:      1.50,
	components.KindScissors:   1.75,
	components.KindLightSlime: 0.75,
	components.KindDarkSlime:  0.90,
}

var (
	velocityTable [components.NumKinds][NumHeadings + 1][GaitFrames]Vec
	stepVectors   [NumHeadings + 1]Vec
	convergeTable [NumHeadings + 1][NumHeadings + 1]uint8
	atanOctant    [33]int
)

func init() {
	buildVelocityTables()
	buildConvergeTable()
	buildAtanTable()
}

func buildVelocityTables() {
	for h := 1; h <= NumHeadings; h++ {
		theta := 2 * math.Pi * float64(h-1) / NumHeadings
		cos, sin := math.Cos(theta), math.Sin(theta)

		stepVectors[h] = Vec{
			DX: int32(math.Round(cos * OnePixel)),
			DY: int32(math.Round(sin * OnePixel)),
		}

		for k := components.Kind(0); k < components.NumKinds; k++ {
			for f := 0; f < GaitFrames; f++ {
				// Gait modulation: speed swells mid-cycle and eases at the
				// ends, like the sprite animation it is paired with.
				scale := 0.7 + 0.6*math.Sin(math.Pi*float64(f)/GaitFrames)
				speed := kindSpeed[k] * scale * OnePixel
				velocityTable[k][h][f] = Vec{
					DX: int32(math.Round(cos * speed)),
					DY: int32(math.Round(sin * speed)),
				}
			}
		}
	}
}

func buildConvergeTable() {
	for cur := 1; cur <= NumHeadings; cur++ {
		for target := 1; target <= NumHeadings; target++ {
			convergeTable[cur][target] = convergeStep(uint8(cur), uint8(target))
		}
	}
}

// convergeStep computes one convergence step: rotate toward target along
// the shorter direction by max(1, round(|diff|/4)) steps, never
// overshooting. Always makes progress when cur != target, so repeated
// application terminates.
func convergeStep(cur, target uint8) uint8 {
	d := int(target) - int(cur)
	if d > NumHeadings/2 {
		d -= NumHeadings
	} else if d <= -NumHeadings/2 {
		d += NumHeadings
	}
	if d == 0 {
		return cur
	}
	mag := d
	if mag < 0 {
		mag = -mag
	}
	step := (mag + 2) / 4 // round(|d| * 0.25)
	if step < 1 {
		step = 1
	}
	if d < 0 {
		step = -step
	}
	return WrapHeading(int(cur) + step)
}

func buildAtanTable() {
	// atanOctant[r] is atan(r/32) expressed in 32-step angle units (0..4).
	for i := 0; i <= 32; i++ {
		a := math.Atan(float64(i) / 32)
		atanOctant[i] = int(math.Round(a / (2 * math.Pi) * NumHeadings))
	}
}

// Velocity returns the per-kind, per-heading, per-frame fixed-point
// velocity vector.
func Velocity(k components.Kind, heading uint8, frame int32) Vec {
	f := int(frame) % GaitFrames
	if f < 0 {
		f += GaitFrames
	}
	return velocityTable[k][heading][f]
}

// StepVector returns the constant-speed (1 px/tick) vector for a heading.
// Used for victim position prediction and for slime drift.
func StepVector(heading uint8) Vec {
	return stepVectors[heading]
}

// Converge advances cur one table step toward target.
func Converge(cur, target uint8) uint8 {
	return convergeTable[cur][target]
}

// CoarseAtan maps a fixed-point displacement to the nearest of the 32
// headings via the coarse octant lookup table. A zero vector maps to
// heading 1.
func CoarseAtan(dx, dy int32) uint8 {
	if dx == 0 && dy == 0 {
		return 1
	}
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}

	// Angle from the axis within the first quadrant, in [0..8] units.
	var t int
	if ax >= ay {
		t = atanOctant[(int64(ay)<<5)/int64(ax)]
	} else {
		t = 8 - atanOctant[(int64(ax)<<5)/int64(ay)]
	}

	var a int
	switch {
	case dx >= 0 && dy >= 0:
		a = t
	case dx < 0 && dy >= 0:
		a = 16 - t
	case dx < 0 && dy < 0:
		a = 16 + t
	default:
		a = 32 - t
	}
	return WrapHeading(a + 1)
}

// WrapHeading maps any integer onto the [1..32] heading ring.
func WrapHeading(h int) uint8 {
	h = (h - 1) % NumHeadings
	if h < 0 {
		h += NumHeadings
	}
	return uint8(h + 1)
}

// OppositeHeading returns the heading pointing the other way.
func OppositeHeading(h uint8) uint8 {
	return WrapHeading(int(h) + NumHeadings/2)
}

// HeadingDistance returns the circular distance between two headings,
// in [0..16].
func HeadingDistance(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	if d > NumHeadings/2 {
		d = NumHeadings - d
	}
	return d
}

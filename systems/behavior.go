package systems

import (
	"math"
	"math/rand/v2"

	"github.com/noskyvisible/neural-evolution-simulation/components"
	"github.com/noskyvisible/neural-evolution-simulation/neural"
)

// Bounds is the world rectangle [0, Width) x [0, Height).
type Bounds struct {
	Width, Height float64
}

// Steer applies decoded controller outputs: the heading turns by
// Turn*turnScale and the speed is set to Speed*maxSpeed.
func Steer(m *components.Motion, out neural.BehaviorOutputs, turnScale, maxSpeed float64) {
	m.Heading += out.Turn * turnScale
	m.Speed = out.Speed * maxSpeed
}

// Advance moves the position by speed along heading.
func Advance(p *components.Position, m *components.Motion) {
	p.X += math.Cos(m.Heading) * m.Speed
	p.Y += math.Sin(m.Heading) * m.Speed
}

// Reflect clamps the position into bounds and mirrors the heading about the
// violated axis: a horizontal violation mirrors about the vertical axis, a
// vertical violation negates the heading.
func Reflect(p *components.Position, m *components.Motion, b Bounds) {
	if p.X < 0 {
		p.X = 0
		m.Heading = math.Pi - m.Heading
	} else if p.X >= b.Width {
		p.X = b.Width - 1
		m.Heading = math.Pi - m.Heading
	}

	if p.Y < 0 {
		p.Y = 0
		m.Heading = -m.Heading
	} else if p.Y >= b.Height {
		p.Y = b.Height - 1
		m.Heading = -m.Heading
	}
}

// FaceToward points the heading at a target with uniform jitter in
// [-jitter, jitter].
func FaceToward(m *components.Motion, x, y, tx, ty, jitter float64, rng *rand.Rand) {
	m.Heading = Bearing(x, y, tx, ty)
	if jitter > 0 {
		m.Heading += (rng.Float64()*2 - 1) * jitter
	}
}

// SelfState builds the inputs every species senses about itself.
func SelfState(p *components.Position, m *components.Motion, v *components.Vitals, b Bounds, energyNorm float64) neural.SelfState {
	return neural.SelfState{
		X:          p.X / b.Width,
		Y:          p.Y / b.Height,
		Energy:     v.Energy / energyNorm,
		CosHeading: math.Cos(m.Heading),
		SinHeading: math.Sin(m.Heading),
	}
}

// Sighting converts a nearest-neighbour result into a normalized distance
// and bearing cosine. Targets that were not found read as (0, 0).
func Sighting(n Neighbor, heading, x, y, tx, ty, vision float64) (dist, cos float64) {
	if !n.Found() {
		return 0, 0
	}
	return min(n.Dist/vision, 1), RelativeCos(heading, x, y, tx, ty)
}

// Package sim advances the shape field by one frame
package sim

import (
	"math"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/chaos"
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/physics"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Context carries the per-tick simulation inputs
type Context struct {
	Field  chaos.Field
	Traits challenge.Traits
	DT     float64 // Seconds per frame
	RNG    *vmath.FastRand
}

// NewContext creates a context for a surface and challenge traits
func NewContext(width, height float64, traits challenge.Traits, dt float64, rng *vmath.FastRand) *Context {
	return &Context{
		Field:  chaos.NewField(width, height),
		Traits: traits,
		DT:     dt,
		RNG:    rng,
	}
}

// Resize updates the chaos field to new surface dimensions
func (c *Context) Resize(width, height float64) {
	c.Field.Width = width
	c.Field.Height = height
}

// slow returns the slow-motion factor for the active challenge
func (c *Context) slow() float64 {
	if c.Traits.Spatial {
		return parameter.SlowMotionFactor
	}
	return 1
}

// Step advances every shape by one frame
func Step(shapes []*shape.Shape, ctx *Context) {
	slow := ctx.slow()
	for _, s := range shapes {
		step(s, ctx, slow)
	}
}

func step(s *shape.Shape, ctx *Context, slow float64) {
	c := ctx.Field.At(s.Pos)
	mag := math.Abs(c)

	// Derived motion only, base values are never scaled
	mult := chaos.SpeedMultiplier(c) * slow
	s.Velocity = s.BaseVelocity.Mul(mult)
	s.RotationSpeed = s.BaseRotationSpeed * mult

	physics.EaseCorrection(s)
	physics.Integrate(s, ctx.DT)
	if physics.ReflectBounds(s, ctx.Field.Width, ctx.Field.Height) && ctx.RNG.Chance(parameter.BounceFlipChance) {
		s.FlipSpin()
	}

	if ctx.Traits.ColorSensitive {
		s.Inverted = false
	}

	s.TimerFrames--
	if s.TimerFrames <= 0 {
		perturb(s, ctx)
		s.TimerFrames = TimerInterval(ctx.RNG, mag)
	}

	easeDepth(s, parameter.DepthEaseRate*(1+mag)*slow)
}

// TimerInterval samples the next per-shape timer, shortened by chaos magnitude
func TimerInterval(rng *vmath.FastRand, chaosMag float64) int {
	base := rng.IntRange(parameter.ShapeTimerMinFrames, parameter.ShapeTimerMaxFrames)
	frames := int(float64(base) * (1 - parameter.ShapeTimerChaosShorten*vmath.Clamp(chaosMag, 0, 1)))
	if frames < 1 {
		frames = 1
	}
	return frames
}

// perturb applies the timer-driven heading, inversion and depth changes
func perturb(s *shape.Shape, ctx *Context) {
	rng := ctx.RNG
	s.BaseVelocity = vmath.Rotate(s.BaseVelocity, rng.Range(-parameter.HeadingJitter, parameter.HeadingJitter))

	if ctx.Traits.ColorSensitive {
		s.Inverted = false
	} else {
		s.Inverted = !s.Inverted
	}

	if ctx.Traits.SizeSensitive {
		s.SetDepthTarget(rng.Range(parameter.SizeSensitiveDepthLo, parameter.SizeSensitiveDepthHi))
	} else {
		s.SetDepthTarget(rng.Range(parameter.DepthMin, parameter.DepthMax))
	}
}

// easeDepth moves depth toward its target by rate of the remaining gap, snapping near the end
func easeDepth(s *shape.Shape, rate float64) {
	gap := s.DepthTarget - s.Depth
	if math.Abs(gap) <= parameter.DepthSnap {
		s.Depth = s.DepthTarget
		return
	}
	s.SetDepth(s.Depth + gap*rate)
}

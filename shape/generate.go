package shape

import (
	"math"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Spec parameterizes one layout: how many shapes, their radius range, where they
// may go and how they are tagged
type Spec struct {
	Count     int
	MinRadius float64
	MaxRadius float64

	// Accept is an optional placement predicate on top of the overlap check
	Accept func(candidate *Shape, placed []*Shape) bool

	// Tag assigns kind, color and challenge tags to shape i, it may also
	// override Radius before the shape is placed
	Tag func(i int, s *Shape)
}

// Bounds is the drawable area
type Bounds struct {
	Width, Height float64
}

// Min returns the smaller dimension
func (b Bounds) Min() float64 {
	return math.Min(b.Width, b.Height)
}

// Center returns the surface center
func (b Bounds) Center() vmath.Vec {
	return vmath.V(b.Width/2, b.Height/2)
}

// Generate places spec.Count shapes by rejection sampling.
// Each shape gets at most PlacementAttempts candidates; once exhausted the last
// candidate is accepted even if it overlaps, so generation always terminates.
func Generate(spec Spec, b Bounds, rng *vmath.FastRand) []*Shape {
	shapes := make([]*Shape, 0, spec.Count)
	minSide := b.Min()

	for i := 0; i < spec.Count; i++ {
		s := &Shape{
			ID:     i + 1,
			Radius: rng.Range(spec.MinRadius, spec.MaxRadius),
		}
		if spec.Tag != nil {
			spec.Tag(i, s)
		}
		if s.Radius <= 0 {
			s.Radius = spec.MinRadius
		}

		place(s, shapes, spec.Accept, b, rng)
		initMotion(s, minSide, rng)
		shapes = append(shapes, s)
	}
	return shapes
}

// place runs the bounded rejection loop for s
func place(s *Shape, placed []*Shape, accept func(*Shape, []*Shape) bool, b Bounds, rng *vmath.FastRand) {
	margin := s.Radius * parameter.PlacementMarginRatio
	loX, hiX := margin, b.Width-margin
	loY, hiY := margin, b.Height-margin
	if hiX < loX {
		loX, hiX = b.Width/2, b.Width/2
	}
	if hiY < loY {
		loY, hiY = b.Height/2, b.Height/2
	}

	for attempt := 0; attempt < parameter.PlacementAttempts; attempt++ {
		s.Pos = vmath.V(rng.Range(loX, hiX), rng.Range(loY, hiY))
		if overlapsAny(s, placed) {
			continue
		}
		if accept != nil && !accept(s, placed) {
			continue
		}
		return
	}
	// Exhausted: keep the last candidate
}

func overlapsAny(s *Shape, placed []*Shape) bool {
	for _, o := range placed {
		gap := math.Min(s.Radius, o.Radius) * parameter.PlacementGapRatio
		if vmath.Distance(s.Pos, o.Pos) < s.Radius+o.Radius+gap {
			return true
		}
	}
	return false
}

// initMotion seeds heading, spin, depth and the per-shape timer
func initMotion(s *Shape, minSide float64, rng *vmath.FastRand) {
	speed := rng.Range(parameter.BaseSpeedMinRatio, parameter.BaseSpeedMaxRatio) * minSide
	s.BaseVelocity = vmath.FromAngle(rng.Range(0, vmath.TwoPi), speed)
	s.Velocity = s.BaseVelocity
	s.BaseRotationSpeed = rng.Range(-parameter.BaseRotationSpeedMax, parameter.BaseRotationSpeedMax)
	s.RotationSpeed = s.BaseRotationSpeed
	s.Rotation = rng.Range(0, vmath.TwoPi)

	if s.Depth == 0 && s.DepthTarget == 0 {
		s.SetDepth(rng.Range(parameter.DepthMin, parameter.DepthMax))
	}
	s.SetDepthTarget(s.Depth)
	s.TimerFrames = rng.IntRange(parameter.ShapeTimerMinFrames, parameter.ShapeTimerMaxFrames)
}

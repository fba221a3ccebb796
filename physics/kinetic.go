// Package physics integrates shape motion and resolves soft collisions
package physics

import (
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Integrate performs physics integration: p = p + v*dt; θ = θ + ω*dt
func Integrate(s *shape.Shape, dt float64) {
	s.Pos = s.Pos.Add(s.Velocity.Mul(dt))
	s.Rotation = vmath.WrapAngle(s.Rotation + s.RotationSpeed*dt)
}

// ApplyImpulse adds a velocity delta to the base heading
func ApplyImpulse(s *shape.Shape, dv vmath.Vec) {
	s.BaseVelocity = s.BaseVelocity.Add(dv)
	s.Velocity = s.Velocity.Add(dv)
}

// reflectAxis handles one axis of boundary contact, returns true if reflection occurred
// Clamps the shape fully inside [lo, hi] and sends it back inward
func reflectAxis(s *shape.Shape, axis int, lo, hi float64) bool {
	r := s.Radius
	minC, maxC := lo+r, hi-r
	if maxC < minC {
		mid := (lo + hi) / 2
		minC, maxC = mid, mid
	}

	p := s.Pos[axis]
	switch {
	case p < minC:
		s.Pos[axis] = minC
		if s.Velocity[axis] < 0 {
			s.Velocity[axis] = -s.Velocity[axis]
		}
		if s.BaseVelocity[axis] < 0 {
			s.BaseVelocity[axis] = -s.BaseVelocity[axis]
		}
		return true
	case p > maxC:
		s.Pos[axis] = maxC
		if s.Velocity[axis] > 0 {
			s.Velocity[axis] = -s.Velocity[axis]
		}
		if s.BaseVelocity[axis] > 0 {
			s.BaseVelocity[axis] = -s.BaseVelocity[axis]
		}
		return true
	}
	return false
}

// ReflectBounds handles both axis boundary collisions, returns true if any reflection occurred
func ReflectBounds(s *shape.Shape, width, height float64) bool {
	rx := reflectAxis(s, 0, 0, width)
	ry := reflectAxis(s, 1, 0, height)
	return rx || ry
}

// EaseCorrection moves the shape a fraction of its pending correction, snapping tiny residues
func EaseCorrection(s *shape.Shape) {
	if s.Correction == (vmath.Vec{}) {
		return
	}
	if s.Correction.Len() <= parameter.CorrectionEpsilon {
		s.Pos = s.Pos.Add(s.Correction)
		s.Correction = vmath.Vec{}
		return
	}
	step := s.Correction.Mul(parameter.CorrectionRate)
	s.Pos = s.Pos.Add(step)
	s.Correction = s.Correction.Sub(step)
}

package perspective

import (
	"math"

	"github.com/lixenwraith/warpcheck/vmath"
)

// Projection is a projected point with its size and opacity multipliers
type Projection struct {
	X, Y    float64
	Scale   float64
	Opacity float64
}

// Pos returns the projected position as a vector
func (p Projection) Pos() vmath.Vec {
	return vmath.V(p.X, p.Y)
}

func identity(p vmath.Vec) Projection {
	return Projection{X: p[0], Y: p[1], Scale: 1, Opacity: 1}
}

// Project maps p through the blended transform around center.
// Blend 0 returns p unchanged regardless of rotation or strength.
func Project(p, center vmath.Vec, s *State) Projection {
	b := vmath.Clamp(s.Blend, Fisheye, Globe)
	if b == 0 {
		return identity(p)
	}

	var target Projection
	amount := b
	if b < 0 {
		target = fisheye(p, center, s)
		amount = -b
	} else {
		target = globe(p, center, s)
	}

	return Projection{
		X:       vmath.Lerp(p[0], target.X, amount),
		Y:       vmath.Lerp(p[1], target.Y, amount),
		Scale:   vmath.Lerp(1, target.Scale, amount),
		Opacity: vmath.Lerp(1, target.Opacity, amount),
	}
}

// fisheye rotates about center, then remaps radial distance by d^(1 - strength/2)
func fisheye(p, center vmath.Vec, s *State) Projection {
	v := vmath.Rotate(p.Sub(center), s.Rotation)
	r := v.Len()
	if r == 0 || s.Radius <= 0 {
		return identity(center.Add(v))
	}

	strength := vmath.Clamp(s.FisheyeStrength, 0, 1)
	d := r / s.Radius
	remapped := math.Pow(d, 1-strength/2) * s.Radius
	out := center.Add(v.Mul(remapped / r))

	return Projection{
		X:       out[0],
		Y:       out[1],
		Scale:   1 + 0.6*strength*math.Min(d, 1),
		Opacity: 1,
	}
}

// globe simulates depth of field: inside the deadzone points recede toward the
// vanishing point, beyond it they grow and brighten toward the rim
func globe(p, center vmath.Vec, s *State) Projection {
	if s.GlobeRadius <= 0 {
		return identity(p)
	}
	v := p.Sub(center)
	d := v.Len() / s.GlobeRadius
	dz := vmath.Clamp(s.Deadzone, 0, 0.99)

	var factor, scale, opacity float64
	if d < dz {
		t := d / dz
		factor = 0.5 + 0.5*t
		scale = 0.35 + 0.65*t
		opacity = 0.25 + 0.6*t
	} else {
		t := math.Min((d-dz)/(1-dz), 1)
		factor = 1 + 0.15*t
		scale = 1 + 0.5*t
		opacity = 0.85 + 0.15*t
	}

	out := center.Add(v.Mul(factor))
	return Projection{X: out[0], Y: out[1], Scale: scale, Opacity: opacity}
}

// Projector binds a state to a surface center
type Projector struct {
	Center vmath.Vec
	State  *State
}

// Project maps p with the bound center and state
func (pr Projector) Project(p vmath.Vec) Projection {
	if pr.State == nil {
		return identity(p)
	}
	return Project(p, pr.Center, pr.State)
}

// Planar reports whether the projector is currently the identity
func (pr Projector) Planar() bool {
	return pr.State == nil || pr.State.Blend == 0
}

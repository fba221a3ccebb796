package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is the 2D vector used across the engine
type Vec = mgl64.Vec2

// V builds a Vec
func V(x, y float64) Vec {
	return Vec{x, y}
}

// Normalize returns unit vector, zero-safe
func Normalize(v Vec) Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return v.Mul(1 / l)
}

// Distance returns Euclidean distance between a and b
func Distance(a, b Vec) float64 {
	return a.Sub(b).Len()
}

// RotateAbout rotates p around center by angle radians
func RotateAbout(p, center Vec, angle float64) Vec {
	if angle == 0 {
		return p
	}
	return center.Add(mgl64.Rotate2D(angle).Mul2x1(p.Sub(center)))
}

// Rotate rotates v around the origin by angle radians
func Rotate(v Vec, angle float64) Vec {
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// LerpVec interpolates a → b by t
func LerpVec(a, b Vec, t float64) Vec {
	return a.Add(b.Sub(a).Mul(t))
}

// FromAngle returns a vector of length mag pointing at angle
func FromAngle(angle, mag float64) Vec {
	return Vec{math.Cos(angle) * mag, math.Sin(angle) * mag}
}

// Heading returns the angle of v in radians
func Heading(v Vec) float64 {
	return math.Atan2(v[1], v[0])
}

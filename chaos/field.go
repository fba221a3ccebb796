// Package chaos maps canvas position to a signed entropy scalar
package chaos

import (
	"math"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Field evaluates the chaos scalar for a surface of fixed size
// Value is -1 on the edge, +1 at the center and 0 on the mid-band
type Field struct {
	Width, Height float64
	Exponent      float64
}

// NewField creates a field for the given surface size with the default exponent
func NewField(width, height float64) Field {
	return Field{Width: width, Height: height, Exponent: parameter.ChaosExponent}
}

// Value returns the chaos scalar in [-1, 1] at (x, y)
// Points outside the surface clamp to the edge value
func (f Field) Value(x, y float64) float64 {
	half := math.Min(f.Width, f.Height) / 2
	if half <= 0 {
		return 0
	}

	edge := math.Min(math.Min(x, f.Width-x), math.Min(y, f.Height-y))
	d := vmath.Clamp(edge/half, 0, 1)

	// s runs -1 (edge) → 0 (mid-band) → +1 (center)
	s := 2*d - 1
	exp := f.Exponent
	if exp <= 1 {
		exp = parameter.ChaosExponent
	}
	return vmath.Clamp(vmath.SignedPow(s, exp), -1, 1)
}

// At is Value for a vector
func (f Field) At(p vmath.Vec) float64 {
	return f.Value(p[0], p[1])
}

// SpeedMultiplier maps a chaos value to the velocity multiplier, 1 at equilibrium
func SpeedMultiplier(c float64) float64 {
	return 1 + parameter.ChaosSpeedGain*math.Abs(c)
}

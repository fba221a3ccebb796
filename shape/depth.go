package shape

import (
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/vmath"
)

// DepthScale maps depth [0, 100] to the apparent size multiplier, far → near
func DepthScale(depth float64) float64 {
	t := vmath.Clamp(depth/parameter.DepthMax, 0, 1)
	return vmath.Lerp(parameter.DepthScaleFar, parameter.DepthScaleNear, t)
}

// DepthOpacity maps depth [0, 100] to the atmospheric opacity factor
func DepthOpacity(depth float64) float64 {
	t := vmath.Clamp(depth/parameter.DepthMax, 0, 1)
	return vmath.Lerp(parameter.DepthOpacityFar, parameter.DepthOpacityNear, t)
}

// ApparentRadius is the radius scaled by depth, before perspective
func (s *Shape) ApparentRadius() float64 {
	return s.Radius * DepthScale(s.Depth)
}

// FlipSpin reverses rotation direction, derived and base
func (s *Shape) FlipSpin() {
	s.RotationSpeed = -s.RotationSpeed
	s.BaseRotationSpeed = -s.BaseRotationSpeed
}

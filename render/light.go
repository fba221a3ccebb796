package render

import (
	"math"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Light is a roaming light point with signed intensity
// Positive intensity brightens nearby shapes, negative darkens them, zero is neutral
type Light struct {
	Pos       vmath.Vec
	Intensity float64 // [-1, 1]
	Radius    float64 // Falloff distance in pixels

	center vmath.Vec
	orbit  float64
	phase  float64
	pulse  float64 // Intensity oscillation amplitude, 0 holds Intensity fixed
}

// NewLight creates a light orbiting the surface center
func NewLight(width, height float64) *Light {
	l := &Light{pulse: 1}
	l.Fit(width, height)
	l.Pos = l.center
	return l
}

// Fit re-derives the orbit and falloff from surface dimensions
func (l *Light) Fit(width, height float64) {
	m := math.Min(width, height)
	l.center = vmath.V(width/2, height/2)
	l.orbit = m * 0.3
	l.Radius = m * parameter.LightRadiusRatio
}

// Hold fixes the intensity and stops oscillation
func (l *Light) Hold(intensity float64) {
	l.Intensity = vmath.Clamp(intensity, -1, 1)
	l.pulse = 0
}

// Advance orbits the light point and, unless held, swings intensity through all regimes
func (l *Light) Advance() {
	l.phase = vmath.WrapAngle(l.phase + parameter.LightOrbitSpeed)
	l.Pos = l.center.Add(vmath.FromAngle(l.phase, l.orbit))
	if l.pulse != 0 {
		l.Intensity = vmath.Clamp(l.pulse*math.Sin(l.phase*3), -1, 1)
	}
}

// Opacity returns the light factor at screen point p
func (l *Light) Opacity(p vmath.Vec) float64 {
	neutral := parameter.LightNeutralOpacity
	if l == nil || l.Intensity == 0 || l.Radius <= 0 {
		return neutral
	}

	prox := vmath.Clamp(1-vmath.Distance(p, l.Pos)/l.Radius, 0, 1)
	if l.Intensity > 0 {
		return neutral + (1-neutral)*prox*l.Intensity
	}
	return neutral * (1 - parameter.LightDarkenDepth*prox*-l.Intensity)
}

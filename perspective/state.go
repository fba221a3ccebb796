// Package perspective blends fisheye, planar and globe mappings into one continuous transform
package perspective

import (
	"math"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Regime anchors of the blend scalar
const (
	Fisheye = -1.0
	Planar  = 0.0
	Globe   = 1.0
)

// cycle is the unpinned target sequence: -1 → 0 → +1 → 0 → -1
var cycle = [...]float64{Fisheye, Planar, Globe, Planar}

// State is the perspective blend state, owned by a single engine instance
type State struct {
	Blend  float64 // Current blend in [-1, 1]
	Target float64 // Blend eases toward this
	Speed  float64 // Max blend step per frame

	Rotation      float64 // View rotation in radians, wraps mod 2π
	RotationSpeed float64 // Radians per frame

	FisheyeStrength float64 // (0, 1]
	Radius          float64 // Fisheye normalisation radius in pixels
	GlobeRadius     float64 // Globe radius in pixels
	Deadzone        float64 // Inner fraction of GlobeRadius that recedes

	Pinned bool

	stage      int
	holdFrames int
}

// NewState creates a state fitted to the surface, starting planar
func NewState(width, height float64, rng *vmath.FastRand) *State {
	s := &State{
		Speed:           parameter.BlendSpeed,
		RotationSpeed:   parameter.ViewRotationSpeed,
		FisheyeStrength: parameter.FisheyeStrength,
		Deadzone:        parameter.GlobeDeadzone,
		stage:           1, // Planar entry in cycle
	}
	s.Fit(width, height)
	s.holdFrames = s.randomHold(rng)
	return s
}

// Fit re-derives pixel-scale constants from the surface size
func (s *State) Fit(width, height float64) {
	s.Radius = math.Hypot(width, height) / 2
	s.GlobeRadius = parameter.GlobeRadiusRatio * math.Min(width, height) / 2
}

// Pin freezes the blend at the given value, both current and target
func (s *State) Pin(blend float64) {
	s.Pinned = true
	s.Blend = vmath.Clamp(blend, Fisheye, Globe)
	s.Target = s.Blend
}

// Unpin resumes the randomized cycle from the nearest stage
func (s *State) Unpin() {
	s.Pinned = false
	best := 0
	for i, v := range cycle {
		if math.Abs(v-s.Blend) < math.Abs(cycle[best]-s.Blend) {
			best = i
		}
	}
	s.stage = best
	s.Target = cycle[best]
}

// Advance moves the state forward one frame
func (s *State) Advance(rng *vmath.FastRand) {
	s.Rotation = vmath.WrapAngle(s.Rotation + s.RotationSpeed)

	if s.Blend != s.Target {
		s.Blend = vmath.Approach(s.Blend, s.Target, s.Speed)
		return
	}
	if s.Pinned {
		return
	}

	s.holdFrames--
	if s.holdFrames > 0 {
		return
	}
	s.stage = (s.stage + 1) % len(cycle)
	s.Target = cycle[s.stage]
	s.holdFrames = s.randomHold(rng)
}

func (s *State) randomHold(rng *vmath.FastRand) int {
	if rng == nil {
		return parameter.BlendHoldMinFrames
	}
	return rng.IntRange(parameter.BlendHoldMinFrames, parameter.BlendHoldMaxFrames)
}

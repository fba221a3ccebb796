// Package shape holds the shape body model and the unified placement generator
package shape

import (
	"fmt"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Kind is the outline family of a shape
type Kind uint8

const (
	KindCircle Kind = iota
	KindSquare
	KindTriangle
	KindStar
	KindCount
)

var kindNames = [KindCount]string{"circle", "square", "triangle", "star"}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind name
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Vertices returns the outline vertex count, 0 for circles
func (k Kind) Vertices() int {
	switch k {
	case KindSquare:
		return 4
	case KindTriangle:
		return 3
	case KindStar:
		return 10
	default:
		return 0
	}
}

// Shape is one simulated body
type Shape struct {
	ID int

	// Kinematics, model-space pixels
	Pos          vmath.Vec
	Velocity     vmath.Vec // Derived each tick: BaseVelocity × multipliers
	BaseVelocity vmath.Vec // Never written by chaos multipliers

	Rotation          float64
	RotationSpeed     float64 // Derived each tick
	BaseRotationSpeed float64 // Never written by chaos multipliers

	Radius float64
	Kind   Kind
	Color  int // Palette index
	// Inverted renders the complementary color
	Inverted bool

	Depth       float64 // [0, 100], 0 = far
	DepthTarget float64 // [0, 100]

	// Challenge tags
	Ordinal      int // Expected position in an ordered answer, 1-based, 0 = none
	Label        int // Numeric label drawn as pips, 0 = none
	Target       bool
	Distractor   bool
	Dangerous    bool
	Dashed       bool
	DoubleBorder bool

	// Round state
	Clicked    bool
	ClickOrder int // 1-based, 0 = not clicked

	// Correction is the remaining offset toward the soft-collision target position
	Correction vmath.Vec
	Immunity   int // Frames until the shape may collide again

	TimerFrames int // Frames until the next per-shape perturbation
}

// MarkClicked assigns the click order once per round, returns false on repeat
func (s *Shape) MarkClicked(order int) bool {
	if s.Clicked {
		return false
	}
	s.Clicked = true
	s.ClickOrder = order
	return true
}

// ResetRound clears per-round click state
func (s *Shape) ResetRound() {
	s.Clicked = false
	s.ClickOrder = 0
}

// SetDepth writes depth clamped into range
func (s *Shape) SetDepth(d float64) {
	s.Depth = vmath.Clamp(d, parameter.DepthMin, parameter.DepthMax)
}

// SetDepthTarget writes the depth target clamped into range
func (s *Shape) SetDepthTarget(d float64) {
	s.DepthTarget = vmath.Clamp(d, parameter.DepthMin, parameter.DepthMax)
}

// Validate checks the body invariants
func (s *Shape) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("shape %d: radius %f must be positive", s.ID, s.Radius)
	}
	if s.Depth < parameter.DepthMin || s.Depth > parameter.DepthMax {
		return fmt.Errorf("shape %d: depth %f out of range", s.ID, s.Depth)
	}
	if s.DepthTarget < parameter.DepthMin || s.DepthTarget > parameter.DepthMax {
		return fmt.Errorf("shape %d: depth target %f out of range", s.ID, s.DepthTarget)
	}
	if s.Kind >= KindCount {
		return fmt.Errorf("shape %d: unknown kind %d", s.ID, s.Kind)
	}
	return nil
}

// Scale rescales position, radius and velocities after a surface resize
func (s *Shape) Scale(sx, sy float64) {
	rs := (sx + sy) / 2
	s.Pos = vmath.V(s.Pos[0]*sx, s.Pos[1]*sy)
	s.Velocity = vmath.V(s.Velocity[0]*sx, s.Velocity[1]*sy)
	s.BaseVelocity = vmath.V(s.BaseVelocity[0]*sx, s.BaseVelocity[1]*sy)
	s.Correction = vmath.V(s.Correction[0]*sx, s.Correction[1]*sy)
	s.Radius *= rs
}

package challenge

import (
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Params are the per-round answer parameters chosen at generation time
type Params struct {
	Color         int          // ColorMatch target, AvoidColor forbidden color
	Kind          shape.Kind   // ShapeMatch target, AvoidShape forbidden kind
	ColorSequence []int        // ColorSequence expected order
	KindSequence  []shape.Kind // ShapeSequence expected order
	Center        vmath.Vec    // Radial reference point in screen space
}

// Session is one presented puzzle round
type Session struct {
	Type        Type
	Params      Params
	Instruction string // Supplied by the caller, keyed by Type

	Required int // Valid clicks that trigger evaluation
	Shapes   int // Clickable shapes on the surface
}

// Member reports whether rec belongs to the answer set of the session
func (s *Session) Member(rec ClickRecord) bool {
	p := &s.Params
	switch s.Type {
	case SizeAscending, SizeDescending,
		LeftToRight, RightToLeft, TopToBottom, Diagonal, RadialOut, RadialIn:
		return rec.Target
	case ColorSequence:
		for _, c := range p.ColorSequence {
			if rec.Color == c {
				return true
			}
		}
		return false
	case RainbowOrder:
		return rec.Color >= 0 && rec.Color < shape.ColorCount && !rec.Distractor
	case NumberedDots:
		return rec.Label > 0
	case ShapeSequence:
		for _, k := range p.KindSequence {
			if rec.Kind == k {
				return true
			}
		}
		return false
	case ColorMatch:
		return rec.Color == p.Color
	case ShapeMatch:
		return rec.Kind == p.Kind
	case EvenNumbers:
		return rec.Label > 0 && rec.Label%2 == 0
	case OddNumbers:
		return rec.Label%2 == 1
	case AvoidColor:
		return rec.Color != p.Color && !rec.Dangerous
	case AvoidShape:
		return rec.Kind != p.Kind && !rec.Dangerous
	case DashedOnly:
		return rec.Dashed
	case DoubleBorderOnly:
		return rec.DoubleBorder
	default:
		return false
	}
}

// Forbidden reports whether rec is a disallowed click that fails immediately
func (s *Session) Forbidden(rec ClickRecord) bool {
	if !s.Type.Traits().HardFail {
		return false
	}
	return !s.Member(rec)
}

package challenge

import (
	"github.com/lixenwraith/warpcheck/vmath"
)

// Evaluate classifies an ordered click log against the session.
// It is pure: the result depends only on the records and the session.
func Evaluate(s *Session, log []ClickRecord) Reason {
	valid := 0
	for _, rec := range log {
		if s.Forbidden(rec) {
			return ReasonForbiddenMember
		}
		if s.Member(rec) {
			valid++
		}
	}

	if valid != len(log) {
		return ReasonWrongSet
	}
	if valid < s.Required {
		return ReasonIncomplete
	}
	if !s.Type.Traits().Ordered {
		return ReasonNone
	}
	if !inOrder(s, log) {
		return ReasonWrongOrder
	}
	return ReasonNone
}

// inOrder checks the ordering rule of an ordered type over member records
func inOrder(s *Session, log []ClickRecord) bool {
	switch s.Type {
	case SizeAscending:
		return monotonic(log, func(r ClickRecord) float64 { return r.Radius }, strictUp)
	case SizeDescending:
		return monotonic(log, func(r ClickRecord) float64 { return r.Radius }, strictDown)
	case LeftToRight:
		return monotonic(log, func(r ClickRecord) float64 { return r.X }, up)
	case RightToLeft:
		return monotonic(log, func(r ClickRecord) float64 { return r.X }, down)
	case TopToBottom:
		return monotonic(log, func(r ClickRecord) float64 { return r.Y }, up)
	case Diagonal:
		return monotonic(log, func(r ClickRecord) float64 { return r.X + r.Y }, up)
	case RadialOut:
		return monotonic(log, radialKey(s), up)
	case RadialIn:
		return monotonic(log, radialKey(s), down)
	case RainbowOrder:
		return monotonic(log, func(r ClickRecord) float64 { return float64(r.Color) }, strictUp)
	case NumberedDots:
		return monotonic(log, func(r ClickRecord) float64 { return float64(r.Label) }, strictUp)
	case ColorSequence:
		if len(log) != len(s.Params.ColorSequence) {
			return false
		}
		for i, rec := range log {
			if rec.Color != s.Params.ColorSequence[i] {
				return false
			}
		}
		return true
	case ShapeSequence:
		if len(log) != len(s.Params.KindSequence) {
			return false
		}
		for i, rec := range log {
			if rec.Kind != s.Params.KindSequence[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

type comparison func(prev, cur float64) bool

func up(prev, cur float64) bool         { return cur >= prev }
func down(prev, cur float64) bool       { return cur <= prev }
func strictUp(prev, cur float64) bool   { return cur > prev }
func strictDown(prev, cur float64) bool { return cur < prev }

func monotonic(log []ClickRecord, key func(ClickRecord) float64, ok comparison) bool {
	for i := 1; i < len(log); i++ {
		if !ok(key(log[i-1]), key(log[i])) {
			return false
		}
	}
	return true
}

func radialKey(s *Session) func(ClickRecord) float64 {
	c := s.Params.Center
	return func(r ClickRecord) float64 {
		return vmath.Distance(vmath.V(r.X, r.Y), c)
	}
}

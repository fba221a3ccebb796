package render

import (
	"math"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/perspective"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// starInner is the inner vertex radius of a star as fraction of the outer one
const starInner = 0.45

// polygon returns the unit outline vertices of a kind, rotated by angle
func polygon(k shape.Kind, angle float64) []vmath.Vec {
	n := k.Vertices()
	pts := make([]vmath.Vec, n)
	switch k {
	case shape.KindSquare:
		for i := range pts {
			pts[i] = vmath.FromAngle(angle+math.Pi/4+float64(i)*math.Pi/2, 1)
		}
	case shape.KindTriangle:
		for i := range pts {
			pts[i] = vmath.FromAngle(angle-math.Pi/2+float64(i)*vmath.TwoPi/3, 1)
		}
	case shape.KindStar:
		for i := range pts {
			r := 1.0
			if i%2 == 1 {
				r = starInner
			}
			pts[i] = vmath.FromAngle(angle-math.Pi/2+float64(i)*math.Pi/5, r)
		}
	}
	return pts
}

// circleSegments picks a segment count so on-screen segments stay short
func circleSegments(radius float64) int {
	n := int(math.Ceil(vmath.TwoPi * radius / parameter.TessellateSegmentLength))
	if n < parameter.TessellateMinSegments {
		return parameter.TessellateMinSegments
	}
	if n > parameter.TessellateMaxSegments {
		return parameter.TessellateMaxSegments
	}
	return n
}

// Tessellated reports whether outlines are warped per vertex at this blend
func Tessellated(pr perspective.Projector) bool {
	return pr.State != nil && math.Abs(pr.State.Blend) > parameter.TessellateThreshold
}

// Outline returns the closed screen-space outline of s at radius inset pixels
// inside its apparent edge. Circles return nil when not tessellated, the caller
// draws them analytically.
func Outline(s *shape.Shape, pl Placement, pr perspective.Projector, inset float64) []vmath.Vec {
	if !Tessellated(pr) {
		r := pl.Radius - inset
		if r <= 0 || s.Kind == shape.KindCircle {
			return nil
		}
		unit := polygon(s.Kind, s.Rotation)
		out := make([]vmath.Vec, len(unit))
		for i, u := range unit {
			out[i] = pl.Center.Add(u.Mul(r))
		}
		return out
	}

	// Model-space outline at depth-scaled radius, each vertex projected on its own
	scale := pl.Scale
	if scale <= 0 {
		scale = 1
	}
	r := s.ApparentRadius() - inset/scale
	if r <= 0 {
		return nil
	}

	var model []vmath.Vec
	if s.Kind == shape.KindCircle {
		n := circleSegments(pl.Radius)
		model = make([]vmath.Vec, n)
		for i := range model {
			model[i] = s.Pos.Add(vmath.FromAngle(s.Rotation+float64(i)*vmath.TwoPi/float64(n), r))
		}
	} else {
		unit := polygon(s.Kind, s.Rotation)
		model = make([]vmath.Vec, 0, len(unit)*parameter.EdgeSubdivisions)
		for i, u := range unit {
			a := s.Pos.Add(u.Mul(r))
			b := s.Pos.Add(unit[(i+1)%len(unit)].Mul(r))
			for k := 0; k < parameter.EdgeSubdivisions; k++ {
				model = append(model, vmath.LerpVec(a, b, float64(k)/parameter.EdgeSubdivisions))
			}
		}
	}

	out := make([]vmath.Vec, len(model))
	for i, p := range model {
		out[i] = pr.Project(p).Pos()
	}
	return out
}

package render

import (
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/perspective"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Placement is the on-screen footprint of a shape for the current frame
// Drawing and hit testing both derive from it so they cannot disagree
type Placement struct {
	Center  vmath.Vec
	Radius  float64
	Opacity float64
	Scale   float64 // Perspective scale alone
}

// Place projects a shape through the depth mapping and the perspective projector
func Place(s *shape.Shape, pr perspective.Projector) Placement {
	proj := pr.Project(s.Pos)
	return Placement{
		Center:  proj.Pos(),
		Radius:  s.Radius * shape.DepthScale(s.Depth) * proj.Scale,
		Opacity: shape.DepthOpacity(s.Depth) * proj.Opacity,
		Scale:   proj.Scale,
	}
}

// HitFactor returns the bounding-radius factor for a kind
func HitFactor(k shape.Kind) float64 {
	switch k {
	case shape.KindSquare:
		return parameter.HitFactorSquare
	case shape.KindTriangle:
		return parameter.HitFactorTriangle
	case shape.KindStar:
		return parameter.HitFactorStar
	default:
		return parameter.HitFactorCircle
	}
}

// HitTest reports whether screen point p lands on s, without inverting the projection
func HitTest(p vmath.Vec, s *shape.Shape, pr perspective.Projector) bool {
	pl := Place(s, pr)
	return vmath.Distance(p, pl.Center) <= pl.Radius*HitFactor(s.Kind)
}

// Pick returns the front-most shape under p, nil when nothing is hit
// Front-most follows draw order: higher integer depth first, later index on ties
func Pick(p vmath.Vec, shapes []*shape.Shape, pr perspective.Projector) *shape.Shape {
	var best *shape.Shape
	bestDepth := -1
	for _, s := range shapes {
		d := int(s.Depth)
		if d < bestDepth {
			continue
		}
		if HitTest(p, s, pr) {
			best, bestDepth = s, d
		}
	}
	return best
}

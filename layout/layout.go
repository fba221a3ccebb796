// Package layout builds per-challenge shape fields on top of the unified generator
package layout

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// ErrEmptyBounds reports a surface with no area to place shapes on
var ErrEmptyBounds = errors.New("empty layout bounds")

// Layout is a freshly generated round: shapes plus the session they answer
type Layout struct {
	Shapes  []*shape.Shape
	Session challenge.Session
}

// builder produces the generator spec and session parameters for one type
type builder func(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int)

var builders = map[challenge.Type]builder{
	challenge.SizeAscending:    sizeOrdered,
	challenge.SizeDescending:   sizeOrdered,
	challenge.LeftToRight:      spatial,
	challenge.RightToLeft:      spatial,
	challenge.TopToBottom:      spatial,
	challenge.Diagonal:         spatial,
	challenge.RadialOut:        spatial,
	challenge.RadialIn:         spatial,
	challenge.ColorSequence:    colorSequence,
	challenge.RainbowOrder:     rainbow,
	challenge.NumberedDots:     numbered,
	challenge.ShapeSequence:    kindSequence,
	challenge.ColorMatch:       colorMatch,
	challenge.ShapeMatch:       kindMatch,
	challenge.EvenNumbers:      labelled(0),
	challenge.OddNumbers:       labelled(1),
	challenge.AvoidColor:       avoidColor,
	challenge.AvoidShape:       avoidKind,
	challenge.DashedOnly:       structural(func(s *shape.Shape) { s.Dashed = true }),
	challenge.DoubleBorderOnly: structural(func(s *shape.Shape) { s.DoubleBorder = true }),
}

// Generate builds the shape field and session for t on a surface of the given bounds
func Generate(t challenge.Type, b shape.Bounds, rng *vmath.FastRand) (Layout, error) {
	build, ok := builders[t]
	if !ok {
		return Layout{}, fmt.Errorf("layout %s: %w", t, challenge.ErrUnknownType)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return Layout{}, fmt.Errorf("layout %s: %w %.0fx%.0f", t, ErrEmptyBounds, b.Width, b.Height)
	}

	spec, params, required := build(b, rng)
	if params.Center == (vmath.Vec{}) {
		params.Center = b.Center()
	}

	shapes := shape.Generate(spec, b, rng)
	if t.Traits().SizeSensitive {
		for _, s := range shapes {
			s.SetDepth(rng.Range(parameter.SizeSensitiveDepthLo, parameter.SizeSensitiveDepthHi))
			s.SetDepthTarget(s.Depth)
		}
	}

	return Layout{
		Shapes: shapes,
		Session: challenge.Session{
			Type:     t,
			Params:   params,
			Required: required,
			Shapes:   len(shapes),
		},
	}, nil
}

func radii(b shape.Bounds) (lo, hi float64) {
	m := b.Min()
	return parameter.RadiusMinRatio * m, parameter.RadiusMaxRatio * m
}

// otherIndex picks a value in [0, n) different from every excluded one
func otherIndex(rng *vmath.FastRand, n int, exclude ...int) int {
	for {
		v := rng.Intn(n)
		clash := false
		for _, e := range exclude {
			if v == e {
				clash = true
				break
			}
		}
		if !clash {
			return v
		}
	}
}

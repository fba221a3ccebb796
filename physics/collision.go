package physics

import (
	"math"

	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// Contact describes one resolved pair
type Contact struct {
	A, B    int // Shape IDs
	Overlap float64
}

// Resolver centralizes pairwise soft collision between shapes of similar depth
type Resolver struct {
	rng *vmath.FastRand

	// DepthThreshold is the max depth difference for a pair to interact
	DepthThreshold float64

	contacts []Contact
}

// NewResolver creates a resolver with default tuning
func NewResolver(rng *vmath.FastRand) *Resolver {
	return &Resolver{
		rng:            rng,
		DepthThreshold: parameter.CollisionDepthThreshold,
		contacts:       make([]Contact, 0, 8),
	}
}

// Resolve runs one tick of pairwise collision, O(n²) over unordered pairs
// Returned slice is reused across calls
func (r *Resolver) Resolve(shapes []*shape.Shape) []Contact {
	r.contacts = r.contacts[:0]

	for _, s := range shapes {
		if s.Immunity > 0 {
			s.Immunity--
		}
	}

	for i := 0; i < len(shapes); i++ {
		a := shapes[i]
		for j := i + 1; j < len(shapes); j++ {
			b := shapes[j]
			if a.Immunity > 0 || b.Immunity > 0 {
				continue
			}
			if math.Abs(a.Depth-b.Depth) > r.DepthThreshold {
				continue
			}

			delta := a.Pos.Sub(b.Pos)
			dist := delta.Len()
			overlap := a.ApparentRadius() + b.ApparentRadius() - dist
			if overlap <= 0 {
				continue
			}

			normal := vmath.V(1, 0)
			if dist > 0 {
				normal = delta.Mul(1 / dist)
			}
			r.separate(a, b, normal, overlap)
			r.contacts = append(r.contacts, Contact{A: a.ID, B: b.ID, Overlap: overlap})
		}
	}
	return r.contacts
}

// separate applies the contact response to one overlapping pair
func (r *Resolver) separate(a, b *shape.Shape, normal vmath.Vec, overlap float64) {
	push := normal.Mul(overlap / 2)
	a.Correction = a.Correction.Add(push)
	b.Correction = b.Correction.Sub(push)

	a.Velocity, b.Velocity = b.Velocity, a.Velocity
	a.BaseVelocity, b.BaseVelocity = b.BaseVelocity, a.BaseVelocity

	if r.rng.Chance(parameter.CollisionFlipChance) {
		a.FlipSpin()
	}
	if r.rng.Chance(parameter.CollisionFlipChance) {
		b.FlipSpin()
	}

	a.Immunity = parameter.CollisionImmunityFrames
	b.Immunity = parameter.CollisionImmunityFrames
}

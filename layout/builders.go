package layout

import (
	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/vmath"
)

// sizeOrdered places tagged circles with clearly distinct radii plus square distractors
func sizeOrdered(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	n := parameter.OrderedTargetCount
	step := (hi - lo) / float64(n-1)
	if min := lo * parameter.SizeOrderSpread; step < min {
		step = min
	}
	order := rng.Perm(n)

	spec := shape.Spec{
		Count:     n + parameter.OrderedDistractors,
		MinRadius: lo,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Color = rng.Intn(shape.ColorCount)
			if i >= n {
				s.Kind = shape.KindSquare
				s.Distractor = true
				return
			}
			rank := order[i]
			s.Kind = shape.KindCircle
			s.Target = true
			s.Ordinal = rank + 1
			s.Radius = lo + step*float64(rank)
		},
	}
	return spec, challenge.Params{}, n
}

// spatial places tagged circles whose order comes from their on-screen position
func spatial(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	n := parameter.OrderedTargetCount
	spec := shape.Spec{
		Count:     n + parameter.OrderedDistractors,
		MinRadius: lo,
		MaxRadius: (lo + hi) / 2,
		Tag: func(i int, s *shape.Shape) {
			s.Color = rng.Intn(shape.ColorCount)
			if i >= n {
				s.Kind = shape.KindTriangle
				s.Distractor = true
				return
			}
			s.Kind = shape.KindCircle
			s.Target = true
		},
	}
	return spec, challenge.Params{}, n
}

// colorSequence places one shape per sequence color and distractors in unused colors
func colorSequence(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	perm := rng.Perm(shape.ColorCount)
	n := parameter.SequenceLength
	seq := append([]int(nil), perm[:n]...)
	spare := perm[n:]

	spec := shape.Spec{
		Count:     shape.ColorCount,
		MinRadius: lo,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Kind = shape.Kind(rng.Intn(int(shape.KindCount)))
			if i < n {
				s.Color = seq[i]
				s.Target = true
				s.Ordinal = i + 1
				return
			}
			s.Color = spare[(i-n)%len(spare)]
			s.Distractor = true
		},
	}
	return spec, challenge.Params{ColorSequence: seq}, n
}

// rainbow places one shape per palette color
func rainbow(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	spec := shape.Spec{
		Count:     shape.ColorCount,
		MinRadius: lo,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Kind = shape.Kind(rng.Intn(int(shape.KindCount)))
			s.Color = i
			s.Target = true
			s.Ordinal = i + 1
		},
	}
	return spec, challenge.Params{}, shape.ColorCount
}

// numbered places circles labelled 1..n, clicked in ascending label order
func numbered(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	n := parameter.OrderedTargetCount
	spec := shape.Spec{
		Count:     n,
		MinRadius: (lo + hi) / 2,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Kind = shape.KindCircle
			s.Color = rng.Intn(shape.ColorCount)
			s.Label = i + 1
			s.Ordinal = i + 1
			s.Target = true
		},
	}
	return spec, challenge.Params{}, n
}

// kindSequence places one shape of each kind in a random expected order
func kindSequence(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	perm := rng.Perm(int(shape.KindCount))
	seq := make([]shape.Kind, len(perm))
	for i, k := range perm {
		seq[i] = shape.Kind(k)
	}

	spec := shape.Spec{
		Count:     len(seq),
		MinRadius: lo,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Kind = seq[i]
			s.Color = rng.Intn(shape.ColorCount)
			s.Target = true
			s.Ordinal = i + 1
		},
	}
	return spec, challenge.Params{KindSequence: seq}, len(seq)
}

// colorMatch places shapes of the target color among other colors
func colorMatch(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	target := rng.Intn(shape.ColorCount)
	n := parameter.MatchTargetCount
	spec := shape.Spec{
		Count:     n + parameter.MatchDistractors,
		MinRadius: lo,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Kind = shape.Kind(rng.Intn(int(shape.KindCount)))
			if i < n {
				s.Color = target
				s.Target = true
				return
			}
			s.Color = otherIndex(rng, shape.ColorCount, target)
			s.Distractor = true
		},
	}
	return spec, challenge.Params{Color: target}, n
}

// kindMatch places shapes of the target kind among other kinds
func kindMatch(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	target := shape.Kind(rng.Intn(int(shape.KindCount)))
	n := parameter.MatchTargetCount
	spec := shape.Spec{
		Count:     n + parameter.MatchDistractors,
		MinRadius: lo,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Color = rng.Intn(shape.ColorCount)
			if i < n {
				s.Kind = target
				s.Target = true
				return
			}
			s.Kind = shape.Kind(otherIndex(rng, int(shape.KindCount), int(target)))
			s.Distractor = true
		},
	}
	return spec, challenge.Params{Kind: target}, n
}

// labelled places shapes labelled 1..N, targets are the labels of the given parity
func labelled(parity int) builder {
	return func(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
		lo, hi := radii(b)
		n := parameter.NumberedLabelCount
		required := 0
		for label := 1; label <= n; label++ {
			if label%2 == parity {
				required++
			}
		}
		spec := shape.Spec{
			Count:     n,
			MinRadius: (lo + hi) / 2,
			MaxRadius: hi,
			Tag: func(i int, s *shape.Shape) {
				s.Kind = shape.KindCircle
				s.Color = rng.Intn(shape.ColorCount)
				s.Label = i + 1
				s.Target = s.Label%2 == parity
				s.Distractor = !s.Target
			},
		}
		return spec, challenge.Params{}, required
	}
}

// avoidColor places safe shapes and dangerous shapes of the forbidden color
func avoidColor(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	danger := shape.ColorRed
	n := parameter.AvoidSafeCount
	spec := shape.Spec{
		Count:     n + parameter.AvoidDangerousCount,
		MinRadius: lo,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Kind = shape.Kind(rng.Intn(int(shape.KindCount)))
			if i < n {
				s.Color = otherIndex(rng, shape.ColorCount, danger)
				s.Target = true
				return
			}
			s.Color = danger
			s.Dangerous = true
		},
	}
	return spec, challenge.Params{Color: danger}, n
}

// avoidKind places safe shapes and dangerous shapes of the forbidden kind
func avoidKind(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
	lo, hi := radii(b)
	danger := shape.KindStar
	n := parameter.AvoidSafeCount
	spec := shape.Spec{
		Count:     n + parameter.AvoidDangerousCount,
		MinRadius: lo,
		MaxRadius: hi,
		Tag: func(i int, s *shape.Shape) {
			s.Color = rng.Intn(shape.ColorCount)
			if i < n {
				s.Kind = shape.Kind(otherIndex(rng, int(shape.KindCount), int(danger)))
				s.Target = true
				return
			}
			s.Kind = danger
			s.Dangerous = true
		},
	}
	return spec, challenge.Params{Kind: danger}, n
}

// structural places marked shapes and plain distractors of identical kind mix
func structural(mark func(*shape.Shape)) builder {
	return func(b shape.Bounds, rng *vmath.FastRand) (shape.Spec, challenge.Params, int) {
		lo, hi := radii(b)
		n := parameter.StructuralCount
		spec := shape.Spec{
			Count:     2 * n,
			MinRadius: lo,
			MaxRadius: hi,
			Tag: func(i int, s *shape.Shape) {
				s.Kind = shape.Kind(rng.Intn(int(shape.KindCount)))
				s.Color = rng.Intn(shape.ColorCount)
				if i < n {
					mark(s)
					s.Target = true
					return
				}
				s.Distractor = true
			},
		}
		return spec, challenge.Params{}, n
	}
}

// Package challenge defines puzzle variants, their predicates and the verification state machine
package challenge

import "fmt"

// Type is an enumerated puzzle variant
type Type uint8

const (
	TypeNone Type = iota

	// Monotonic size ordering
	SizeAscending
	SizeDescending

	// Spatial ordering, evaluated on screen positions at click time
	LeftToRight
	RightToLeft
	TopToBottom
	Diagonal
	RadialOut
	RadialIn

	// Tagged sequences
	ColorSequence
	RainbowOrder
	NumberedDots
	ShapeSequence

	// Unordered set membership
	ColorMatch
	ShapeMatch
	EvenNumbers
	OddNumbers

	// Negative category, a forbidden click fails immediately
	AvoidColor
	AvoidShape

	// Structural filters, a forbidden click fails immediately
	DashedOnly
	DoubleBorderOnly

	TypeCount
)

var typeNames = [TypeCount]string{
	TypeNone:         "none",
	SizeAscending:    "size-ascending",
	SizeDescending:   "size-descending",
	LeftToRight:      "left-to-right",
	RightToLeft:      "right-to-left",
	TopToBottom:      "top-to-bottom",
	Diagonal:         "diagonal",
	RadialOut:        "radial-out",
	RadialIn:         "radial-in",
	ColorSequence:    "color-sequence",
	RainbowOrder:     "rainbow-order",
	NumberedDots:     "numbered-dots",
	ShapeSequence:    "shape-sequence",
	ColorMatch:       "color-match",
	ShapeMatch:       "shape-match",
	EvenNumbers:      "even-numbers",
	OddNumbers:       "odd-numbers",
	AvoidColor:       "avoid-color",
	AvoidShape:       "avoid-shape",
	DashedOnly:       "dashed-only",
	DoubleBorderOnly: "double-border-only",
}

func (t Type) String() string {
	if t < TypeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseType resolves a type identifier
func ParseType(name string) (Type, error) {
	for i := Type(1); i < TypeCount; i++ {
		if typeNames[i] == name {
			return i, nil
		}
	}
	return TypeNone, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// All returns every playable type in declaration order
func All() []Type {
	out := make([]Type, 0, TypeCount-1)
	for i := Type(1); i < TypeCount; i++ {
		out = append(out, i)
	}
	return out
}

// Valid reports whether t is a playable type
func (t Type) Valid() bool {
	return t > TypeNone && t < TypeCount
}

// Traits describe how a type interacts with the simulation and verifier
type Traits struct {
	Ordered        bool // Click order matters
	Spatial        bool // Order derives from position, simulation slows down
	ColorSensitive bool // Color inversion is suppressed
	SizeSensitive  bool // Depth is kept in a narrow band
	HardFail       bool // A disallowed click fails before the count is reached
}

// Traits returns the behavior flags for t
func (t Type) Traits() Traits {
	switch t {
	case SizeAscending, SizeDescending:
		return Traits{Ordered: true, SizeSensitive: true}
	case LeftToRight, RightToLeft, TopToBottom, Diagonal, RadialOut, RadialIn:
		return Traits{Ordered: true, Spatial: true}
	case ColorSequence, RainbowOrder:
		return Traits{Ordered: true, ColorSensitive: true}
	case NumberedDots, ShapeSequence:
		return Traits{Ordered: true}
	case ColorMatch:
		return Traits{ColorSensitive: true}
	case ShapeMatch, EvenNumbers, OddNumbers:
		return Traits{}
	case AvoidColor:
		return Traits{ColorSensitive: true, HardFail: true}
	case AvoidShape, DashedOnly, DoubleBorderOnly:
		return Traits{HardFail: true}
	default:
		return Traits{}
	}
}

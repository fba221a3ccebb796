package parameter

// Placement (rejection sampling)
const (
	// PlacementAttempts bounds candidates per shape; the last candidate is kept on exhaustion
	PlacementAttempts = 60

	// PlacementGapRatio is the minimum free gap between shapes as fraction of the smaller radius
	PlacementGapRatio = 0.25

	// PlacementMarginRatio keeps shapes away from the surface edge, fraction of radius
	PlacementMarginRatio = 1.1
)

// Radii as fractions of min(width, height)
const (
	RadiusMinRatio = 0.035
	RadiusMaxRatio = 0.085

	// SizeOrderSpread is the minimum relative radius step between size-ordered targets
	SizeOrderSpread = 0.12
)

// Counts per layout family
const (
	OrderedTargetCount  = 5
	OrderedDistractors  = 2
	SequenceLength      = 4
	MatchTargetCount    = 3
	MatchDistractors    = 4
	NumberedLabelCount  = 7
	AvoidSafeCount      = 4
	AvoidDangerousCount = 3
	StructuralCount     = 3
)

// Depth range
const (
	DepthMin = 0.0
	DepthMax = 100.0

	// SizeSensitiveDepthLo/Hi is the narrow depth band used when apparent size matters
	SizeSensitiveDepthLo = 40.0
	SizeSensitiveDepthHi = 60.0
)

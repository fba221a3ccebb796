package parameter

// Chaos field
const (
	// ChaosExponent shapes the field, >1 suppresses mid-band values
	ChaosExponent = 2.2

	// ChaosSpeedGain scales |chaos| into the velocity multiplier: 1 + gain·|c|
	ChaosSpeedGain = 1.75

	// SlowMotionFactor applies to order/direction-sensitive challenges
	SlowMotionFactor = 0.25
)

// Base motion, fractions of min(width, height) per second
const (
	BaseSpeedMinRatio = 0.04
	BaseSpeedMaxRatio = 0.09

	// BaseRotationSpeedMax in radians per second
	BaseRotationSpeedMax = 1.2

	// BounceFlipChance is the probability a boundary contact reverses spin
	BounceFlipChance = 0.5
)

// Per-shape timers, frame-counted
const (
	ShapeTimerMinFrames = 90
	ShapeTimerMaxFrames = 180

	// ShapeTimerChaosShorten is the max fraction of the interval removed at |chaos| = 1
	ShapeTimerChaosShorten = 0.5

	// HeadingJitter is the max heading perturbation in radians
	HeadingJitter = 0.35
)

// Depth easing
const (
	DepthEaseRate = 0.02
	DepthSnap     = 0.5
)

// Soft collision
const (
	// CollisionDepthThreshold is the max depth difference for two shapes to interact
	CollisionDepthThreshold = 15.0

	// CorrectionRate is the fraction of remaining correction applied per tick
	CorrectionRate = 0.25

	// CorrectionEpsilon snaps tiny residual corrections to zero
	CorrectionEpsilon = 0.05

	// CollisionImmunityFrames prevents re-swapping a pair while still overlapping
	CollisionImmunityFrames = 6

	// CollisionFlipChance is the probability each shape reverses spin on contact
	CollisionFlipChance = 0.5
)

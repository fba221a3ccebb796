package parameter

// Perspective blend cycle
const (
	// BlendSpeed is the per-frame step of Blend toward Target
	BlendSpeed = 0.008

	// BlendHoldMinFrames/MaxFrames bound the randomized dwell at each stage
	BlendHoldMinFrames = 240
	BlendHoldMaxFrames = 540

	// ViewRotationSpeed in radians per frame
	ViewRotationSpeed = 0.0025

	// FisheyeStrength in (0, 1], 1 maps distance to sqrt
	FisheyeStrength = 0.6

	// GlobeRadiusRatio is the globe radius as fraction of half min(width, height)
	GlobeRadiusRatio = 1.0

	// GlobeDeadzone is the inner fraction of the globe radius that recedes
	GlobeDeadzone = 0.35
)

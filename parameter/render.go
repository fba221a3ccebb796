package parameter

// Depth mapping
const (
	DepthScaleNear   = 1.4
	DepthScaleFar    = 0.6
	DepthOpacityNear = 1.0
	DepthOpacityFar  = 0.45
)

// Light
const (
	// LightNeutralOpacity is the constant factor when light intensity is zero
	LightNeutralOpacity = 0.85

	// LightDarkenDepth is the max darkening at the light point in inverted mode
	LightDarkenDepth = 0.7

	// LightRadiusRatio is the light falloff radius as fraction of min(width, height)
	LightRadiusRatio = 0.45

	// LightOrbitSpeed in radians per frame
	LightOrbitSpeed = 0.006
)

// Tessellation
const (
	// TessellateThreshold is the |blend| above which outlines are tessellated
	TessellateThreshold = 0.02

	TessellateMinSegments = 24
	TessellateMaxSegments = 96

	// TessellateSegmentLength is the target on-screen segment length in pixels
	TessellateSegmentLength = 4.0

	// EdgeSubdivisions splits each polygon edge for per-vertex projection
	EdgeSubdivisions = 8
)

// Strokes
const (
	OutlineWidth      = 2.0
	DashLength        = 6.0
	DoubleBorderInset = 4.0
	PipRadiusRatio    = 0.12
)

// Hit testing bounding-radius factors per shape kind
const (
	HitFactorCircle   = 1.0
	HitFactorSquare   = 1.15
	HitFactorTriangle = 0.9
	HitFactorStar     = 0.85
)

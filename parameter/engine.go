package parameter

import "time"

// Loop & Engine Timing
const (
	// FrameInterval is the nominal frame interval (~60 FPS)
	FrameInterval = time.Second / 60

	// LowPowerFrameInterval is the frame interval on constrained devices (~30 FPS)
	LowPowerFrameInterval = time.Second / 30

	// InputQueueSize is the capacity of the pending pointer queue, overflow is dropped
	InputQueueSize = 32

	// DefaultPixelRatio is the logical-to-surface pixel ratio when none is supplied
	DefaultPixelRatio = 1.0
)

// Verification timing
const (
	// FailureCooldown is the non-interactive window after a hard failure
	FailureCooldown = 5 * time.Second

	// SuccessHold is how long a solved puzzle stays on screen before the engine idles
	SuccessHold = 1500 * time.Millisecond
)

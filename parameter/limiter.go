package parameter

import "time"

// Abuse limiter tiers
const (
	PenaltyFloor   = 2
	PenaltyCeiling = 60

	PenaltyRapid  = 15 // elapsed < RapidWindow
	PenaltyQuick  = 8  // elapsed < QuickWindow
	PenaltySlow   = 3  // elapsed < SlowWindow
	PenaltyRelief = 5  // elapsed >= SlowWindow, only when a penalty is active

	RapidWindow = 2 * time.Second
	QuickWindow = 5 * time.Second
	SlowWindow  = 10 * time.Second

	// AttemptHistory bounds the recent attempt log
	AttemptHistory = 10

	// LockoutTTL is how long a persisted token stays valid
	LockoutTTL = time.Hour
)

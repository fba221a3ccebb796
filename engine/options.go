package engine

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/warpcheck/limiter"
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/status"
)

// Option configures an Engine
type Option func(*options)

type options struct {
	logger     *slog.Logger
	clock      Clock
	seed       uint64
	lowPower   bool
	pixelRatio float64
	store      limiter.Store
	crash      CrashHandler
	metrics    *status.Registry
	cooldown   time.Duration
	hold       time.Duration
}

func defaultOptions() options {
	return options{
		clock:      SystemClock,
		pixelRatio: parameter.DefaultPixelRatio,
		crash:      DefaultCrashHandler,
		cooldown:   parameter.FailureCooldown,
		hold:       parameter.SuccessHold,
	}
}

// WithLogger sets the engine logger, the default discards output
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces the wall clock, tests pass a ManualClock
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithSeed fixes the random seed for reproducible layouts
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLowPower halves the frame rate for constrained devices
func WithLowPower(on bool) Option {
	return func(o *options) { o.lowPower = on }
}

// WithPixelRatio sets the logical-to-surface pixel ratio applied to pointer input
func WithPixelRatio(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.pixelRatio = r
		}
	}
}

// WithStore persists the lockout token, the default keeps it in memory
func WithStore(s limiter.Store) Option {
	return func(o *options) { o.store = s }
}

// WithCrashHandler replaces the engine goroutine panic handler
func WithCrashHandler(h CrashHandler) Option {
	return func(o *options) {
		if h != nil {
			o.crash = h
		}
	}
}

// WithMetrics publishes engine metrics into a shared registry
func WithMetrics(r *status.Registry) Option {
	return func(o *options) { o.metrics = r }
}

// WithTimings overrides the failure cool-down and the success hold
func WithTimings(cooldown, hold time.Duration) Option {
	return func(o *options) {
		if cooldown > 0 {
			o.cooldown = cooldown
		}
		if hold > 0 {
			o.hold = hold
		}
	}
}

// Package engine runs one interactive verification widget: it owns the shape
// field, the projector, the compositor, the verifier and the abuse limiter and
// advances them on a single logical thread
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/layout"
	"github.com/lixenwraith/warpcheck/limiter"
	"github.com/lixenwraith/warpcheck/logging"
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/perspective"
	"github.com/lixenwraith/warpcheck/physics"
	"github.com/lixenwraith/warpcheck/render"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/sim"
	"github.com/lixenwraith/warpcheck/status"
	"github.com/lixenwraith/warpcheck/vmath"
)

// frameAlpha weights each new frame time in the published moving average
const frameAlpha = 0.1

// Engine is one widget instance
// Every public method and Step serialize on one mutex, so state is never observed mid-update
type Engine struct {
	mu sync.Mutex

	opts     options
	log      *slog.Logger
	clock    Clock
	rng      *vmath.FastRand
	interval time.Duration

	surface    render.Surface
	compositor *render.Compositor
	persp      *perspective.State
	light      *render.Light
	simCtx     *sim.Context
	resolver   *physics.Resolver
	verifier   *challenge.Verifier
	limiter    *limiter.Limiter
	timers     timerQueue

	shapes      []*shape.Shape
	instruction string
	frame       uint64

	input         []vmath.Vec
	cooldownUntil time.Time
	lockTotal     time.Duration
	pendingTimer  timerID
	last          *challenge.Verdict

	listeners []func(challenge.Verdict)
	outbox    []challenge.Verdict

	// Loop control, separate from mu so Stop can wait for an in-flight Step
	runMu  sync.Mutex
	cancel func()
	done   chan struct{}

	metrics *status.Registry
	stats   engineStats
}

// engineStats caches resolved metrics
type engineStats struct {
	ticks      *status.Counter
	skipped    *status.Counter
	clicks     *status.Counter
	dropped    *status.Counter
	missed     *status.Counter
	rounds     *status.Counter
	passed     *status.Counter
	failed     *status.Counter
	blocked    *status.Counter
	collisions *status.Counter
	penalty    *status.Level
	frameMs    *status.Gauge
	blend      *status.Gauge
	locked     *status.Flag
	kind       *status.Label
	state      *status.Label
}

func newStats(r *status.Registry) engineStats {
	return engineStats{
		ticks:      r.Counter(status.Ticks),
		skipped:    r.Counter(status.TicksSkipped),
		clicks:     r.Counter(status.Clicks),
		dropped:    r.Counter(status.ClicksDropped),
		missed:     r.Counter(status.ClicksMissed),
		rounds:     r.Counter(status.Rounds),
		passed:     r.Counter(status.Passed),
		failed:     r.Counter(status.Failed),
		blocked:    r.Counter(status.Blocked),
		collisions: r.Counter(status.Collisions),
		penalty:    r.Level(status.Penalty),
		frameMs:    r.Gauge(status.FrameTime),
		blend:      r.Gauge(status.Blend),
		locked:     r.Flag(status.Locked),
		kind:       r.Label(status.ChallengeType),
		state:      r.Label(status.VerifierState),
	}
}

// New creates an engine drawing onto surface
func New(surface render.Surface, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if surface == nil || surface.Width() <= 0 || surface.Height() <= 0 {
		return nil, fmt.Errorf("new engine: %w", ErrSurfaceUnavailable)
	}

	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.seed == 0 {
		o.seed = uint64(o.clock.Now().UnixNano())
	}
	if o.metrics == nil {
		o.metrics = status.NewRegistry()
	}

	interval := parameter.FrameInterval
	if o.lowPower {
		interval = parameter.LowPowerFrameInterval
	}

	w, h := float64(surface.Width()), float64(surface.Height())
	rng := vmath.NewFastRand(o.seed)
	e := &Engine{
		opts:       o,
		log:        o.logger.With("component", "engine"),
		clock:      o.clock,
		rng:        rng,
		interval:   interval,
		surface:    surface,
		compositor: render.NewCompositor(surface),
		persp:      perspective.NewState(w, h, rng),
		light:      render.NewLight(w, h),
		simCtx:     sim.NewContext(w, h, challenge.Traits{}, interval.Seconds(), rng),
		resolver:   physics.NewResolver(rng),
		verifier:   challenge.NewVerifier(),
		limiter:    limiter.New(o.store, o.logger.With("component", "limiter")),
		input:      make([]vmath.Vec, 0, parameter.InputQueueSize),
		metrics:    o.metrics,
		stats:      newStats(o.metrics),
	}
	e.verifier.OnTransition = func(from, to challenge.State) {
		e.stats.state.Set(to.String())
		e.log.Debug("verifier transition", "from", from, "to", to)
	}
	e.limiter.Restore(e.clock.Now())
	e.stats.penalty.Set(int64(e.limiter.State().Penalty))
	return e, nil
}

// Metrics returns the registry the engine publishes into
func (e *Engine) Metrics() *status.Registry {
	return e.metrics
}

// OnVerdict registers a callback for terminal verdicts, invoked outside the engine lock
func (e *Engine) OnVerdict(fn func(challenge.Verdict)) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// Present starts a round of challenge type t with caller-supplied instruction text
func (e *Engine) Present(t challenge.Type, instruction string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.surfaceReady() {
		return fmt.Errorf("present: %w", ErrSurfaceUnavailable)
	}
	if e.verifier.State() == challenge.StateEvaluating {
		return fmt.Errorf("present: %w", ErrBusy)
	}
	// Replacing a live round is held to the same lock and cool-down as Regenerate
	if e.verifier.Session().Type.Valid() {
		now := e.clock.Now()
		if now.Before(e.cooldownUntil) || e.limiter.Check(now).Locked() {
			e.stats.blocked.Inc()
			return fmt.Errorf("present: %w", ErrLocked)
		}
	}
	e.instruction = instruction
	return e.generate(t)
}

// Regenerate replaces the current round with a fresh layout of the same type.
// The request is charged to the abuse limiter; inside an active lock nothing
// changes and ErrLocked is returned with the decision.
func (e *Engine) Regenerate() (limiter.Decision, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.verifier.Session()
	if !sess.Type.Valid() {
		return limiter.Decision{}, fmt.Errorf("regenerate: %w", ErrNoChallenge)
	}
	if e.verifier.State() == challenge.StateEvaluating {
		return limiter.Decision{}, fmt.Errorf("regenerate: %w", ErrBusy)
	}

	now := e.clock.Now()
	d := e.limiter.Request(now)
	e.stats.penalty.Set(int64(d.Penalty))
	if !d.Allowed {
		e.stats.blocked.Inc()
		e.log.Debug("regenerate blocked", "penalty", d.Penalty, "remaining", d.Remaining)
		return d, fmt.Errorf("regenerate: %w", ErrLocked)
	}
	if d.Locked() {
		e.lockTotal = d.Remaining
	}
	return d, e.generate(sess.Type)
}

// Submit forces evaluation of the current click log
func (e *Engine) Submit() (challenge.Verdict, error) {
	e.mu.Lock()
	v, err := e.verifier.Submit()
	if err == nil {
		e.conclude(v)
	}
	e.mu.Unlock()

	e.deliver()
	return v, err
}

// Pointer enqueues a pointer press at logical coordinates, returns false if dropped
func (e *Engine) Pointer(x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lockedAt(e.clock.Now()) || len(e.input) >= parameter.InputQueueSize {
		e.stats.dropped.Inc()
		return false
	}
	r := e.opts.pixelRatio
	e.input = append(e.input, vmath.V(x*r, y*r))
	return true
}

// Locked reports whether input is currently refused
func (e *Engine) Locked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lockedAt(e.clock.Now())
}

// Step advances one frame: timers, evaluation, input, perspective, simulation, collision, render
func (e *Engine) Step() {
	e.mu.Lock()
	started := time.Now()
	e.step()
	e.stats.frameMs.Observe(float64(time.Since(started).Microseconds())/1000, frameAlpha)
	e.mu.Unlock()

	e.deliver()
}

func (e *Engine) step() {
	now := e.clock.Now()
	e.frame++
	e.stats.ticks.Inc()

	e.timers.Fire(now)

	// Completed logs are evaluated on the tick after the completing click
	if e.verifier.State() == challenge.StateEvaluating {
		if v, err := e.verifier.Evaluate(); err == nil {
			e.conclude(v)
		}
	}

	e.drainInput(now)

	e.persp.Advance(e.rng)
	e.light.Advance()
	sim.Step(e.shapes, e.simCtx)
	if contacts := e.resolver.Resolve(e.shapes); len(contacts) > 0 {
		e.stats.collisions.Add(int64(len(contacts)))
	}

	if err := e.compositor.Render(e.shapes, e.projector(), e.light, e.overlay(now)); err != nil {
		e.log.Warn("render failed", "frame", e.frame, "error", err)
	}

	e.stats.blend.Set(e.persp.Blend)
	e.stats.locked.Set(e.lockedAt(now))
}

// drainInput hit-tests queued presses against the current frame
func (e *Engine) drainInput(now time.Time) {
	input := e.input
	e.input = e.input[:0]

	pr := e.projector()
	for _, p := range input {
		if e.lockedAt(now) {
			e.stats.dropped.Inc()
			continue
		}
		hit := render.Pick(p, e.shapes, pr)
		if hit == nil {
			e.stats.missed.Inc()
			continue
		}

		rec := challenge.Snapshot(hit, p[0], p[1], e.frame)
		res := e.verifier.Click(rec)
		e.log.Debug("click", "shape", hit.ID, "result", res, "x", p[0], "y", p[1])
		switch res {
		case challenge.ClickAccepted, challenge.ClickComplete:
			e.stats.clicks.Inc()
			hit.MarkClicked(len(e.verifier.Log()))
		case challenge.ClickRejected:
			e.stats.clicks.Inc()
			hit.MarkClicked(len(e.verifier.Log()))
			e.conclude(e.verifier.Verdict())
		}
	}
}

// conclude applies the consequences of a terminal verdict
func (e *Engine) conclude(v challenge.Verdict) {
	now := e.clock.Now()
	e.last = &v
	e.outbox = append(e.outbox, v)
	e.timers.Cancel(e.pendingTimer)

	if v.Passed() {
		e.stats.passed.Inc()
		e.limiter.Reset()
		e.stats.penalty.Set(0)
		e.pendingTimer = e.timers.After(now, e.opts.hold, e.idle)
		e.log.Info("challenge passed", "type", v.Type, "clicks", len(v.Log))
		return
	}

	e.stats.failed.Inc()
	d := e.limiter.Request(now)
	e.stats.penalty.Set(int64(d.Penalty))
	e.cooldownUntil = now.Add(e.opts.cooldown)
	e.lockTotal = max(e.opts.cooldown, d.Remaining)
	e.pendingTimer = e.timers.After(now, e.opts.cooldown, e.regenerateAfterFailure)
	e.log.Info("challenge failed", "type", v.Type, "reason", v.Reason, "penalty", d.Penalty)
}

// idle returns a solved round to Idle after the success hold
func (e *Engine) idle() {
	if err := e.verifier.Reset(); err != nil {
		e.log.Warn("reset after success failed", "error", err)
	}
}

// regenerateAfterFailure replaces a failed round once the cool-down expires
func (e *Engine) regenerateAfterFailure() {
	t := e.verifier.Session().Type
	if err := e.generate(t); err != nil {
		e.log.Warn("regenerate after failure", "type", t, "error", err)
	}
}

// resumeTimers re-arms the pending terminal-state timer after a Stop
func (e *Engine) resumeTimers() {
	if e.timers.Len() > 0 {
		return
	}
	now := e.clock.Now()
	switch e.verifier.State() {
	case challenge.StateSucceeded:
		e.pendingTimer = e.timers.After(now, 0, e.idle)
	case challenge.StateFailed:
		wait := e.cooldownUntil.Sub(now)
		e.pendingTimer = e.timers.After(now, max(wait, 0), e.regenerateAfterFailure)
	}
}

// generate lays out a new round and presents it
func (e *Engine) generate(t challenge.Type) error {
	w, h := e.compositor.Size()
	l, err := layout.Generate(t, shape.Bounds{Width: w, Height: h}, e.rng)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := e.verifier.Reset(); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	l.Session.Instruction = l.Session.Expand(e.instruction)
	if err := e.verifier.Present(l.Session); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	e.timers.Cancel(e.pendingTimer)
	e.shapes = l.Shapes
	e.input = e.input[:0]
	e.simCtx.Traits = t.Traits()
	e.stats.rounds.Inc()
	e.stats.kind.Set(t.String())
	e.log.Debug("round presented", "type", t, "shapes", len(l.Shapes), "required", l.Session.Required)
	return nil
}

// Resize adapts the engine to new surface dimensions, shapes keep their relative positions
func (e *Engine) Resize(width, height int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize %dx%d: %w", width, height, ErrSurfaceUnavailable)
	}
	ow, oh := e.compositor.Size()
	if err := e.compositor.Resize(width, height); err != nil {
		return fmt.Errorf("resize: %w", err)
	}

	w, h := float64(width), float64(height)
	sx, sy := w/ow, h/oh
	for _, s := range e.shapes {
		s.Scale(sx, sy)
		physics.ReflectBounds(s, w, h)
	}
	e.persp.Fit(w, h)
	e.light.Fit(w, h)
	e.simCtx.Resize(w, h)
	e.log.Debug("resized", "width", width, "height", height)
	return nil
}

// deliver runs verdict callbacks outside the engine lock
func (e *Engine) deliver() {
	e.mu.Lock()
	out := e.outbox
	e.outbox = nil
	listeners := make([]func(challenge.Verdict), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, v := range out {
		for _, fn := range listeners {
			fn(v)
		}
	}
}

func (e *Engine) surfaceReady() bool {
	return e.surface.Width() > 0 && e.surface.Height() > 0
}

func (e *Engine) projector() perspective.Projector {
	w, h := e.compositor.Size()
	return perspective.Projector{Center: vmath.V(w/2, h/2), State: e.persp}
}

// lockedAt combines evaluation, cool-down and lockout into the single input gate
func (e *Engine) lockedAt(now time.Time) bool {
	if !e.verifier.AcceptsInput() {
		return true
	}
	if now.Before(e.cooldownUntil) {
		return true
	}
	return e.limiter.Check(now).Locked()
}

func (e *Engine) overlay(now time.Time) render.Overlay {
	rem := e.cooldownUntil.Sub(now)
	if lock := e.limiter.Check(now).Remaining; lock > rem {
		rem = lock
	}
	if rem <= 0 {
		return render.Overlay{}
	}
	total := e.lockTotal
	if total < rem {
		total = rem
	}
	return render.Overlay{Locked: true, Remaining: rem, Total: total}
}

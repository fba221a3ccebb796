package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/perspective"
	"github.com/lixenwraith/warpcheck/render"
	"github.com/lixenwraith/warpcheck/shape"
	"github.com/lixenwraith/warpcheck/status"
	"github.com/lixenwraith/warpcheck/vmath"
)

// nullSurface discards drawing, dimensions are adjustable
type nullSurface struct {
	mu   sync.Mutex
	w, h int
}

func (n *nullSurface) Width() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.w
}

func (n *nullSurface) Height() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.h
}

func (n *nullSurface) Resize(w, h int) error {
	n.mu.Lock()
	n.w, n.h = w, h
	n.mu.Unlock()
	return nil
}

func (n *nullSurface) ClearWithColor(gg.RGBA) {}
func (n *nullSurface) SetRGBA(_, _, _, _ float64) {}
func (n *nullSurface) SetLineWidth(float64) {}
func (n *nullSurface) SetDash(...float64) {}
func (n *nullSurface) ClearDash() {}
func (n *nullSurface) MoveTo(float64, float64) {}
func (n *nullSurface) LineTo(float64, float64) {}
func (n *nullSurface) ClosePath() {}
func (n *nullSurface) DrawCircle(float64, float64, float64) {}
func (n *nullSurface) Fill() error { return nil }
func (n *nullSurface) Stroke() error { return nil }

var start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	e        *Engine
	clock    *ManualClock
	mu       sync.Mutex
	verdicts []challenge.Verdict
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{clock: NewManualClock(start)}
	opts = append([]Option{WithClock(h.clock), WithSeed(42)}, opts...)
	e, err := New(&nullSurface{w: 320, h: 240}, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e.OnVerdict(func(v challenge.Verdict) {
		// Re-entering the engine proves callbacks run outside the lock
		_ = e.Status()
		h.mu.Lock()
		h.verdicts = append(h.verdicts, v)
		h.mu.Unlock()
	})
	h.e = e
	return h
}

// present starts a round and lays its shapes on a still, non-overlapping grid
func (h *harness) present(t *testing.T, typ challenge.Type) {
	t.Helper()
	if err := h.e.Present(typ, "instruction for "+typ.String()); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	h.arrange()
}

func (h *harness) arrange() {
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	h.e.persp.Pin(perspective.Planar)
	for i, s := range h.e.shapes {
		s.Pos = vmath.V(40+float64(i%5)*60, 40+float64(i/5)*60)
		s.Velocity, s.BaseVelocity = vmath.Vec{}, vmath.Vec{}
		s.Radius = 15
		s.SetDepth(50)
		s.SetDepthTarget(50)
		s.TimerFrames = 1 << 30
	}
}

// find returns the first shape matching pred
func (h *harness) find(t *testing.T, pred func(s shape.Shape) bool) shape.Shape {
	t.Helper()
	for _, s := range h.e.Shapes() {
		if pred(s) {
			return s
		}
	}
	t.Fatal("Expected a matching shape")
	return shape.Shape{}
}

func (h *harness) click(t *testing.T, id int) bool {
	t.Helper()
	x, y, ok := h.e.Target(id)
	if !ok {
		t.Fatalf("Expected shape %d on the surface", id)
	}
	return h.e.Pointer(x, y)
}

func (h *harness) got() []challenge.Verdict {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]challenge.Verdict(nil), h.verdicts...)
}

// TestNewSurfaceUnavailable verifies zero-sized surfaces are refused
func TestNewSurfaceUnavailable(t *testing.T) {
	if _, err := New(&nullSurface{}); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("Expected ErrSurfaceUnavailable, got %v", err)
	}
	if _, err := New(nil); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("Expected ErrSurfaceUnavailable for nil surface, got %v", err)
	}
}

// TestSolveRound verifies a correct round succeeds on the tick after completion and then idles
func TestSolveRound(t *testing.T) {
	h := newHarness(t, WithPixelRatio(2))
	h.present(t, challenge.DashedOnly)

	var dashed []int
	for _, s := range h.e.Shapes() {
		if s.Dashed {
			dashed = append(dashed, s.ID)
		}
	}
	if len(dashed) != 3 {
		t.Fatalf("Expected 3 dashed shapes, got %d", len(dashed))
	}

	for _, id := range dashed {
		if !h.click(t, id) {
			t.Fatalf("Expected click on shape %d accepted", id)
		}
		h.e.Step()
	}

	if st := h.e.Status(); st.State != challenge.StateEvaluating || !st.Locked {
		t.Fatalf("Expected locked evaluating state, got %s locked=%v", st.State, st.Locked)
	}
	if h.click(t, dashed[0]) {
		t.Error("Expected input dropped while evaluating")
	}

	h.e.Step()
	vs := h.got()
	if len(vs) != 1 || !vs[0].Passed() {
		t.Fatalf("Expected one passing verdict, got %+v", vs)
	}
	if len(vs[0].Log) != 3 {
		t.Errorf("Expected 3 logged clicks, got %d", len(vs[0].Log))
	}
	if st := h.e.Status(); st.State != challenge.StateSucceeded || st.Verdict == nil || st.Instruction != "instruction for dashed-only" {
		t.Errorf("Expected succeeded status with verdict, got %+v", st)
	}

	h.clock.Advance(1600 * time.Millisecond)
	h.e.Step()
	if st := h.e.Status(); st.State != challenge.StateIdle {
		t.Errorf("Expected idle after success hold, got %s", st.State)
	}
}

// TestHardFailureCooldown verifies a forbidden click fails at once, locks input, then regenerates
func TestHardFailureCooldown(t *testing.T) {
	h := newHarness(t)
	h.present(t, challenge.AvoidColor)

	bad := h.find(t, func(s shape.Shape) bool { return s.Dangerous })
	if !h.click(t, bad.ID) {
		t.Fatal("Expected click accepted")
	}
	h.e.Step()

	vs := h.got()
	if len(vs) != 1 || vs[0].Outcome != challenge.OutcomeFailure || vs[0].Reason != challenge.ReasonForbiddenMember {
		t.Fatalf("Expected forbidden-member failure, got %+v", vs)
	}

	st := h.e.Status()
	if !st.Locked || st.LockRemaining <= 0 {
		t.Fatalf("Expected cool-down lock, got %+v", st)
	}
	safe := h.find(t, func(s shape.Shape) bool { return !s.Dangerous })
	if h.click(t, safe.ID) {
		t.Error("Expected input dropped during cool-down")
	}

	h.clock.Advance(4 * time.Second)
	h.e.Step()
	if st := h.e.Status(); st.State != challenge.StateFailed {
		t.Errorf("Expected still failed before cool-down ends, got %s", st.State)
	}

	h.clock.Advance(1100 * time.Millisecond)
	h.e.Step()
	st = h.e.Status()
	if st.State != challenge.StatePresented || st.Locked {
		t.Errorf("Expected fresh unlocked round, got %s locked=%v", st.State, st.Locked)
	}
	if st.Type != challenge.AvoidColor || st.Clicks != 0 {
		t.Errorf("Expected new avoid-color round without clicks, got %s with %d", st.Type, st.Clicks)
	}
}

// TestRegenerateEscalates verifies rapid regenerate requests escalate into a lockout
func TestRegenerateEscalates(t *testing.T) {
	h := newHarness(t)
	if _, err := h.e.Regenerate(); !errors.Is(err, ErrNoChallenge) {
		t.Errorf("Expected ErrNoChallenge before Present, got %v", err)
	}
	h.present(t, challenge.ColorMatch)

	d, err := h.e.Regenerate()
	if err != nil || d.Penalty != 0 {
		t.Fatalf("Expected free first regenerate, got %+v %v", d, err)
	}
	h.clock.Advance(time.Second)
	d, err = h.e.Regenerate()
	if err != nil || d.Penalty != 15 {
		t.Fatalf("Expected allowed regenerate with penalty 15, got %+v %v", d, err)
	}
	if !h.e.Locked() {
		t.Error("Expected surface locked by penalty")
	}

	h.clock.Advance(time.Second)
	d, err = h.e.Regenerate()
	if !errors.Is(err, ErrLocked) || d.Allowed || d.Penalty != 23 {
		t.Errorf("Expected blocked regenerate with penalty 23, got %+v %v", d, err)
	}
	if st := h.e.Status(); st.Penalty != 23 || st.LockRemaining != 23*time.Second {
		t.Errorf("Expected 23s lock, got penalty %d remaining %v", st.Penalty, st.LockRemaining)
	}

	h.clock.Advance(24 * time.Second)
	if h.e.Locked() {
		t.Error("Expected lock to expire")
	}
}

// TestPresentRefusedWhileLocked verifies a new round cannot replace a locked one
func TestPresentRefusedWhileLocked(t *testing.T) {
	h := newHarness(t)
	h.present(t, challenge.ColorMatch)

	if _, err := h.e.Regenerate(); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	h.clock.Advance(time.Second)
	if d, err := h.e.Regenerate(); err != nil || d.Penalty != 15 {
		t.Fatalf("Expected locking regenerate with penalty 15, got %+v %v", d, err)
	}
	h.arrange()

	layoutOf := func() map[int]vmath.Vec {
		out := make(map[int]vmath.Vec)
		for _, s := range h.e.Shapes() {
			out[s.ID] = s.Pos
		}
		return out
	}
	before := layoutOf()
	rounds := h.e.Metrics().Counter(status.Rounds).Load()
	blocked := h.e.Metrics().Counter(status.Blocked).Load()

	if err := h.e.Present(challenge.AvoidShape, "skip ahead"); !errors.Is(err, ErrLocked) {
		t.Fatalf("Expected ErrLocked, got %v", err)
	}
	if diff := cmp.Diff(before, layoutOf()); diff != "" {
		t.Errorf("Layout changed while locked (-want +got):\n%s", diff)
	}
	st := h.e.Status()
	if st.Type != challenge.ColorMatch || st.Penalty != 15 {
		t.Errorf("Expected color-match round with penalty 15, got %s with %d", st.Type, st.Penalty)
	}
	if got := h.e.Metrics().Counter(status.Rounds).Load(); got != rounds {
		t.Errorf("Expected %d rounds, got %d", rounds, got)
	}
	if got := h.e.Metrics().Counter(status.Blocked).Load(); got != blocked+1 {
		t.Errorf("Expected %d blocked, got %d", blocked+1, got)
	}

	h.clock.Advance(16 * time.Second)
	if err := h.e.Present(challenge.AvoidShape, "after lock"); err != nil {
		t.Fatalf("Expected Present after lock expiry, got %v", err)
	}
	if st := h.e.Status(); st.Type != challenge.AvoidShape {
		t.Errorf("Expected avoid-shape round, got %s", st.Type)
	}
}

// TestPresentRefusedDuringCooldown verifies the failure cool-down also holds Present
func TestPresentRefusedDuringCooldown(t *testing.T) {
	h := newHarness(t)
	h.present(t, challenge.AvoidColor)

	bad := h.find(t, func(s shape.Shape) bool { return s.Dangerous })
	if !h.click(t, bad.ID) {
		t.Fatal("Expected click accepted")
	}
	h.e.Step()

	if err := h.e.Present(challenge.ColorMatch, ""); !errors.Is(err, ErrLocked) {
		t.Errorf("Expected ErrLocked during cool-down, got %v", err)
	}
	if st := h.e.Status(); st.Type != challenge.AvoidColor || st.State != challenge.StateFailed {
		t.Errorf("Expected failed avoid-color round, got %s %s", st.Type, st.State)
	}
}

// TestSubmitIncomplete verifies forced evaluation reports an incomplete log
func TestSubmitIncomplete(t *testing.T) {
	h := newHarness(t)
	if _, err := h.e.Submit(); err == nil {
		t.Error("Expected Submit without a round to fail")
	}
	h.present(t, challenge.ColorMatch)

	target := h.find(t, func(s shape.Shape) bool { return s.Target })
	h.click(t, target.ID)
	h.e.Step()

	v, err := h.e.Submit()
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if v.Reason != challenge.ReasonIncomplete {
		t.Errorf("Expected incomplete, got %s", v.Reason)
	}
	if vs := h.got(); len(vs) != 1 {
		t.Errorf("Expected submit verdict delivered, got %d", len(vs))
	}
}

// TestMissAndDuplicate verifies empty space and repeated clicks leave the log unchanged
func TestMissAndDuplicate(t *testing.T) {
	h := newHarness(t)
	h.present(t, challenge.ColorMatch)

	h.e.Pointer(315, 235)
	h.e.Step()
	if st := h.e.Status(); st.Clicks != 0 {
		t.Errorf("Expected miss to be ignored, got %d clicks", st.Clicks)
	}

	target := h.find(t, func(s shape.Shape) bool { return s.Target })
	h.click(t, target.ID)
	h.click(t, target.ID)
	h.e.Step()
	if st := h.e.Status(); st.Clicks != 1 {
		t.Errorf("Expected duplicate ignored, got %d clicks", st.Clicks)
	}
	if got := h.e.Metrics().Counter(status.ClicksMissed).Load(); got != 1 {
		t.Errorf("Expected 1 missed click, got %d", got)
	}
}

// TestResize verifies shapes rescale with the surface and bad sizes are refused
func TestResize(t *testing.T) {
	h := newHarness(t)
	h.present(t, challenge.ShapeMatch)
	before := h.e.Shapes()

	if err := h.e.Resize(640, 480); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	for i, s := range h.e.Shapes() {
		want := vmath.V(before[i].Pos[0]*2, before[i].Pos[1]*2)
		if vmath.Distance(s.Pos, want) > 1e-9 {
			t.Errorf("Expected shape %d at %v, got %v", s.ID, want, s.Pos)
		}
		if s.Radius != before[i].Radius*2 {
			t.Errorf("Expected radius %f, got %f", before[i].Radius*2, s.Radius)
		}
	}

	if err := h.e.Resize(0, 100); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("Expected ErrSurfaceUnavailable, got %v", err)
	}

	if err := h.e.Resize(100, 80); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	for _, s := range h.e.Shapes() {
		if s.Pos[0] < 0 || s.Pos[0] > 100 || s.Pos[1] < 0 || s.Pos[1] > 80 {
			t.Errorf("Expected shape %d inside 100x80, got %v", s.ID, s.Pos)
		}
	}
}

// TestStartStopIdempotent verifies at most one loop runs and the engine restarts cleanly
func TestStartStopIdempotent(t *testing.T) {
	surf := &nullSurface{w: 200, h: 150}
	e, err := New(surf, WithSeed(7), WithLowPower(true))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := e.Present(challenge.RainbowOrder, ""); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	ctx := context.Background()
	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	first := loopDone(e)
	if err := e.Start(ctx); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if loopDone(e) != first {
		t.Error("Expected second Start to reuse the running loop")
	}

	waitFrames(t, e, 3)
	e.Stop()
	e.Stop()
	if e.Running() {
		t.Error("Expected loop stopped")
	}

	frame := e.Status().Frame
	time.Sleep(100 * time.Millisecond)
	if got := e.Status().Frame; got != frame {
		t.Errorf("Expected no frames after Stop, got %d → %d", frame, got)
	}

	if err := e.Start(ctx); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	waitFrames(t, e, frame+3)
	e.Stop()

	surf.Resize(0, 0)
	if err := e.Start(ctx); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("Expected ErrSurfaceUnavailable, got %v", err)
	}
	if e.Running() {
		t.Error("Expected loop refused to start")
	}
}

// TestStopCancelsTimers verifies Stop drops scheduled timers and Start re-arms the pending one
func TestStopCancelsTimers(t *testing.T) {
	h := newHarness(t)
	h.present(t, challenge.AvoidShape)
	bad := h.find(t, func(s shape.Shape) bool { return s.Dangerous })
	h.click(t, bad.ID)
	h.e.Step()

	if n := h.e.timers.Len(); n != 1 {
		t.Fatalf("Expected 1 pending timer, got %d", n)
	}
	if err := h.e.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	h.e.Stop()
	if n := h.e.timers.Len(); n != 0 {
		t.Errorf("Expected timers cleared on Stop, got %d", n)
	}

	h.e.mu.Lock()
	h.e.resumeTimers()
	h.e.mu.Unlock()
	h.clock.Advance(6 * time.Second)
	h.e.Step()
	if st := h.e.Status(); st.State != challenge.StatePresented {
		t.Errorf("Expected regenerated round after resume, got %s", st.State)
	}
}

// TestTimerQueue verifies due callbacks fire in scheduling order and cancelled ones never fire
func TestTimerQueue(t *testing.T) {
	var q timerQueue
	var fired []int
	q.After(start, 2*time.Second, func() { fired = append(fired, 2) })
	q.After(start, time.Second, func() { fired = append(fired, 1) })
	id := q.After(start, time.Second, func() { fired = append(fired, 99) })
	q.After(start, 5*time.Second, func() { fired = append(fired, 5) })

	if !q.Cancel(id) {
		t.Error("Expected cancel of pending timer")
	}
	if n := q.Fire(start.Add(500 * time.Millisecond)); n != 0 {
		t.Errorf("Expected nothing due, got %d", n)
	}
	if n := q.Fire(start.Add(3 * time.Second)); n != 2 {
		t.Errorf("Expected 2 fired, got %d", n)
	}
	if len(fired) != 2 || fired[0] != 2 || fired[1] != 1 {
		t.Errorf("Expected [2 1], got %v", fired)
	}
	if q.Cancel(id) {
		t.Error("Expected second cancel to report false")
	}
	q.Clear()
	if q.Fire(start.Add(time.Hour)) != 0 {
		t.Error("Expected cleared queue to fire nothing")
	}
}

// TestRenderOnRaster verifies the engine drives a real gg surface
func TestRenderOnRaster(t *testing.T) {
	e, err := New(render.NewSurface(160, 120), WithSeed(3), WithClock(NewManualClock(start)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := e.Present(challenge.NumberedDots, ""); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	for i := 0; i < 30; i++ {
		e.Step()
	}
	if got := e.Metrics().Counter(status.Ticks).Load(); got != 30 {
		t.Errorf("Expected 30 ticks, got %d", got)
	}

	e.View(func(s render.Surface) {
		if s.Width() != 160 || s.Height() != 120 {
			t.Errorf("Expected 160x120 surface, got %dx%d", s.Width(), s.Height())
		}
	})
}

// TestInstructionExpanded verifies instruction placeholders are filled per round
func TestInstructionExpanded(t *testing.T) {
	h := newHarness(t)
	if err := h.e.Present(challenge.ColorMatch, "Click every {color} shape"); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	got := h.e.Status().Instruction
	if strings.Contains(got, "{color}") || !strings.HasPrefix(got, "Click every ") {
		t.Errorf("Expected expanded instruction, got %q", got)
	}
}

func waitFrames(t *testing.T, e *Engine, n uint64) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for e.Status().Frame < n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected at least %d frames, got %d", n, e.Status().Frame)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func loopDone(e *Engine) chan struct{} {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	return e.done
}

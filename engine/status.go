package engine

import (
	"time"

	"github.com/lixenwraith/warpcheck/challenge"
	"github.com/lixenwraith/warpcheck/render"
	"github.com/lixenwraith/warpcheck/shape"
)

// Status is a point-in-time view of the engine for callers
type Status struct {
	Frame         uint64
	Type          challenge.Type
	Instruction   string
	State         challenge.State
	Clicks        int
	Required      int
	Locked        bool
	LockRemaining time.Duration
	Penalty       int
	Blend         float64
	Verdict       *challenge.Verdict // Last terminal verdict, nil before the first
}

// Status returns the current engine status
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	sess := e.verifier.Session()
	st := Status{
		Frame:       e.frame,
		Type:        sess.Type,
		Instruction: sess.Instruction,
		State:       e.verifier.State(),
		Clicks:      len(e.verifier.Log()),
		Required:    sess.Required,
		Locked:      e.lockedAt(now),
		Penalty:     e.limiter.State().Penalty,
		Blend:       e.persp.Blend,
	}
	if ov := e.overlay(now); ov.Locked {
		st.LockRemaining = ov.Remaining
	}
	if e.last != nil {
		v := *e.last
		st.Verdict = &v
	}
	return st
}

// Shapes returns copies of the current shapes
func (e *Engine) Shapes() []shape.Shape {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]shape.Shape, len(e.shapes))
	for i, s := range e.shapes {
		out[i] = *s
	}
	return out
}

// Target returns the logical pointer coordinates of shape id on the current frame
func (e *Engine) Target(id int) (x, y float64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.shapes {
		if s.ID == id {
			pl := render.Place(s, e.projector())
			r := e.opts.pixelRatio
			return pl.Center[0] / r, pl.Center[1] / r, true
		}
	}
	return 0, 0, false
}

// View runs fn with the surface while holding the engine lock, no frame is drawn meanwhile
func (e *Engine) View(fn func(s render.Surface)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.surface)
}

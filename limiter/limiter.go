// Package limiter escalates a regenerate penalty on rapid repeats and persists
// it as an advisory lockout token
package limiter

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/warpcheck/logging"
	"github.com/lixenwraith/warpcheck/parameter"
	"github.com/lixenwraith/warpcheck/vmath"
)

// State is the lockout record
type State struct {
	Last    time.Time
	Penalty int         // Seconds, 0 = no penalty
	History []time.Time // Recent attempts, oldest first, bounded
}

// Decision is the outcome of one request
type Decision struct {
	Allowed   bool          // False when the request arrived inside an active lock
	Penalty   int           // Penalty after the request, seconds
	Remaining time.Duration // Lock time left after the request
}

// Locked reports whether the decision leaves an active lock
func (d Decision) Locked() bool {
	return d.Remaining > 0
}

// Limiter tracks regenerate requests; not safe for concurrent use
type Limiter struct {
	state State
	store Store
	rng   *vmath.FastRand
	log   *slog.Logger
}

// New creates a limiter persisting into store, nil store keeps state in memory only
func New(store Store, logger *slog.Logger) *Limiter {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Limiter{
		store: store,
		rng:   vmath.NewFastRand(uint64(time.Now().UnixNano())),
		log:   logger,
	}
}

// Restore loads persisted state; any failure means no lockout
func (l *Limiter) Restore(now time.Time) {
	l.state = State{}
	token, err := l.store.Load()
	if err != nil {
		l.log.Debug("lockout token load failed", "error", err)
		return
	}
	if token == "" {
		return
	}
	s := Decode(token, now)
	if s == nil {
		l.log.Debug("lockout token rejected")
		return
	}
	l.state = *s
	l.log.Debug("lockout restored", "penalty", s.Penalty, "remaining", l.remaining(now))
}

// Request records a regenerate attempt at now and escalates the penalty
func (l *Limiter) Request(now time.Time) Decision {
	allowed := l.remaining(now) == 0

	l.state.Penalty = next(l.state, now)
	l.state.Last = now
	l.state.History = append(l.state.History, now)
	if n := len(l.state.History); n > parameter.AttemptHistory {
		l.state.History = append(l.state.History[:0], l.state.History[n-parameter.AttemptHistory:]...)
	}
	l.persist()

	return Decision{Allowed: allowed, Penalty: l.state.Penalty, Remaining: l.remaining(now)}
}

// Check reports the current lock without recording an attempt
func (l *Limiter) Check(now time.Time) Decision {
	rem := l.remaining(now)
	return Decision{Allowed: rem == 0, Penalty: l.state.Penalty, Remaining: rem}
}

// Reset clears all state after a successful verification
func (l *Limiter) Reset() {
	l.state = State{}
	if err := l.store.Clear(); err != nil {
		l.log.Debug("lockout token clear failed", "error", err)
	}
}

// State returns a copy of the lockout record
func (l *Limiter) State() State {
	s := l.state
	s.History = append([]time.Time(nil), l.state.History...)
	return s
}

func (l *Limiter) remaining(now time.Time) time.Duration {
	if l.state.Penalty == 0 {
		return 0
	}
	rem := l.state.Last.Add(time.Duration(l.state.Penalty) * time.Second).Sub(now)
	if rem < 0 {
		return 0
	}
	return rem
}

func (l *Limiter) persist() {
	if err := l.store.Save(Encode(l.state, uint32(l.rng.Next()))); err != nil {
		l.log.Debug("lockout token save failed", "error", err)
	}
}

// next computes the penalty for a request at now.
// Relief needs a sustained pause since the previous attempt. Escalation tiers
// are measured from the previous attempt, except inside a rapid burst: when the
// previous attempt itself followed its predecessor within RapidWindow, elapsed
// spans both gaps. A steady cadence of one request per second climbs 0, 15, 23
// while a lone repeat after a slow gap still earns the rapid tier.
func next(s State, now time.Time) int {
	h := s.History
	if len(h) == 0 {
		return s.Penalty
	}

	prev := h[len(h)-1]
	if now.Sub(prev) >= parameter.SlowWindow {
		if s.Penalty == 0 {
			return 0
		}
		return max(s.Penalty-parameter.PenaltyRelief, parameter.PenaltyFloor)
	}

	anchor := prev
	if len(h) >= 2 && prev.Sub(h[len(h)-2]) < parameter.RapidWindow {
		anchor = h[len(h)-2]
	}

	var add int
	switch elapsed := now.Sub(anchor); {
	case elapsed < parameter.RapidWindow:
		add = parameter.PenaltyRapid
	case elapsed < parameter.QuickWindow:
		add = parameter.PenaltyQuick
	case elapsed < parameter.SlowWindow:
		add = parameter.PenaltySlow
	default:
		return s.Penalty
	}
	return min(max(s.Penalty+add, parameter.PenaltyFloor), parameter.PenaltyCeiling)
}

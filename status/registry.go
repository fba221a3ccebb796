// Package status is the engine metrics registry
package status

import (
	"fmt"
	"sort"
	"sync"
)

// Metric names published by the engine
const (
	Ticks         = "engine.ticks"
	TicksSkipped  = "engine.ticks_skipped"
	FrameTime     = "engine.frame_ms"
	Clicks        = "input.clicks"
	ClicksDropped = "input.dropped"
	ClicksMissed  = "input.missed"
	Rounds        = "challenge.rounds"
	Passed        = "challenge.passed"
	Failed        = "challenge.failed"
	ChallengeType = "challenge.type"
	VerifierState = "challenge.state"
	Penalty       = "limiter.penalty"
	Blocked       = "limiter.blocked"
	Locked        = "engine.locked"
	Blend         = "perspective.blend"
	Collisions    = "physics.collisions"
)

// Registry maps metric names to typed metrics
// Owners resolve each metric once and write it directly afterwards
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]Metric
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{metrics: make(map[string]Metric)}
}

// lookup returns the metric registered under name, creating it with mk on first use
// Reusing a name with a different metric type is a programming error and panics
func lookup[T Metric](r *Registry, name string, mk func() T) T {
	r.mu.RLock()
	m, ok := r.metrics[name]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		if m, ok = r.metrics[name]; !ok {
			m = mk()
			r.metrics[name] = m
		}
		r.mu.Unlock()
	}
	typed, ok := m.(T)
	if !ok {
		panic(fmt.Sprintf("status: metric %q registered as %T", name, m))
	}
	return typed
}

// Counter returns the named counter, registering it on first use
func (r *Registry) Counter(name string) *Counter {
	return lookup(r, name, func() *Counter { return new(Counter) })
}

func (r *Registry) Level(name string) *Level {
	return lookup(r, name, func() *Level { return new(Level) })
}

func (r *Registry) Gauge(name string) *Gauge {
	return lookup(r, name, func() *Gauge { return new(Gauge) })
}

func (r *Registry) Flag(name string) *Flag {
	return lookup(r, name, func() *Flag { return new(Flag) })
}

func (r *Registry) Label(name string) *Label {
	return lookup(r, name, func() *Label { return new(Label) })
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.metrics[name]
	return ok
}

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metrics)
}

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric sorted by name
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.metrics))
	for k, m := range r.metrics {
		out = append(out, Entry{k, m.Format()})
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

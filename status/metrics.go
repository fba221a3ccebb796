package status

import (
	"math"
	"strconv"
	"sync/atomic"
)

// MaxLabelLen caps label values so snapshots stay one line per metric
const MaxLabelLen = 24

// Metric is anything the registry can format
type Metric interface {
	Format() string
}

// Counter is a monotonic event count
type Counter struct{ v atomic.Int64 }

func (c *Counter) Inc() { c.v.Add(1) }
func (c *Counter) Add(n int64) { c.v.Add(n) }
func (c *Counter) Load() int64 { return c.v.Load() }
func (c *Counter) Format() string { return strconv.FormatInt(c.v.Load(), 10) }

// Level is an integer that moves both ways, like the current penalty
type Level struct{ v atomic.Int64 }

func (l *Level) Set(n int64) { l.v.Store(n) }
func (l *Level) Load() int64 { return l.v.Load() }
func (l *Level) Format() string { return strconv.FormatInt(l.v.Load(), 10) }

// Gauge is a float sample stored as raw bits
type Gauge struct{ bits atomic.Uint64 }

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Load() float64 { return math.Float64frombits(g.bits.Load()) }

// Add accumulates delta with a CAS loop
func (g *Gauge) Add(delta float64) {
	for {
		old := g.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if g.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// Observe folds v into an exponential moving average with weight alpha
// The first observation seeds the average
func (g *Gauge) Observe(v, alpha float64) {
	for {
		old := g.bits.Load()
		next := v
		if old != 0 {
			next = math.Float64frombits(old)*(1-alpha) + v*alpha
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return
		}
	}
}

func (g *Gauge) Format() string { return strconv.FormatFloat(g.Load(), 'f', 3, 64) }

// Flag is a boolean state
type Flag struct{ v atomic.Bool }

func (f *Flag) Set(b bool) { f.v.Store(b) }
func (f *Flag) Load() bool { return f.v.Load() }
func (f *Flag) Format() string { return strconv.FormatBool(f.v.Load()) }

// Label is a short string such as the active challenge kind
type Label struct{ v atomic.Pointer[string] }

func (l *Label) Set(s string) {
	if len(s) > MaxLabelLen {
		s = s[:MaxLabelLen]
	}
	l.v.Store(&s)
}

func (l *Label) Load() string {
	if p := l.v.Load(); p != nil {
		return *p
	}
	return ""
}

func (l *Label) Format() string { return l.Load() }

package challenge

import (
	"fmt"

	"github.com/lixenwraith/warpcheck/shape"
)

// Reason is a failure classification code
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonWrongOrder
	ReasonWrongSet
	ReasonForbiddenMember
	ReasonIncomplete
)

var reasonNames = [...]string{"none", "wrong-order", "wrong-set", "forbidden-member", "incomplete"}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

// Outcome is the terminal result of a session
type Outcome uint8

const (
	OutcomePending Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "pending"
	}
}

// ClickRecord is an immutable snapshot of a clicked shape at click time
type ClickRecord struct {
	Order   int // 1-based position in the log
	ShapeID int
	Frame   uint64

	// Screen-space placement when clicked
	X, Y   float64
	Radius float64 // Model radius, independent of depth and perspective

	Kind         shape.Kind
	Color        int
	Label        int
	Ordinal      int
	Target       bool
	Distractor   bool
	Dangerous    bool
	Dashed       bool
	DoubleBorder bool
}

// Snapshot captures s at screen position (x, y)
func Snapshot(s *shape.Shape, x, y float64, frame uint64) ClickRecord {
	return ClickRecord{
		ShapeID:      s.ID,
		Frame:        frame,
		X:            x,
		Y:            y,
		Radius:       s.Radius,
		Kind:         s.Kind,
		Color:        s.Color,
		Label:        s.Label,
		Ordinal:      s.Ordinal,
		Target:       s.Target,
		Distractor:   s.Distractor,
		Dangerous:    s.Dangerous,
		Dashed:       s.Dashed,
		DoubleBorder: s.DoubleBorder,
	}
}

// Verdict is the caller-facing result
type Verdict struct {
	Type    Type
	Outcome Outcome
	Reason  Reason
	Log     []ClickRecord
}

// Passed reports a successful verdict
func (v Verdict) Passed() bool {
	return v.Outcome == OutcomeSuccess
}

func (v Verdict) String() string {
	if v.Outcome == OutcomeFailure {
		return fmt.Sprintf("%s: %s (%s, %d clicks)", v.Type, v.Outcome, v.Reason, len(v.Log))
	}
	return fmt.Sprintf("%s: %s (%d clicks)", v.Type, v.Outcome, len(v.Log))
}

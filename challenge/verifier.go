package challenge

import "fmt"

// State is a verifier lifecycle state
type State uint8

const (
	StateIdle State = iota
	StatePresented
	StateEvaluating
	StateSucceeded
	StateFailed
)

var stateNames = [...]string{"idle", "presented", "evaluating", "succeeded", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Terminal reports whether the state carries a verdict
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// transitions is the legal edge table
var transitions = map[State][]State{
	StateIdle:       {StatePresented},
	StatePresented:  {StateEvaluating, StateIdle},
	StateEvaluating: {StateSucceeded, StateFailed},
	StateSucceeded:  {StateIdle},
	StateFailed:     {StateIdle},
}

// ClickResult reports what the verifier did with a click
type ClickResult uint8

const (
	ClickDropped   ClickResult = iota // Not accepting input
	ClickDuplicate                    // Shape already clicked this round
	ClickAccepted                     // Logged, more clicks needed
	ClickComplete                     // Logged, required count reached, now Evaluating
	ClickRejected                     // Logged, forbidden member, verdict ready
)

func (r ClickResult) String() string {
	switch r {
	case ClickDuplicate:
		return "duplicate"
	case ClickAccepted:
		return "accepted"
	case ClickComplete:
		return "complete"
	case ClickRejected:
		return "rejected"
	default:
		return "dropped"
	}
}

// Verifier is the per-session verification state machine:
// Idle → Presented → Evaluating → {Succeeded | Failed} → Idle
type Verifier struct {
	state   State
	session Session
	log     []ClickRecord
	clicked map[int]struct{}
	valid   int
	verdict Verdict

	// OnTransition observes every state change, optional
	OnTransition func(from, to State)
}

// NewVerifier creates an idle verifier
func NewVerifier() *Verifier {
	return &Verifier{clicked: make(map[int]struct{})}
}

// State returns the current state
func (v *Verifier) State() State {
	return v.state
}

// Session returns the presented session
func (v *Verifier) Session() Session {
	return v.session
}

// AcceptsInput reports whether clicks are currently consumed
func (v *Verifier) AcceptsInput() bool {
	return v.state == StatePresented
}

// Log returns a copy of the ordered click log
func (v *Verifier) Log() []ClickRecord {
	out := make([]ClickRecord, len(v.log))
	copy(out, v.log)
	return out
}

// Verdict returns the last verdict, Outcome is pending until a terminal state
func (v *Verifier) Verdict() Verdict {
	return v.verdict
}

// Present starts a new session, the verifier must be idle
func (v *Verifier) Present(s Session) error {
	if !s.Type.Valid() {
		return fmt.Errorf("present %s: %w", s.Type, ErrUnknownType)
	}
	if err := v.transition(StatePresented); err != nil {
		return err
	}
	v.session = s
	v.log = v.log[:0]
	clear(v.clicked)
	v.valid = 0
	v.verdict = Verdict{Type: s.Type}
	return nil
}

// Click consumes a click snapshot. Input outside Presented is dropped, not queued.
func (v *Verifier) Click(rec ClickRecord) ClickResult {
	if v.state != StatePresented {
		return ClickDropped
	}
	if _, seen := v.clicked[rec.ShapeID]; seen {
		return ClickDuplicate
	}

	v.clicked[rec.ShapeID] = struct{}{}
	rec.Order = len(v.log) + 1
	v.log = append(v.log, rec)

	// Hard-fail types reject a disallowed click before the count is reached
	if v.session.Forbidden(rec) {
		v.mustTransition(StateEvaluating)
		v.finish(ReasonForbiddenMember)
		return ClickRejected
	}

	if v.session.Member(rec) {
		v.valid++
	}
	if v.valid >= v.session.Required || (v.session.Shapes > 0 && len(v.log) >= v.session.Shapes) {
		v.mustTransition(StateEvaluating)
		return ClickComplete
	}
	return ClickAccepted
}

// Evaluate produces the verdict for a session in Evaluating
func (v *Verifier) Evaluate() (Verdict, error) {
	if v.state != StateEvaluating {
		return Verdict{}, fmt.Errorf("evaluate from %s: %w", v.state, ErrIllegalTransition)
	}
	v.finish(Evaluate(&v.session, v.log))
	return v.verdict, nil
}

// Submit forces evaluation before the required count, short logs are Incomplete
func (v *Verifier) Submit() (Verdict, error) {
	if v.state != StatePresented {
		return Verdict{}, fmt.Errorf("submit from %s: %w", v.state, ErrNoSession)
	}
	v.mustTransition(StateEvaluating)
	return v.Evaluate()
}

// Reset returns to Idle from Presented or a terminal state
func (v *Verifier) Reset() error {
	if v.state == StateIdle {
		return nil
	}
	return v.transition(StateIdle)
}

func (v *Verifier) finish(reason Reason) {
	v.verdict = Verdict{
		Type:   v.session.Type,
		Reason: reason,
		Log:    v.Log(),
	}
	if reason == ReasonNone {
		v.verdict.Outcome = OutcomeSuccess
		v.mustTransition(StateSucceeded)
		return
	}
	v.verdict.Outcome = OutcomeFailure
	v.mustTransition(StateFailed)
}

func (v *Verifier) transition(to State) error {
	for _, allowed := range transitions[v.state] {
		if allowed == to {
			from := v.state
			v.state = to
			if v.OnTransition != nil {
				v.OnTransition(from, to)
			}
			return nil
		}
	}
	return fmt.Errorf("%s → %s: %w", v.state, to, ErrIllegalTransition)
}

// mustTransition is for edges guaranteed by the caller's state check
func (v *Verifier) mustTransition(to State) {
	if err := v.transition(to); err != nil {
		panic(err)
	}
}

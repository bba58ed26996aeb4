package domain

import (
	"fmt"
	"time"
)

// SessionState represents a step of the session lifecycle.
type SessionState string

const (
	StateIdle             SessionState = "idle"
	StateAwaitingDuration SessionState = "awaiting_duration"
	StatePreparing        SessionState = "preparing"
	StateExecuting        SessionState = "executing"
	StateEnding           SessionState = "ending"
	StateComplete         SessionState = "complete"
)

// nextState maps each state to the only state it may move to.
var nextState = map[SessionState]SessionState{
	StateIdle:             StateAwaitingDuration,
	StateAwaitingDuration: StatePreparing,
	StatePreparing:        StateExecuting,
	StateExecuting:        StateEnding,
	StateEnding:           StateComplete,
}

// Session is one run of an activity, from the duration prompt to the
// completion summary.
type Session struct {
	ID          string
	Activity    ActivityKind
	Name        string
	Description string
	Requested   time.Duration
	StartedAt   time.Time
	State       SessionState
}

// NewSession creates an idle session for the given activity.
func NewSession(kind ActivityKind) *Session {
	return &Session{
		ID:          generateID(),
		Activity:    kind,
		Name:        kind.Label(),
		Description: kind.Description(),
		State:       StateIdle,
	}
}

// Transition moves the session to the given state. Only the single forward
// step allowed from the current state is accepted.
func (s *Session) Transition(to SessionState) error {
	if nextState[s.State] != to {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, to)
	}
	s.State = to
	return nil
}

// SetRequested fixes the requested duration. It is only accepted while the
// session is awaiting its duration.
func (s *Session) SetRequested(d time.Duration) error {
	if s.State != StateAwaitingDuration {
		return fmt.Errorf("%w: duration set in state %s", ErrInvalidTransition, s.State)
	}
	if d <= 0 {
		return ErrInvalidDuration
	}
	s.Requested = d
	return nil
}

// Begin starts (or restarts) the session clock at now.
func (s *Session) Begin(now time.Time) {
	s.StartedAt = now
}

// IsStarted returns true once the session clock has been started.
func (s *Session) IsStarted() bool {
	return !s.StartedAt.IsZero()
}

// Remaining returns the time left at now, clamped to zero. Before the clock
// starts the whole requested duration remains.
func (s *Session) Remaining(now time.Time) time.Duration {
	if !s.IsStarted() {
		return s.Requested
	}
	remaining := s.Requested - now.Sub(s.StartedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Elapsed returns how much time has passed since the clock started.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if !s.IsStarted() {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// Summary is what a finished session reports back to the menu.
type Summary struct {
	SessionID string         `json:"session_id"`
	Activity  ActivityKind   `json:"activity"`
	Name      string         `json:"name"`
	Requested time.Duration  `json:"requested"`
	Elapsed   time.Duration  `json:"elapsed"`
	Result    ActivityResult `json:"result"`
}

// ActivityResult holds what a variant produced while executing.
type ActivityResult struct {
	Prompt    string          `json:"prompt,omitempty"`
	Phases    []Phase         `json:"phases,omitempty"`
	Questions []string        `json:"questions,omitempty"`
	Items     []CollectedItem `json:"items,omitempty"`
}

// PhaseKind is one half of a breathing cycle.
type PhaseKind string

const (
	PhaseInhale PhaseKind = "inhale"
	PhaseExhale PhaseKind = "exhale"
)

// Label returns the text shown while the phase counts down.
func (p PhaseKind) Label() string {
	if p == PhaseExhale {
		return "Breathe out..."
	}
	return "Breathe in..."
}

// Next returns the opposite phase.
func (p PhaseKind) Next() PhaseKind {
	if p == PhaseInhale {
		return PhaseExhale
	}
	return PhaseInhale
}

// Phase records one rendered breathing countdown.
type Phase struct {
	Kind   PhaseKind     `json:"kind"`
	Length time.Duration `json:"length"`
}

// GetStateLabel returns a human-readable label for the session state.
func GetStateLabel(s SessionState) string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingDuration:
		return "Awaiting duration"
	case StatePreparing:
		return "Preparing"
	case StateExecuting:
		return "Executing"
	case StateEnding:
		return "Ending"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

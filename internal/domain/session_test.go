package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	session := NewSession(ActivityBreathing)

	if session.ID == "" {
		t.Error("NewSession() ID is empty")
	}

	if session.State != StateIdle {
		t.Errorf("State = %v, want %v", session.State, StateIdle)
	}

	if session.Name != "Breathing Activity" {
		t.Errorf("Name = %q, want %q", session.Name, "Breathing Activity")
	}

	if session.Description == "" {
		t.Error("Description is empty")
	}

	if session.IsStarted() {
		t.Error("new session should not be started")
	}
}

func TestSession_Transition_FullLifecycle(t *testing.T) {
	session := NewSession(ActivityListing)

	steps := []SessionState{
		StateAwaitingDuration,
		StatePreparing,
		StateExecuting,
		StateEnding,
		StateComplete,
	}

	for _, to := range steps {
		if err := session.Transition(to); err != nil {
			t.Fatalf("Transition(%s) error = %v", to, err)
		}
		if session.State != to {
			t.Errorf("State = %v, want %v", session.State, to)
		}
	}
}

func TestSession_Transition_Rejected(t *testing.T) {
	tests := []struct {
		name string
		from SessionState
		to   SessionState
	}{
		{"skip duration", StateIdle, StatePreparing},
		{"execute before preparing", StateAwaitingDuration, StateExecuting},
		{"backwards", StateExecuting, StatePreparing},
		{"ending twice", StateEnding, StateEnding},
		{"past complete", StateComplete, StateIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &Session{State: tt.from}
			err := session.Transition(tt.to)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Transition() error = %v, want ErrInvalidTransition", err)
			}
			if session.State != tt.from {
				t.Errorf("State changed to %v on rejected transition", session.State)
			}
		})
	}
}

func TestSession_SetRequested(t *testing.T) {
	session := NewSession(ActivityBreathing)

	if err := session.SetRequested(10 * time.Second); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SetRequested() in idle error = %v, want ErrInvalidTransition", err)
	}

	_ = session.Transition(StateAwaitingDuration)

	if err := session.SetRequested(0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("SetRequested(0) error = %v, want ErrInvalidDuration", err)
	}

	if err := session.SetRequested(10 * time.Second); err != nil {
		t.Fatalf("SetRequested() error = %v", err)
	}
	if session.Requested != 10*time.Second {
		t.Errorf("Requested = %v, want %v", session.Requested, 10*time.Second)
	}

	_ = session.Transition(StatePreparing)
	if err := session.SetRequested(20 * time.Second); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SetRequested() after preparing error = %v, want ErrInvalidTransition", err)
	}
}

func TestSession_Remaining(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	session := &Session{Requested: 10 * time.Second}

	if got := session.Remaining(start); got != 10*time.Second {
		t.Errorf("Remaining before start = %v, want %v", got, 10*time.Second)
	}

	session.Begin(start)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{"at start", 0, 10 * time.Second},
		{"midway", 4 * time.Second, 6 * time.Second},
		{"exactly at deadline", 10 * time.Second, 0},
		{"past deadline clamps", 15 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := session.Remaining(start.Add(tt.elapsed)); got != tt.want {
				t.Errorf("Remaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_BeginRestartsClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	session := &Session{Requested: 10 * time.Second}

	session.Begin(start)
	later := start.Add(7 * time.Second)
	session.Begin(later)

	if got := session.Remaining(later.Add(time.Second)); got != 9*time.Second {
		t.Errorf("Remaining after restart = %v, want %v", got, 9*time.Second)
	}
	if got := session.Elapsed(later.Add(time.Second)); got != time.Second {
		t.Errorf("Elapsed after restart = %v, want %v", got, time.Second)
	}
}

func TestPhaseKind_Alternates(t *testing.T) {
	if PhaseInhale.Next() != PhaseExhale {
		t.Error("inhale should be followed by exhale")
	}
	if PhaseExhale.Next() != PhaseInhale {
		t.Error("exhale should be followed by inhale")
	}
	if PhaseInhale.Label() != "Breathe in..." || PhaseExhale.Label() != "Breathe out..." {
		t.Errorf("unexpected labels %q / %q", PhaseInhale.Label(), PhaseExhale.Label())
	}
}

func TestValidateActivity(t *testing.T) {
	tests := []struct {
		input   string
		want    ActivityKind
		wantErr bool
	}{
		{"breathing", ActivityBreathing, false},
		{"reflection", ActivityReflection, false},
		{"listing", ActivityListing, false},
		{"yoga", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateActivity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateActivity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ValidateActivity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetStateLabel(t *testing.T) {
	if got := GetStateLabel(StateExecuting); got != "Executing" {
		t.Errorf("GetStateLabel(executing) = %q", got)
	}
	if got := GetStateLabel(SessionState("bogus")); got != "Unknown" {
		t.Errorf("GetStateLabel(bogus) = %q, want Unknown", got)
	}
}

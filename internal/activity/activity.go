// Package activity encapsulates the behavior of each guided activity.
// The session service runs every activity through the same lifecycle and
// only calls the Variant's Execute function, instead of branching on the
// activity kind everywhere.
package activity

import (
	"context"
	"time"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
	"github.com/xvierd/calm-cli/internal/render"
)

// Pacing holds the tuning values shared by the lifecycle and the variants.
type Pacing struct {
	Prepare         time.Duration
	Closing         time.Duration
	BreathPhase     time.Duration
	ReflectionPause time.Duration
	ListingLeadIn   int
	CountdownUnit   time.Duration
	SpinnerTick     time.Duration
	PollInterval    time.Duration
	MaxListed       int
}

// DefaultPacing returns the stock pacing.
func DefaultPacing() Pacing {
	return Pacing{
		Prepare:         3 * time.Second,
		Closing:         3 * time.Second,
		BreathPhase:     4 * time.Second,
		ReflectionPause: 8 * time.Second,
		ListingLeadIn:   5,
		CountdownUnit:   time.Second,
		SpinnerTick:     200 * time.Millisecond,
		PollInterval:    50 * time.Millisecond,
		MaxListed:       10,
	}
}

// Env is everything a variant may touch while it executes.
type Env struct {
	Screen   ports.Screen
	Keyboard ports.Keyboard
	Clock    ports.Clock
	Random   ports.Random
	Renderer *render.Renderer
	Prompts  domain.PromptCatalog
	Pacing   Pacing
}

// Budget exposes the remaining session time, recomputed from the clock on
// every call.
type Budget struct {
	session *domain.Session
	clock   ports.Clock
}

// NewBudget binds a session to the clock it is measured against.
func NewBudget(session *domain.Session, clock ports.Clock) *Budget {
	return &Budget{session: session, clock: clock}
}

// Remaining returns the time left, never negative.
func (b *Budget) Remaining() time.Duration {
	return b.session.Remaining(b.clock.Now())
}

// Restart starts the session clock over from now. Variants call it when
// their timed region begins after an uncounted lead-in.
func (b *Budget) Restart() {
	b.session.Begin(b.clock.Now())
}

// ExecuteFunc runs the timed core of an activity.
type ExecuteFunc func(ctx context.Context, env *Env, budget *Budget) (domain.ActivityResult, error)

// Variant is one guided activity: tagged data plus its execute function.
type Variant struct {
	Kind        domain.ActivityKind
	Name        string
	Description string
	Execute     ExecuteFunc
}

// ForKind returns the Variant for the given activity kind.
func ForKind(kind domain.ActivityKind) (Variant, error) {
	if _, err := domain.ValidateActivity(string(kind)); err != nil {
		return Variant{}, err
	}

	v := Variant{
		Kind:        kind,
		Name:        kind.Label(),
		Description: kind.Description(),
	}
	switch kind {
	case domain.ActivityReflection:
		v.Execute = executeReflection
	case domain.ActivityListing:
		v.Execute = executeListing
	default:
		v.Execute = executeBreathing
	}
	return v, nil
}

// Catalog returns every variant in menu order.
func Catalog() []Variant {
	variants := make([]Variant, 0, len(domain.ValidActivities))
	for _, kind := range domain.ValidActivities {
		v, _ := ForKind(kind)
		variants = append(variants, v)
	}
	return variants
}

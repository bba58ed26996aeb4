package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/render"
	"github.com/xvierd/calm-cli/internal/testutil"
)

type harness struct {
	clock    *testutil.FakeClock
	screen   *testutil.FakeScreen
	keyboard *testutil.FakeKeyboard
	random   *testutil.SequenceRandom
	session  *domain.Session
	env      *Env
	budget   *Budget
}

// newHarness returns a session of duration d that is executing, with its
// clock started at the fake clock's epoch.
func newHarness(t *testing.T, kind domain.ActivityKind, d time.Duration) *harness {
	t.Helper()
	clock := testutil.NewFakeClock()
	screen := &testutil.FakeScreen{}
	keyboard := testutil.NewFakeKeyboard(clock)
	random := &testutil.SequenceRandom{}

	session := domain.NewSession(kind)
	require.NoError(t, session.Transition(domain.StateAwaitingDuration))
	require.NoError(t, session.SetRequested(d))
	require.NoError(t, session.Transition(domain.StatePreparing))
	require.NoError(t, session.Transition(domain.StateExecuting))
	session.Begin(clock.Now())

	pacing := DefaultPacing()
	return &harness{
		clock:    clock,
		screen:   screen,
		keyboard: keyboard,
		random:   random,
		session:  session,
		budget:   NewBudget(session, clock),
		env: &Env{
			Screen:   screen,
			Keyboard: keyboard,
			Clock:    clock,
			Random:   random,
			Renderer: render.New(screen, clock, pacing.SpinnerTick, pacing.CountdownUnit),
			Prompts:  domain.DefaultPromptCatalog(),
			Pacing:   pacing,
		},
	}
}

func (h *harness) run(t *testing.T, kind domain.ActivityKind) domain.ActivityResult {
	t.Helper()
	v, err := ForKind(kind)
	require.NoError(t, err)
	result, err := v.Execute(context.Background(), h.env, h.budget)
	require.NoError(t, err)
	return result
}

func TestForKind(t *testing.T) {
	tests := []struct {
		kind domain.ActivityKind
		name string
	}{
		{domain.ActivityBreathing, "Breathing Activity"},
		{domain.ActivityReflection, "Reflection Activity"},
		{domain.ActivityListing, "Listing Activity"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			v, err := ForKind(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.name, v.Name)
			assert.NotEmpty(t, v.Description)
			assert.NotNil(t, v.Execute)
		})
	}

	_, err := ForKind("juggling")
	assert.True(t, errors.Is(err, domain.ErrInvalidActivity))
}

func TestCatalog_MenuOrder(t *testing.T) {
	variants := Catalog()
	require.Len(t, variants, 3)
	assert.Equal(t, domain.ActivityBreathing, variants[0].Kind)
	assert.Equal(t, domain.ActivityReflection, variants[1].Kind)
	assert.Equal(t, domain.ActivityListing, variants[2].Kind)
}

func TestBudget_RestartAndClamp(t *testing.T) {
	h := newHarness(t, domain.ActivityBreathing, 10*time.Second)

	h.clock.Advance(4 * time.Second)
	assert.Equal(t, 6*time.Second, h.budget.Remaining())

	h.budget.Restart()
	assert.Equal(t, 10*time.Second, h.budget.Remaining())

	h.clock.Advance(time.Minute)
	assert.Equal(t, time.Duration(0), h.budget.Remaining())
}

func TestBreathing_ShortSessionSingleInhale(t *testing.T) {
	h := newHarness(t, domain.ActivityBreathing, 3*time.Second)

	result := h.run(t, domain.ActivityBreathing)

	require.Len(t, result.Phases, 1)
	assert.Equal(t, domain.Phase{Kind: domain.PhaseInhale, Length: 3 * time.Second}, result.Phases[0])
	assert.Contains(t, h.screen.Output(), "Breathe in... ")
	assert.NotContains(t, h.screen.Output(), "Breathe out...")
	assert.Equal(t, 3*time.Second, h.clock.Since())
}

func TestBreathing_AlternatesAndFitsBudget(t *testing.T) {
	durations := []time.Duration{
		time.Second,
		4 * time.Second,
		5 * time.Second,
		9 * time.Second,
		2500 * time.Millisecond,
		17 * time.Second,
		30 * time.Second,
	}

	for _, d := range durations {
		t.Run(d.String(), func(t *testing.T) {
			h := newHarness(t, domain.ActivityBreathing, d)

			result := h.run(t, domain.ActivityBreathing)

			require.NotEmpty(t, result.Phases)
			var sum time.Duration
			for i, p := range result.Phases {
				want := domain.PhaseInhale
				if i%2 == 1 {
					want = domain.PhaseExhale
				}
				assert.Equal(t, want, p.Kind, "phase %d", i)
				assert.Greater(t, p.Length, time.Duration(0))
				assert.LessOrEqual(t, p.Length, 4*time.Second)
				sum += p.Length
			}
			assert.LessOrEqual(t, sum, d)
			assert.Equal(t, d, h.clock.Since())
			assert.NotContains(t, h.screen.Writes(), "0", "a zero countdown must never be drawn")
		})
	}
}

func TestBreathing_SubUnitRemainderIsHeldSilently(t *testing.T) {
	h := newHarness(t, domain.ActivityBreathing, 2500*time.Millisecond)

	result := h.run(t, domain.ActivityBreathing)

	require.Len(t, result.Phases, 1)
	assert.Equal(t, 2*time.Second, result.Phases[0].Length)
	assert.Equal(t, 500*time.Millisecond, h.clock.Sleeps[len(h.clock.Sleeps)-1])
	assert.NotContains(t, h.screen.Output(), "Breathe out...")
}

func TestBreathing_ExhaustedBudgetRendersNothing(t *testing.T) {
	h := newHarness(t, domain.ActivityBreathing, 3*time.Second)
	h.clock.Advance(5 * time.Second)

	result := h.run(t, domain.ActivityBreathing)

	assert.Empty(t, result.Phases)
	assert.Empty(t, h.screen.Ops)
}

func TestReflection_ConfirmationIsNotCounted(t *testing.T) {
	h := newHarness(t, domain.ActivityReflection, 20*time.Second)
	h.keyboard.Lines("")
	h.keyboard.LineDelay = 30 * time.Second
	h.random.Values = []int{2, 0, 1, 3}

	result := h.run(t, domain.ActivityReflection)

	catalog := domain.DefaultPromptCatalog()
	assert.Equal(t, catalog.ReflectionPrompts[2], result.Prompt)
	assert.Equal(t, []string{
		catalog.ReflectionQuestions[0],
		catalog.ReflectionQuestions[1],
		catalog.ReflectionQuestions[3],
	}, result.Questions)

	assert.Equal(t, 50*time.Second, h.clock.Since())
	assert.Equal(t, 20*time.Second, h.session.Elapsed(h.clock.Now()))
	assert.Equal(t, 1, h.keyboard.LinesRead)
	assert.Contains(t, h.screen.Output(), "--- "+result.Prompt+" ---")
	assert.Contains(t, h.screen.Output(), "\n> "+catalog.ReflectionQuestions[0]+"\n")
}

func TestReflection_ConfirmationErrorIsWrapped(t *testing.T) {
	h := newHarness(t, domain.ActivityReflection, 10*time.Second)

	v, err := ForKind(domain.ActivityReflection)
	require.NoError(t, err)
	_, err = v.Execute(context.Background(), h.env, h.budget)

	require.Error(t, err)
	assert.True(t, errors.Is(err, testutil.ErrNoInput))
	assert.Contains(t, err.Error(), "failed to read confirmation")
}

func TestListing_LeadInIsNotCounted(t *testing.T) {
	h := newHarness(t, domain.ActivityListing, 10*time.Second)
	leadIn := 5 * time.Second
	h.keyboard.
		Type(leadIn+time.Second, "apple\n").
		Type(leadIn+9500*time.Millisecond, "banana")

	result := h.run(t, domain.ActivityListing)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "apple", result.Items[0].Text)
	assert.Equal(t, "banana", result.Items[1].Text)
	assert.Equal(t, 15*time.Second, h.clock.Since())
	assert.Equal(t, 10*time.Second, h.session.Elapsed(h.clock.Now()))

	out := h.screen.Output()
	assert.Contains(t, out, "Starting in: ")
	assert.Contains(t, out, "Time's up! You listed 2 items.")
	assert.Contains(t, out, " 1. apple\n")
	assert.Contains(t, out, " 2. banana\n")
}

func TestListing_NothingTyped(t *testing.T) {
	h := newHarness(t, domain.ActivityListing, 5*time.Second)

	result := h.run(t, domain.ActivityListing)

	assert.Empty(t, result.Items)
	assert.Contains(t, h.screen.Output(), "You listed 0 items.")
}

func TestListing_EmptyPromptSet(t *testing.T) {
	h := newHarness(t, domain.ActivityListing, 5*time.Second)
	h.env.Prompts.ListingPrompts = nil

	v, err := ForKind(domain.ActivityListing)
	require.NoError(t, err)
	_, err = v.Execute(context.Background(), h.env, h.budget)

	assert.True(t, errors.Is(err, domain.ErrEmptyPromptSet))
	assert.Empty(t, h.screen.Ops)
}

func TestExecute_CancelledContext(t *testing.T) {
	h := newHarness(t, domain.ActivityBreathing, 10*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := ForKind(domain.ActivityBreathing)
	require.NoError(t, err)
	_, err = v.Execute(ctx, h.env, h.budget)

	assert.ErrorIs(t, err, context.Canceled)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xvierd/calm-cli/internal/activity"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
	"github.com/xvierd/calm-cli/internal/render"
)

// SessionService drives one activity through the session lifecycle.
type SessionService struct {
	screen   ports.Screen
	keyboard ports.Keyboard
	clock    ports.Clock
	random   ports.Random
	prompts  ports.PromptLibrary
	notifier ports.Notifier
	logger   *slog.Logger
	pacing   activity.Pacing
}

// SessionDeps contains the collaborators a SessionService runs against.
// Prompts, Notifier and Logger are optional.
type SessionDeps struct {
	Screen   ports.Screen
	Keyboard ports.Keyboard
	Clock    ports.Clock
	Random   ports.Random
	Prompts  ports.PromptLibrary
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// NewSessionService creates a new session service with the default pacing.
func NewSessionService(deps SessionDeps) *SessionService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SessionService{
		screen:   deps.Screen,
		keyboard: deps.Keyboard,
		clock:    deps.Clock,
		random:   deps.Random,
		prompts:  deps.Prompts,
		notifier: deps.Notifier,
		logger:   logger,
		pacing:   activity.DefaultPacing(),
	}
}

// SetPacing updates the pacing used by later runs.
func (s *SessionService) SetPacing(p activity.Pacing) {
	s.pacing = p
}

// Pacing returns the pacing in use.
func (s *SessionService) Pacing() activity.Pacing {
	return s.pacing
}

// RunOptions tunes a single run.
type RunOptions struct {
	// Duration skips the duration prompt when positive.
	Duration time.Duration

	// AwaitReturn waits for Enter before handing control back to the menu.
	AwaitReturn bool
}

// Run takes a variant from Idle to Complete and returns its summary.
// Invalid durations are reprompted; keyboard faults, interrupts and
// context cancellation abort the run.
func (s *SessionService) Run(ctx context.Context, v activity.Variant, opts RunOptions) (*domain.Summary, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(v.Kind)
	session.Name = v.Name
	session.Description = v.Description
	log := s.logger.With("session_id", session.ID, "activity", string(v.Kind))
	renderer := render.New(s.screen, s.clock, s.pacing.SpinnerTick, s.pacing.CountdownUnit)

	if err := s.advance(ctx, log, session, domain.StateAwaitingDuration); err != nil {
		return nil, err
	}
	s.screen.ClearScreen()
	s.screen.Write(fmt.Sprintf("=== %s ===\n\n", session.Name))
	s.screen.Write(session.Description + "\n\n")

	requested := opts.Duration
	if requested <= 0 {
		requested, err = s.promptDuration(log)
		if err != nil {
			return nil, err
		}
	}
	if err := session.SetRequested(requested); err != nil {
		return nil, err
	}

	if err := s.advance(ctx, log, session, domain.StatePreparing); err != nil {
		return nil, err
	}
	s.screen.Write("\nGet ready to begin...\n")
	renderer.Spinner(s.pacing.Prepare)
	s.screen.Write("\n")

	if err := s.advance(ctx, log, session, domain.StateExecuting); err != nil {
		return nil, err
	}
	session.Begin(s.clock.Now())
	env := &activity.Env{
		Screen:   s.screen,
		Keyboard: s.keyboard,
		Clock:    s.clock,
		Random:   s.random,
		Renderer: renderer,
		Prompts:  catalog,
		Pacing:   s.pacing,
	}
	result, err := v.Execute(ctx, env, activity.NewBudget(session, s.clock))
	if err != nil {
		log.Error("activity aborted", "error", err)
		return nil, fmt.Errorf("failed to run %s: %w", session.Name, err)
	}
	elapsed := session.Elapsed(s.clock.Now())

	if err := s.advance(ctx, log, session, domain.StateEnding); err != nil {
		return nil, err
	}
	summary := &domain.Summary{
		SessionID: session.ID,
		Activity:  session.Activity,
		Name:      session.Name,
		Requested: session.Requested,
		Elapsed:   elapsed,
		Result:    result,
	}
	s.screen.Write("\nWell done!!\n")
	renderer.Spinner(s.pacing.Closing)
	s.screen.Write("\n" + CompletionText(summary))
	renderer.Spinner(s.pacing.Closing)
	s.screen.Write("\n")

	if opts.AwaitReturn {
		s.screen.Write("\nPress Enter to return to the menu...\n")
		if _, err := s.keyboard.ReadLine(); err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}

	if err := s.advance(ctx, log, session, domain.StateComplete); err != nil {
		return nil, err
	}
	log.Info("session complete",
		"requested", summary.Requested,
		"elapsed", summary.Elapsed,
		"items", len(result.Items),
		"phases", len(result.Phases),
		"questions", len(result.Questions))

	if s.notifier != nil {
		if err := s.notifier.NotifySessionComplete(summary); err != nil {
			log.Warn("notification failed", "error", err)
		}
	}

	return summary, nil
}

// CompletionText returns the summary lines shown at the end of a session.
func CompletionText(summary *domain.Summary) string {
	return fmt.Sprintf("You have completed the activity: %s\nDuration: %d seconds (%.1fs elapsed).\n",
		summary.Name,
		int(summary.Requested/time.Second),
		summary.Elapsed.Seconds())
}

func (s *SessionService) catalog(ctx context.Context) (domain.PromptCatalog, error) {
	if s.prompts == nil {
		return domain.DefaultPromptCatalog(), nil
	}
	catalog, err := s.prompts.Catalog(ctx)
	if err != nil {
		return domain.PromptCatalog{}, fmt.Errorf("failed to load prompts: %w", err)
	}
	return catalog, nil
}

func (s *SessionService) advance(ctx context.Context, log *slog.Logger, session *domain.Session, to domain.SessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from := session.State
	if err := session.Transition(to); err != nil {
		return err
	}
	log.Debug("session state changed", "from", string(from), "to", string(to), "label", domain.GetStateLabel(to))
	return nil
}

// promptDuration asks until a positive whole number of seconds is entered.
func (s *SessionService) promptDuration(log *slog.Logger) (time.Duration, error) {
	for {
		s.screen.Write("Enter duration in seconds (e.g. 30): ")
		line, err := s.keyboard.ReadLine()
		if err != nil {
			return 0, fmt.Errorf("failed to read duration: %w", err)
		}
		d, err := domain.ParseDurationInput(line)
		if err == nil {
			return d, nil
		}
		log.Debug("rejected duration", "input", line)
		s.screen.Write("Please enter a positive whole number.\n\n")
	}
}

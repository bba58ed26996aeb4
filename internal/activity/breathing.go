package activity

import (
	"context"
	"time"

	"github.com/xvierd/calm-cli/internal/domain"
)

// executeBreathing alternates inhale and exhale countdowns of at most one
// breath phase until the budget runs out. A remainder shorter than one
// countdown unit is waited out without drawing anything.
func executeBreathing(ctx context.Context, env *Env, budget *Budget) (domain.ActivityResult, error) {
	var result domain.ActivityResult
	if budget.Remaining() <= 0 {
		return result, nil
	}

	env.Screen.Write("Follow the prompts: Breathe in... Breathe out...\n\n")

	phase := domain.PhaseInhale
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		left := budget.Remaining()
		if left <= 0 {
			break
		}

		units := env.Renderer.WholeUnits(min(env.Pacing.BreathPhase, left))
		if units <= 0 {
			env.Clock.Sleep(left)
			break
		}

		env.Screen.Write(phase.Label() + " ")
		env.Renderer.Countdown(units)
		env.Screen.Write("\n")

		result.Phases = append(result.Phases, domain.Phase{
			Kind:   phase,
			Length: env.Renderer.Unit() * time.Duration(units),
		})
		phase = phase.Next()
	}

	return result, nil
}

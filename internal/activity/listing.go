package activity

import (
	"context"
	"fmt"

	"github.com/xvierd/calm-cli/internal/collector"
	"github.com/xvierd/calm-cli/internal/domain"
)

func executeListing(ctx context.Context, env *Env, budget *Budget) (domain.ActivityResult, error) {
	var result domain.ActivityResult
	if budget.Remaining() <= 0 {
		return result, nil
	}

	prompt, err := env.Prompts.ListingPrompts.Pick(env.Random.IntN)
	if err != nil {
		return result, fmt.Errorf("failed to pick listing prompt: %w", err)
	}
	result.Prompt = prompt

	env.Screen.Write("\nList as many responses as you can to the prompt:\n")
	env.Screen.Write(fmt.Sprintf("--- %s ---\n\n", prompt))
	env.Screen.Write("You will have a few seconds to think, then type items pressing Enter after each one.\n")
	env.Screen.Write("Starting in: ")
	env.Renderer.Countdown(env.Pacing.ListingLeadIn)
	env.Screen.Write("\nBegin now! (Press Enter after each item)\n")

	// Only the collection window counts against the session.
	budget.Restart()

	c := collector.New(env.Screen, env.Keyboard, env.Clock, env.Pacing.PollInterval)
	collected, err := c.Collect(ctx, budget.Remaining)
	result.Items = collected.Items
	if err != nil {
		return result, err
	}

	env.Screen.Write("\n" + collector.Report(collected.Items, env.Pacing.MaxListed))
	return result, nil
}

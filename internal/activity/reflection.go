package activity

import (
	"context"
	"fmt"

	"github.com/xvierd/calm-cli/internal/domain"
)

func executeReflection(ctx context.Context, env *Env, budget *Budget) (domain.ActivityResult, error) {
	var result domain.ActivityResult
	if budget.Remaining() <= 0 {
		return result, nil
	}

	prompt, err := env.Prompts.ReflectionPrompts.Pick(env.Random.IntN)
	if err != nil {
		return result, fmt.Errorf("failed to pick reflection prompt: %w", err)
	}
	result.Prompt = prompt

	env.Screen.Write("\nConsider the following prompt:\n\n")
	env.Screen.Write(fmt.Sprintf("--- %s ---\n\n", prompt))
	env.Screen.Write("When you have something in mind, press Enter to begin reflecting on questions.\n")

	// The clock has not started yet, so blocking here is fine.
	if _, err := env.Keyboard.ReadLine(); err != nil {
		return result, fmt.Errorf("failed to read confirmation: %w", err)
	}
	budget.Restart()

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		left := budget.Remaining()
		if left <= 0 {
			break
		}

		question, err := env.Prompts.ReflectionQuestions.Pick(env.Random.IntN)
		if err != nil {
			return result, fmt.Errorf("failed to pick reflection question: %w", err)
		}
		result.Questions = append(result.Questions, question)

		env.Screen.Write("\n> " + question + "\n")
		env.Renderer.Spinner(min(env.Pacing.ReflectionPause, left))
	}
	env.Screen.Write("\n")

	return result, nil
}

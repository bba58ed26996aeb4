package domain

import (
	"fmt"
	"strings"
	"time"
)

// PromptKind says which prompt set a prompt belongs to.
type PromptKind string

const (
	PromptReflection PromptKind = "reflection_prompt"
	PromptQuestion   PromptKind = "reflection_question"
	PromptListing    PromptKind = "listing_prompt"
)

// ValidPromptKinds lists all supported prompt kinds.
var ValidPromptKinds = []PromptKind{
	PromptReflection,
	PromptQuestion,
	PromptListing,
}

// ValidatePromptKind checks if a string is a valid prompt kind.
func ValidatePromptKind(s string) (PromptKind, error) {
	k := PromptKind(s)
	for _, valid := range ValidPromptKinds {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of reflection_prompt, reflection_question, listing_prompt", ErrInvalidPromptKind, s)
}

// Prompt is a user-authored entry in the prompt library.
type Prompt struct {
	ID        string
	Kind      PromptKind
	Text      string
	CreatedAt time.Time
}

// NewPrompt creates a prompt of the given kind.
func NewPrompt(kind PromptKind, text string) (*Prompt, error) {
	if _, err := ValidatePromptKind(string(kind)); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyPromptText
	}
	return &Prompt{
		ID:        generateID(),
		Kind:      kind,
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}

// PromptSet is a read-only ordered sequence of prompts.
type PromptSet []string

// Pick draws one entry using the supplied index source. Draws are
// independent, so repeats are expected.
func (ps PromptSet) Pick(intN func(n int) int) (string, error) {
	if len(ps) == 0 {
		return "", ErrEmptyPromptSet
	}
	return ps[intN(len(ps))], nil
}

// PromptCatalog groups the prompt sets the activities draw from.
type PromptCatalog struct {
	ReflectionPrompts   PromptSet
	ReflectionQuestions PromptSet
	ListingPrompts      PromptSet
}

// DefaultPromptCatalog returns the built-in prompt sets.
func DefaultPromptCatalog() PromptCatalog {
	return PromptCatalog{
		ReflectionPrompts: PromptSet{
			"Think of a time when you stood up for someone else.",
			"Think of a time when you did something really difficult.",
			"Think of a time when you helped someone in need.",
			"Think of a time when you did something truly selfless.",
			"Think of a time when you learned from a failure and kept going.",
		},
		ReflectionQuestions: PromptSet{
			"Why was this experience meaningful to you?",
			"Have you ever done anything like this before?",
			"How did you get started?",
			"How did you feel when it was complete?",
			"What made this time different than other times when you were not as successful?",
			"What is your favorite thing about this experience?",
			"What could you learn from this experience that applies to other situations?",
			"What did you learn about yourself through this experience?",
			"How can you keep this experience in mind in the future?",
		},
		ListingPrompts: PromptSet{
			"Who are people that you appreciate?",
			"What are personal strengths of yours?",
			"Who are people that you have helped this week?",
			"When have you felt a sense of peace this month?",
			"Who are some of your personal heroes?",
		},
	}
}

// With returns a copy of the catalog with the given prompts appended to
// their sets. The receiver is left untouched.
func (c PromptCatalog) With(prompts []*Prompt) PromptCatalog {
	out := PromptCatalog{
		ReflectionPrompts:   append(PromptSet(nil), c.ReflectionPrompts...),
		ReflectionQuestions: append(PromptSet(nil), c.ReflectionQuestions...),
		ListingPrompts:      append(PromptSet(nil), c.ListingPrompts...),
	}
	for _, p := range prompts {
		switch p.Kind {
		case PromptReflection:
			out.ReflectionPrompts = append(out.ReflectionPrompts, p.Text)
		case PromptQuestion:
			out.ReflectionQuestions = append(out.ReflectionQuestions, p.Text)
		case PromptListing:
			out.ListingPrompts = append(out.ListingPrompts, p.Text)
		}
	}
	return out
}

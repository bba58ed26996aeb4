// Package domain contains the core entities for calm.
// These entities describe guided activities, the sessions that run them
// and the results they produce, independent of any terminal or storage.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors.
var (
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidTransition = errors.New("invalid session state transition")
	ErrInvalidActivity   = errors.New("invalid activity")
	ErrInterrupted       = errors.New("interrupted")
	ErrEmptyPromptSet    = errors.New("prompt set is empty")
	ErrEmptyPromptText   = errors.New("prompt text cannot be empty")
	ErrInvalidPromptKind = errors.New("invalid prompt kind")
	ErrPromptNotFound    = errors.New("prompt not found")
	ErrDuplicatePrompt   = errors.New("prompt already exists")
	ErrAmbiguousPromptID = errors.New("prompt id prefix matches more than one prompt")
)

// ActivityKind identifies one of the guided activity variants.
type ActivityKind string

const (
	ActivityBreathing  ActivityKind = "breathing"
	ActivityReflection ActivityKind = "reflection"
	ActivityListing    ActivityKind = "listing"
)

// ValidActivities lists all supported activities in menu order.
var ValidActivities = []ActivityKind{
	ActivityBreathing,
	ActivityReflection,
	ActivityListing,
}

// ValidateActivity checks if a string names a supported activity.
func ValidateActivity(s string) (ActivityKind, error) {
	k := ActivityKind(s)
	for _, valid := range ValidActivities {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of breathing, reflection, listing", ErrInvalidActivity, s)
}

// Label returns the display name of the activity.
func (k ActivityKind) Label() string {
	switch k {
	case ActivityBreathing:
		return "Breathing Activity"
	case ActivityReflection:
		return "Reflection Activity"
	case ActivityListing:
		return "Listing Activity"
	default:
		return "Unknown"
	}
}

// Tagline returns a one-line summary for menus.
func (k ActivityKind) Tagline() string {
	switch k {
	case ActivityBreathing:
		return "Slow, paced breathing"
	case ActivityReflection:
		return "Reflect on a time you showed strength"
	case ActivityListing:
		return "List good things before time runs out"
	default:
		return ""
	}
}

// Description returns the text shown before an activity begins.
func (k ActivityKind) Description() string {
	switch k {
	case ActivityBreathing:
		return "This activity will help you relax by walking you through breathing in and out slowly. " +
			"Clear your mind and focus on your breathing."
	case ActivityReflection:
		return "This activity will help you reflect on times in your life when you have shown strength and resilience. " +
			"This will help you recognize the power you have and how you can use it in other aspects of your life."
	case ActivityListing:
		return "This activity will help you reflect on the good things in your life by having you list " +
			"as many things as you can in a certain area."
	default:
		return ""
	}
}

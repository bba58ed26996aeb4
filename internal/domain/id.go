package domain

import "github.com/google/uuid"

// generateID creates a new unique identifier for sessions and prompts.
func generateID() string {
	return uuid.New().String()
}

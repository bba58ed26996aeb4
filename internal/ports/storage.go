package ports

import (
	"context"

	"github.com/xvierd/calm-cli/internal/domain"
)

// PromptRepository defines the interface for prompt library persistence.
// This is a driven port (implemented by adapters).
type PromptRepository interface {
	// Save persists a prompt to storage.
	Save(ctx context.Context, prompt *domain.Prompt) error

	// FindByID retrieves a prompt by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Prompt, error)

	// FindAll retrieves all prompts, optionally filtered by kind.
	FindAll(ctx context.Context, kind *domain.PromptKind) ([]*domain.Prompt, error)

	// FindByText does a fuzzy search over prompt text.
	FindByText(ctx context.Context, query string) ([]*domain.Prompt, error)

	// Delete removes a prompt from storage.
	Delete(ctx context.Context, id string) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Prompts provides access to the prompt library.
	Prompts() PromptRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}

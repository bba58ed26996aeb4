package ports

import (
	"context"

	"github.com/xvierd/calm-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// PromptLibrary provides prompt library access to the MCP server.
// This is a driven port (implemented by the services layer).
type PromptLibrary interface {
	// ListPrompts returns stored prompts, optionally filtered by kind.
	ListPrompts(ctx context.Context, kind *domain.PromptKind) ([]*domain.Prompt, error)

	// AddPrompt stores a new prompt.
	AddPrompt(ctx context.Context, kind domain.PromptKind, text string) (*domain.Prompt, error)

	// FindPrompts does a fuzzy search over stored prompts.
	FindPrompts(ctx context.Context, query string) ([]*domain.Prompt, error)

	// DeletePrompt removes a stored prompt.
	DeletePrompt(ctx context.Context, id string) error

	// Catalog returns the built-in sets merged with stored prompts.
	Catalog(ctx context.Context) (domain.PromptCatalog, error)
}

// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// PromptService handles prompt library use cases.
type PromptService struct {
	storage ports.Storage
}

// NewPromptService creates a new prompt service.
func NewPromptService(storage ports.Storage) *PromptService {
	return &PromptService{storage: storage}
}

// ListPrompts returns stored prompts, optionally filtered by kind.
func (s *PromptService) ListPrompts(ctx context.Context, kind *domain.PromptKind) ([]*domain.Prompt, error) {
	prompts, err := s.storage.Prompts().FindAll(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}

// AddPrompt validates and stores a new prompt.
func (s *PromptService) AddPrompt(ctx context.Context, kind domain.PromptKind, text string) (*domain.Prompt, error) {
	prompt, err := domain.NewPrompt(kind, text)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt: %w", err)
	}

	if err := s.storage.Prompts().Save(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to save prompt: %w", err)
	}

	return prompt, nil
}

// FindPrompts fuzzy-matches stored prompts against query.
func (s *PromptService) FindPrompts(ctx context.Context, query string) ([]*domain.Prompt, error) {
	return s.storage.Prompts().FindByText(ctx, query)
}

// DeletePrompt removes a stored prompt. id may be a unique prefix of the
// full ID, as shown by the prompt listing.
func (s *PromptService) DeletePrompt(ctx context.Context, id string) error {
	resolved, err := s.resolveID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	if err := s.storage.Prompts().Delete(ctx, resolved); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return nil
}

func (s *PromptService) resolveID(ctx context.Context, id string) (string, error) {
	_, err := s.storage.Prompts().FindByID(ctx, id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrPromptNotFound) {
		return "", err
	}
	if id == "" {
		return "", domain.ErrPromptNotFound
	}

	prompts, err := s.storage.Prompts().FindAll(ctx, nil)
	if err != nil {
		return "", err
	}
	var match string
	for _, p := range prompts {
		if !strings.HasPrefix(p.ID, id) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %q", domain.ErrAmbiguousPromptID, id)
		}
		match = p.ID
	}
	if match == "" {
		return "", domain.ErrPromptNotFound
	}
	return match, nil
}

// Catalog returns the built-in prompt sets with the stored prompts
// appended.
func (s *PromptService) Catalog(ctx context.Context) (domain.PromptCatalog, error) {
	stored, err := s.ListPrompts(ctx, nil)
	if err != nil {
		return domain.PromptCatalog{}, err
	}
	return domain.DefaultPromptCatalog().With(stored), nil
}

var _ ports.PromptLibrary = (*PromptService)(nil)

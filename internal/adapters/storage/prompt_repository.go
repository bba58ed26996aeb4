package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// promptRepository implements ports.PromptRepository using SQLite.
type promptRepository struct {
	db *sql.DB
}

// newPromptRepository creates a new prompt repository.
func newPromptRepository(db *sql.DB) ports.PromptRepository {
	return &promptRepository{db: db}
}

// Save persists a prompt to storage.
func (r *promptRepository) Save(ctx context.Context, prompt *domain.Prompt) error {
	query := `
		INSERT INTO prompts (id, kind, text, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		prompt.ID,
		string(prompt.Kind),
		prompt.Text,
		prompt.CreatedAt,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicatePrompt, prompt.Text)
	}
	if err != nil {
		return fmt.Errorf("failed to save prompt: %w", err)
	}

	return nil
}

// FindByID retrieves a prompt by its unique identifier.
func (r *promptRepository) FindByID(ctx context.Context, id string) (*domain.Prompt, error) {
	query := `
		SELECT id, kind, text, created_at
		FROM prompts
		WHERE id = ?
	`

	var prompt domain.Prompt
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&prompt.ID,
		&prompt.Kind,
		&prompt.Text,
		&prompt.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPromptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find prompt: %w", err)
	}

	return &prompt, nil
}

// FindAll retrieves all prompts in creation order, optionally filtered by
// kind.
func (r *promptRepository) FindAll(ctx context.Context, kind *domain.PromptKind) ([]*domain.Prompt, error) {
	var query string
	var args []any

	if kind != nil {
		query = `
			SELECT id, kind, text, created_at
			FROM prompts
			WHERE kind = ?
			ORDER BY created_at, rowid
		`
		args = append(args, string(*kind))
	} else {
		query = `
			SELECT id, kind, text, created_at
			FROM prompts
			ORDER BY created_at, rowid
		`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var prompts []*domain.Prompt
	for rows.Next() {
		var prompt domain.Prompt
		if err := rows.Scan(&prompt.ID, &prompt.Kind, &prompt.Text, &prompt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, &prompt)
	}

	return prompts, rows.Err()
}

// FindByText does a fuzzy search over prompt text, best match first.
func (r *promptRepository) FindByText(ctx context.Context, query string) ([]*domain.Prompt, error) {
	prompts, err := r.FindAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompts for fuzzy search: %w", err)
	}

	texts := make([]string, len(prompts))
	for i, prompt := range prompts {
		texts[i] = prompt.Text
	}

	var result []*domain.Prompt
	for _, match := range fuzzy.Find(query, texts) {
		result = append(result, prompts[match.Index])
	}

	return result, nil
}

// Delete removes a prompt from storage.
func (r *promptRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrPromptNotFound
	}

	return nil
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xvierd/calm-cli/internal/adapters/storage"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return store, func() { _ = store.Close() }
}

func TestPromptService_AddPrompt(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewPromptService(store)
	ctx := context.Background()

	t.Run("add valid prompt", func(t *testing.T) {
		prompt, err := service.AddPrompt(ctx, domain.PromptListing, "  Which books changed you?  ")
		if err != nil {
			t.Fatalf("AddPrompt() error = %v", err)
		}
		if prompt.Text != "Which books changed you?" {
			t.Errorf("AddPrompt() text = %q, want trimmed text", prompt.Text)
		}
		if prompt.ID == "" {
			t.Error("AddPrompt() returned prompt without ID")
		}
	})

	t.Run("add empty prompt", func(t *testing.T) {
		_, err := service.AddPrompt(ctx, domain.PromptListing, "   ")
		if !errors.Is(err, domain.ErrEmptyPromptText) {
			t.Errorf("AddPrompt() error = %v, want ErrEmptyPromptText", err)
		}
	})

	t.Run("add prompt with invalid kind", func(t *testing.T) {
		_, err := service.AddPrompt(ctx, domain.PromptKind("haiku"), "Five syllables")
		if !errors.Is(err, domain.ErrInvalidPromptKind) {
			t.Errorf("AddPrompt() error = %v, want ErrInvalidPromptKind", err)
		}
	})

	t.Run("add duplicate prompt", func(t *testing.T) {
		_, err := service.AddPrompt(ctx, domain.PromptListing, "Which books changed you?")
		if !errors.Is(err, domain.ErrDuplicatePrompt) {
			t.Errorf("AddPrompt() error = %v, want ErrDuplicatePrompt", err)
		}
	})
}

func TestPromptService_ListFindDelete(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewPromptService(store)
	ctx := context.Background()

	listing, _ := service.AddPrompt(ctx, domain.PromptListing, "Which friends do you miss?")
	_, _ = service.AddPrompt(ctx, domain.PromptQuestion, "What would you do again?")

	kind := domain.PromptListing
	prompts, err := service.ListPrompts(ctx, &kind)
	if err != nil {
		t.Fatalf("ListPrompts() error = %v", err)
	}
	if len(prompts) != 1 || prompts[0].ID != listing.ID {
		t.Errorf("ListPrompts(listing) = %v, want only %s", prompts, listing.ID)
	}

	found, err := service.FindPrompts(ctx, "friends")
	if err != nil {
		t.Fatalf("FindPrompts() error = %v", err)
	}
	if len(found) != 1 || found[0].ID != listing.ID {
		t.Errorf("FindPrompts(friends) returned %d prompts", len(found))
	}

	if err := service.DeletePrompt(ctx, listing.ID); err != nil {
		t.Errorf("DeletePrompt() error = %v", err)
	}
	if err := service.DeletePrompt(ctx, listing.ID); !errors.Is(err, domain.ErrPromptNotFound) {
		t.Errorf("DeletePrompt() twice error = %v, want ErrPromptNotFound", err)
	}
}

func TestPromptService_DeleteByPrefix(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewPromptService(store)
	ctx := context.Background()

	for _, p := range []*domain.Prompt{
		{ID: "abc-111", Kind: domain.PromptListing, Text: "Which songs lift you?", CreatedAt: time.Now()},
		{ID: "abc-222", Kind: domain.PromptListing, Text: "Which meals comfort you?", CreatedAt: time.Now()},
		{ID: "def-333", Kind: domain.PromptListing, Text: "Which walks calm you?", CreatedAt: time.Now()},
	} {
		if err := store.Prompts().Save(ctx, p); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	if err := service.DeletePrompt(ctx, "abc"); !errors.Is(err, domain.ErrAmbiguousPromptID) {
		t.Errorf("DeletePrompt(abc) error = %v, want ErrAmbiguousPromptID", err)
	}
	if err := service.DeletePrompt(ctx, "def"); err != nil {
		t.Errorf("DeletePrompt(def) error = %v", err)
	}
	if err := service.DeletePrompt(ctx, "zzz"); !errors.Is(err, domain.ErrPromptNotFound) {
		t.Errorf("DeletePrompt(zzz) error = %v, want ErrPromptNotFound", err)
	}
	if err := service.DeletePrompt(ctx, ""); !errors.Is(err, domain.ErrPromptNotFound) {
		t.Errorf("DeletePrompt(\"\") error = %v, want ErrPromptNotFound", err)
	}

	prompts, _ := service.ListPrompts(ctx, nil)
	if len(prompts) != 2 {
		t.Errorf("prompts left = %d, want 2", len(prompts))
	}
}

func TestPromptService_Catalog(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewPromptService(store)
	ctx := context.Background()

	builtin := domain.DefaultPromptCatalog()

	catalog, err := service.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if len(catalog.ListingPrompts) != len(builtin.ListingPrompts) {
		t.Errorf("Catalog() with empty library has %d listing prompts, want %d", len(catalog.ListingPrompts), len(builtin.ListingPrompts))
	}

	_, _ = service.AddPrompt(ctx, domain.PromptListing, "Which smells remind you of home?")
	_, _ = service.AddPrompt(ctx, domain.PromptReflection, "Think of a time you asked for help.")

	catalog, err = service.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if got := catalog.ListingPrompts[len(catalog.ListingPrompts)-1]; got != "Which smells remind you of home?" {
		t.Errorf("last listing prompt = %q, want stored prompt appended", got)
	}
	if len(catalog.ReflectionPrompts) != len(builtin.ReflectionPrompts)+1 {
		t.Errorf("Catalog() has %d reflection prompts, want %d", len(catalog.ReflectionPrompts), len(builtin.ReflectionPrompts)+1)
	}
	if len(catalog.ReflectionQuestions) != len(builtin.ReflectionQuestions) {
		t.Errorf("Catalog() changed reflection questions")
	}
}

func TestSessionService_UsesStoredPrompts(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	library := NewPromptService(store)
	ctx := context.Background()
	if _, err := library.AddPrompt(ctx, domain.PromptListing, "Which trees do you know?"); err != nil {
		t.Fatalf("AddPrompt() error = %v", err)
	}

	f := newSessionFixture()
	f.service.prompts = library
	// the stored prompt lands after the five built-in listing prompts
	f.service.random = &fixedRandom{index: 5}

	summary, err := f.service.Run(ctx, variant(t, domain.ActivityListing), RunOptions{Duration: time.Second})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Result.Prompt != "Which trees do you know?" {
		t.Errorf("Run() prompt = %q, want stored prompt", summary.Result.Prompt)
	}
}

type fixedRandom struct {
	index int
}

func (r *fixedRandom) IntN(n int) int {
	return r.index % n
}

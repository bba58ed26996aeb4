// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/calm-cli/internal/activity"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

const timeFormat = "2006-01-02T15:04:05"

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server  *server.MCPServer
	library ports.PromptLibrary
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(library ports.PromptLibrary) *Server {
	s := &Server{
		library: library,
	}

	s.server = server.NewMCPServer(
		"calm",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"list_activities",
			mcp.WithDescription("List the guided activities calm can run, with their descriptions"),
		),
		s.handleListActivities,
	)

	listPromptsTool := mcp.NewTool(
		"list_prompts",
		mcp.WithDescription("List the prompts available to activities, optionally filtered by kind"),
		mcp.WithString(
			"kind",
			mcp.Description("Filter by prompt kind"),
			mcp.Enum(promptKindNames()...),
		),
		mcp.WithBoolean(
			"include_builtin",
			mcp.Description("Also list the built-in prompts (default: false)"),
		),
	)
	s.server.AddTool(listPromptsTool, s.handleListPrompts)

	addPromptTool := mcp.NewTool(
		"add_prompt",
		mcp.WithDescription("Add a prompt to the library used by the reflection and listing activities"),
		mcp.WithString(
			"kind",
			mcp.Required(),
			mcp.Description("The prompt kind"),
			mcp.Enum(promptKindNames()...),
		),
		mcp.WithString(
			"text",
			mcp.Required(),
			mcp.Description("The prompt text"),
		),
	)
	s.server.AddTool(addPromptTool, s.handleAddPrompt)

	findPromptsTool := mcp.NewTool(
		"find_prompts",
		mcp.WithDescription("Fuzzy search the stored prompts"),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Text to search for"),
		),
	)
	s.server.AddTool(findPromptsTool, s.handleFindPrompts)

	deletePromptTool := mcp.NewTool(
		"delete_prompt",
		mcp.WithDescription("Delete a stored prompt"),
		mcp.WithString(
			"id",
			mcp.Required(),
			mcp.Description("The ID of the prompt to delete"),
		),
	)
	s.server.AddTool(deletePromptTool, s.handleDeletePrompt)
}

func promptKindNames() []string {
	names := make([]string, len(domain.ValidPromptKinds))
	for i, k := range domain.ValidPromptKinds {
		names[i] = string(k)
	}
	return names
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func (s *Server) handleListActivities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var activities []map[string]any
	for i, v := range activity.Catalog() {
		activities = append(activities, map[string]any{
			"menu_number": i + 1,
			"kind":        string(v.Kind),
			"name":        v.Name,
			"description": v.Description,
		})
	}

	return jsonResult(map[string]any{
		"activities":  activities,
		"total_count": len(activities),
	})
}

func (s *Server) handleListPrompts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var kind *domain.PromptKind
	if name := request.GetString("kind", ""); name != "" {
		k, err := domain.ValidatePromptKind(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kind = &k
	}

	prompts, err := s.library.ListPrompts(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}

	stored := make([]map[string]any, 0, len(prompts))
	for _, p := range prompts {
		stored = append(stored, promptData(p))
	}
	result := map[string]any{
		"prompts":     stored,
		"total_count": len(stored),
	}
	if kind != nil {
		result["filter_kind"] = string(*kind)
	}

	if request.GetBool("include_builtin", false) {
		builtin := map[string][]string{}
		catalog := domain.DefaultPromptCatalog()
		sets := map[domain.PromptKind]domain.PromptSet{
			domain.PromptReflection: catalog.ReflectionPrompts,
			domain.PromptQuestion:   catalog.ReflectionQuestions,
			domain.PromptListing:    catalog.ListingPrompts,
		}
		for k, set := range sets {
			if kind == nil || *kind == k {
				builtin[string(k)] = set
			}
		}
		result["builtin"] = builtin
	}

	return jsonResult(result)
}

func (s *Server) handleAddPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prompt, err := s.library.AddPrompt(ctx, domain.PromptKind(name), text)
	if err != nil {
		if isUserError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, fmt.Errorf("failed to add prompt: %w", err)
	}

	return jsonResult(map[string]any{
		"message": "Prompt added",
		"prompt":  promptData(prompt),
	})
}

func (s *Server) handleFindPrompts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prompts, err := s.library.FindPrompts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find prompts: %w", err)
	}

	matches := make([]map[string]any, 0, len(prompts))
	for _, p := range prompts {
		matches = append(matches, promptData(p))
	}

	return jsonResult(map[string]any{
		"query":       query,
		"prompts":     matches,
		"total_count": len(matches),
	})
}

func (s *Server) handleDeletePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.library.DeletePrompt(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPromptNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("prompt %s not found", id)), nil
		}
		return nil, fmt.Errorf("failed to delete prompt: %w", err)
	}

	return jsonResult(map[string]any{
		"message": "Prompt deleted",
		"id":      id,
	})
}

func isUserError(err error) bool {
	return errors.Is(err, domain.ErrEmptyPromptText) ||
		errors.Is(err, domain.ErrInvalidPromptKind) ||
		errors.Is(err, domain.ErrDuplicatePrompt)
}

func promptData(p *domain.Prompt) map[string]any {
	return map[string]any{
		"id":         p.ID,
		"kind":       string(p.Kind),
		"text":       p.Text,
		"created_at": p.CreatedAt.Format(timeFormat),
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

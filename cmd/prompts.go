package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/adapters/tui"
	"github.com/xvierd/calm-cli/internal/domain"
)

var (
	promptKindFlag string
)

// promptsCmd groups the prompt library commands.
var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage your own reflection and listing prompts",
	Long: `Prompts you add here are drawn alongside the built-in ones.

Kinds:
  reflection_prompt     the scenario shown at the start of a reflection
  reflection_question   the questions asked while reflecting
  listing_prompt        the topic of a listing session`,
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored prompts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var kind *domain.PromptKind
		if promptKindFlag != "" {
			k, err := domain.ValidatePromptKind(promptKindFlag)
			if err != nil {
				return err
			}
			kind = &k
		}

		prompts, err := app.prompts.ListPrompts(ctx, kind)
		if err != nil {
			return err
		}
		return printPrompts(cmd, prompts)
	},
}

var promptsAddCmd = &cobra.Command{
	Use:   "add --kind <kind> [text]",
	Short: "Add a prompt to the library",
	Long: `Add a prompt to the library. When no text is given and stdin is a
terminal you are asked for it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		kind, err := domain.ValidatePromptKind(promptKindFlag)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			if !term.IsTerminal(os.Stdin.Fd()) {
				return domain.ErrEmptyPromptText
			}
			result := tui.RunTextPrompt("Prompt text:", "e.g. Who made you smile today?", &app.config.Theme)
			if result.Aborted {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			text = result.Value
		}

		prompt, err := app.prompts.AddPrompt(ctx, kind, text)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), newPromptOutput(prompt))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s: %s\n", prompt.Kind, tui.ShortID(prompt.ID), prompt.Text)
		return nil
	},
}

var promptsFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy search stored prompts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompts, err := app.prompts.FindPrompts(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printPrompts(cmd, prompts)
	},
}

var promptsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored prompt",
	Long:  `Delete a stored prompt by its ID or a unique prefix of it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if err := app.prompts.DeletePrompt(context.Background(), id); err != nil {
			if errors.Is(err, domain.ErrPromptNotFound) {
				return fmt.Errorf("prompt not found: %s", id)
			}
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"deleted": true, "id": id})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Prompt %s deleted.\n", id)
		return nil
	},
}

func init() {
	promptsListCmd.Flags().StringVarP(&promptKindFlag, "kind", "k", "", "Only list prompts of this kind")
	promptsAddCmd.Flags().StringVarP(&promptKindFlag, "kind", "k", "", "Prompt kind (required)")
	_ = promptsAddCmd.MarkFlagRequired("kind")

	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsAddCmd)
	promptsCmd.AddCommand(promptsFindCmd)
	promptsCmd.AddCommand(promptsDeleteCmd)
}

// promptOutput is the --json shape of a stored prompt.
type promptOutput struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

func newPromptOutput(p *domain.Prompt) promptOutput {
	return promptOutput{
		ID:        p.ID,
		Kind:      string(p.Kind),
		Text:      p.Text,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}

func printPrompts(cmd *cobra.Command, prompts []*domain.Prompt) error {
	if jsonOutput {
		out := make([]promptOutput, 0, len(prompts))
		for _, p := range prompts {
			out = append(out, newPromptOutput(p))
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderPrompts(prompts, &app.config.Theme))
	return nil
}

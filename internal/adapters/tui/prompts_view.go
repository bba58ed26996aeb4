package tui

import (
	"fmt"
	"strings"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/domain"
)

const idWidth = 8

// RenderPrompts formats stored prompts grouped by kind, one per line with
// a short ID prefix.
func RenderPrompts(prompts []*domain.Prompt, theme *config.ThemeConfig) string {
	st := newStyles(resolveTheme(theme))
	if len(prompts) == 0 {
		return st.dim.Render("No prompts stored yet. Add one with: calm prompts add --kind <kind> <text>") + "\n"
	}

	var b strings.Builder
	for _, kind := range domain.ValidPromptKinds {
		var group []*domain.Prompt
		for _, p := range prompts {
			if p.Kind == kind {
				group = append(group, p)
			}
		}
		if len(group) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(st.title.Render(fmt.Sprintf("%s (%d)", kind, len(group))) + "\n")
		for _, p := range group {
			b.WriteString(fmt.Sprintf("  %s  %s\n", st.accent.Render(ShortID(p.ID)), p.Text))
		}
	}
	return b.String()
}

// ShortID truncates a prompt ID for display.
func ShortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}

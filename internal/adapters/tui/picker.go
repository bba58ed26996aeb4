package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/calm-cli/internal/config"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction.
type PickerResult struct {
	Index   int
	Aborted bool
}

type pickerModel struct {
	title   string
	items   []PickerItem
	footer  string
	cursor  int
	chosen  bool
	aborted bool
	theme   config.ThemeConfig
}

func newPickerModel(title string, items []PickerItem, footer string, theme *config.ThemeConfig) pickerModel {
	return pickerModel{
		title:  title,
		items:  items,
		footer: footer,
		theme:  resolveTheme(theme),
	}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := keyMsg.String(); s {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = true
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	default:
		// Digits pick the numbered entry directly.
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(m.items) {
			m.cursor = n - 1
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	st := newStyles(m.theme)

	b.WriteString("\n")
	title := m.title
	if m.theme.IconApp != "" {
		title = m.theme.IconApp + " " + title
	}
	b.WriteString(st.title.Render("  "+title) + "\n\n")

	for i, item := range m.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i == m.cursor {
			arrow := st.selected.Render("▸")
			line := st.selected.Render(fmt.Sprintf(" %-24s", label))
			b.WriteString(fmt.Sprintf("  %s%s %s\n", arrow, line, st.accent.Render(item.Desc)))
		} else {
			b.WriteString(st.dim.Render(fmt.Sprintf("    %-24s %s", label, item.Desc)) + "\n")
		}
	}

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(st.dim.Render("  "+m.footer) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(st.dim.Render("  ↑/↓ navigate · 1-"+strconv.Itoa(len(m.items))+" pick · enter select · esc quit") + "\n")

	return b.String()
}

// RunPicker launches an interactive arrow-key picker and returns the selected index.
func RunPicker(title string, items []PickerItem, footer string, theme *config.ThemeConfig) PickerResult {
	p := tea.NewProgram(newPickerModel(title, items, footer, theme))
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}
	return pickerOutcome(result.(pickerModel))
}

func pickerOutcome(final pickerModel) PickerResult {
	if final.aborted || !final.chosen {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.cursor}
}

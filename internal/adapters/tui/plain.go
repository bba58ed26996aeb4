package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xvierd/calm-cli/internal/ports"
)

// MenuPrompt is printed after the plain menu entries.
const MenuPrompt = "Select a choice from the menu: "

// RunPlainMenu prints the numbered items and reads one choice per line
// until a valid number is entered. Keyboard errors end the menu.
func RunPlainMenu(screen ports.Screen, keyboard ports.Keyboard, title string, items []PickerItem) (PickerResult, error) {
	for {
		var b strings.Builder
		if title != "" {
			b.WriteString("\n" + title + "\n")
		}
		b.WriteString("\nMenu Options:\n")
		for i, item := range items {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, item.Label)
		}
		b.WriteString(MenuPrompt)
		screen.Write(b.String())

		line, err := keyboard.ReadLine()
		if err != nil {
			return PickerResult{Aborted: true}, err
		}

		if n, ok := parseChoice(line, len(items)); ok {
			return PickerResult{Index: n - 1}, nil
		}
		screen.Write("Invalid selection.\n")
	}
}

func parseChoice(line string, count int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > count {
		return 0, false
	}
	return n, true
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/activity"
	"github.com/xvierd/calm-cli/internal/adapters/tui"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
	"github.com/xvierd/calm-cli/internal/services"
)

const goodbye = "Goodbye, take care!\n"

// menuItems lists the variants followed by Quit.
func menuItems(variants []activity.Variant) []tui.PickerItem {
	items := make([]tui.PickerItem, 0, len(variants)+1)
	for _, v := range variants {
		items = append(items, tui.PickerItem{Label: v.Name, Desc: v.Kind.Tagline()})
	}
	return append(items, tui.PickerItem{Label: "Quit", Desc: "Leave calm"})
}

// runMenu implements the menu loop for bare "calm".
func runMenu(cmd *cobra.Command, args []string) error {
	ctx, cancel := setupSignalHandler()
	defer cancel()

	variants := activity.Catalog()
	items := menuItems(variants)

	if plainMode || !term.IsTerminal(os.Stdin.Fd()) {
		return runPlainMenu(ctx, cmd.OutOrStdout(), variants, items)
	}

	out := cmd.OutOrStdout()
	for {
		result := tui.RunPicker("calm", items, "Ctrl+C during a session returns here", &app.config.Theme)
		if result.Aborted || result.Index >= len(variants) {
			fmt.Fprint(out, goodbye)
			return nil
		}

		keepGoing, err := runMenuSession(ctx, out, variants[result.Index])
		if err != nil {
			return err
		}
		if !keepGoing {
			fmt.Fprint(out, goodbye)
			return nil
		}
	}
}

// runMenuSession runs one variant on a freshly opened terminal so the
// picker has stdin to itself between sessions.
func runMenuSession(ctx context.Context, out io.Writer, v activity.Variant) (bool, error) {
	t, closeTerm, err := openTerminal(ctx, out)
	if err != nil {
		return false, err
	}
	defer closeTerm()

	_, err = newSessionService(t, t).Run(ctx, v, services.RunOptions{AwaitReturn: true})
	return afterSession(ctx, t, err), nil
}

func runPlainMenu(ctx context.Context, out io.Writer, variants []activity.Variant, items []tui.PickerItem) error {
	t, closeTerm, err := openTerminal(ctx, out)
	if err != nil {
		return err
	}
	defer closeTerm()

	svc := newSessionService(t, t)
	for {
		result, err := tui.RunPlainMenu(t, t, "", items)
		if err != nil {
			if !menuInputClosed(ctx, err) {
				return fmt.Errorf("failed to read menu choice: %w", err)
			}
			t.Write("\n" + goodbye)
			return nil
		}
		if result.Index >= len(variants) {
			t.Write(goodbye)
			return nil
		}

		_, err = svc.Run(ctx, variants[result.Index], services.RunOptions{AwaitReturn: true})
		if !afterSession(ctx, t, err) {
			t.Write("\n" + goodbye)
			return nil
		}
	}
}

// afterSession reports a failed session and tells the menu whether to
// offer another one. Collaborator faults are shown and the menu carries on.
func afterSession(ctx context.Context, screen ports.Screen, err error) bool {
	switch {
	case err == nil:
		return true
	case ctx.Err() != nil || errors.Is(err, io.EOF):
		return false
	case errors.Is(err, domain.ErrInterrupted):
		screen.Write("\nSession interrupted.\n")
		return true
	default:
		app.logger.Error("session failed", "error", err)
		screen.Write(fmt.Sprintf("\nError: %v\n", err))
		return true
	}
}

// menuInputClosed reports whether a failed menu read means the user is
// leaving: stdin closed, Ctrl+C at the menu or a termination signal.
func menuInputClosed(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, domain.ErrInterrupted)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/activity"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/services"
)

var (
	breatheCmd = newActivityCmd(domain.ActivityBreathing, "breathe", "Run the breathing activity")
	reflectCmd = newActivityCmd(domain.ActivityReflection, "reflect", "Run the reflection activity")
	listCmd    = newActivityCmd(domain.ActivityListing, "list", "Run the listing activity")
)

// newActivityCmd builds the command that runs one variant directly.
func newActivityCmd(kind domain.ActivityKind, use, short string) *cobra.Command {
	var seconds int

	c := &cobra.Command{
		Use:   use,
		Short: short,
		Long: kind.Description() + `

Without --duration you are asked for the session length in seconds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivity(cmd, kind, seconds)
		},
	}
	c.Flags().IntVarP(&seconds, "duration", "d", 0, "Session length in seconds (asked for when omitted)")
	return c
}

func runActivity(cmd *cobra.Command, kind domain.ActivityKind, seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("%w: --duration must be a positive number of seconds", domain.ErrInvalidDuration)
	}
	if seconds > domain.MaxDurationSeconds {
		return fmt.Errorf("%w: --duration may be at most %d seconds", domain.ErrInvalidDuration, domain.MaxDurationSeconds)
	}

	v, err := activity.ForKind(kind)
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler()
	defer cancel()

	// With --json the session draws on stderr so stdout carries only the summary.
	out := cmd.OutOrStdout()
	if jsonOutput {
		out = cmd.ErrOrStderr()
	}

	t, closeTerm, err := openTerminal(ctx, out)
	if err != nil {
		return err
	}

	summary, err := newSessionService(t, t).Run(ctx, v, services.RunOptions{
		Duration: time.Duration(seconds) * time.Second,
	})
	closeTerm()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), newSummaryOutput(summary))
	}
	return nil
}

// summaryOutput is the --json shape of a finished session.
type summaryOutput struct {
	SessionID        string   `json:"session_id"`
	Activity         string   `json:"activity"`
	Name             string   `json:"name"`
	RequestedSeconds int      `json:"requested_seconds"`
	ElapsedSeconds   float64  `json:"elapsed_seconds"`
	Prompt           string   `json:"prompt,omitempty"`
	BreathPhases     int      `json:"breath_phases,omitempty"`
	Questions        []string `json:"questions,omitempty"`
	Items            []string `json:"items,omitempty"`
	ItemCount        *int     `json:"item_count,omitempty"`
}

func newSummaryOutput(s *domain.Summary) summaryOutput {
	out := summaryOutput{
		SessionID:        s.SessionID,
		Activity:         string(s.Activity),
		Name:             s.Name,
		RequestedSeconds: int(s.Requested / time.Second),
		ElapsedSeconds:   float64(s.Elapsed.Round(100*time.Millisecond)) / float64(time.Second),
		Prompt:           s.Result.Prompt,
		BreathPhases:     len(s.Result.Phases),
		Questions:        s.Result.Questions,
	}
	if s.Activity == domain.ActivityListing {
		count := len(s.Result.Items)
		out.ItemCount = &count
		for _, item := range s.Result.Items {
			out.Items = append(out.Items, item.Text)
		}
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

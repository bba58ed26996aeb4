// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string) error
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg: cfg,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.send(title, message)
}

// NotifySessionComplete announces a finished activity.
func (n *Notifier) NotifySessionComplete(summary *domain.Summary) error {
	title := fmt.Sprintf("%s complete", summary.Name)
	return n.Notify(title, CompletionMessage(summary))
}

// CompletionMessage returns the notification body for a summary.
func CompletionMessage(summary *domain.Summary) string {
	seconds := int(summary.Requested.Seconds())
	switch summary.Activity {
	case domain.ActivityListing:
		return fmt.Sprintf("You listed %s in %d seconds.", domain.CountLabel(len(summary.Result.Items)), seconds)
	case domain.ActivityReflection:
		return fmt.Sprintf("You reflected on %d questions in %d seconds.", len(summary.Result.Questions), seconds)
	default:
		return fmt.Sprintf("You breathed mindfully for %d seconds.", seconds)
	}
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

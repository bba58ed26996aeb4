package ports

import "github.com/xvierd/calm-cli/internal/domain"

// Notifier announces finished sessions outside the terminal.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// NotifySessionComplete is called once a session reaches Complete.
	NotifySessionComplete(summary *domain.Summary) error
}

// Package collector gathers free-text lines from a raw keyboard while a
// deadline runs. It never blocks on a line read: every cycle checks the
// remaining time first, then polls for a single key.
package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
	"github.com/xvierd/calm-cli/internal/render"
)

// DefaultPollInterval is used when no poll interval is configured.
const DefaultPollInterval = 50 * time.Millisecond

// State is the poll loop state.
type State int

const (
	// WaitingForKey means the line buffer is empty.
	WaitingForKey State = iota
	// Editing means at least one rune has been typed since the last commit.
	Editing
)

// String returns the state name.
func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "waiting_for_key"
}

// Result is what a collection run produced.
type Result struct {
	Items []domain.CollectedItem
}

// Collector runs the keystroke poll loop.
type Collector struct {
	screen   ports.Screen
	keyboard ports.Keyboard
	clock    ports.Clock
	poll     time.Duration

	state  State
	buffer []rune
	items  []domain.CollectedItem
}

// New creates a collector polling every poll interval.
func New(screen ports.Screen, keyboard ports.Keyboard, clock ports.Clock, poll time.Duration) *Collector {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Collector{
		screen:   screen,
		keyboard: keyboard,
		clock:    clock,
		poll:     poll,
	}
}

// State returns the current loop state.
func (c *Collector) State() State { return c.state }

// Collect polls for keys until remaining reports zero, then commits any
// non-blank partial line as the last item. A keyboard error or a cancelled
// context stops the loop early; the items gathered so far are returned with
// the error.
func (c *Collector) Collect(ctx context.Context, remaining func() time.Duration) (Result, error) {
	c.reset()

	for {
		left := remaining()
		if left <= 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return c.finish(), err
		}

		if !c.keyboard.KeyAvailable() {
			c.clock.Sleep(min(c.poll, left))
			continue
		}

		key, err := c.keyboard.ReadKey()
		if err != nil {
			return c.finish(), fmt.Errorf("failed to read key: %w", err)
		}
		c.handle(key)
	}

	return c.finish(), nil
}

func (c *Collector) reset() {
	c.state = WaitingForKey
	c.buffer = c.buffer[:0]
	c.items = nil
}

func (c *Collector) handle(key ports.Key) {
	switch key.Kind {
	case ports.KeyEnter:
		c.commit()
		c.screen.Write("\n")
	case ports.KeyBackspace:
		if c.state == WaitingForKey {
			return
		}
		last := c.buffer[len(c.buffer)-1]
		c.buffer = c.buffer[:len(c.buffer)-1]
		c.screen.EraseLast(max(render.FrameWidth(string(last)), 1))
		if len(c.buffer) == 0 {
			c.state = WaitingForKey
		}
	case ports.KeyPrintable:
		c.buffer = append(c.buffer, key.Char)
		c.state = Editing
		c.screen.Write(string(key.Char))
	}
}

// commit turns the buffer into an item when it holds more than whitespace
// and empties it either way.
func (c *Collector) commit() {
	if item, ok := domain.NewCollectedItem(string(c.buffer), c.clock.Now()); ok {
		c.items = append(c.items, item)
	}
	c.buffer = c.buffer[:0]
	c.state = WaitingForKey
}

func (c *Collector) finish() Result {
	if c.state == Editing {
		c.commit()
		c.screen.Write("\n")
	}
	return Result{Items: c.items}
}

// Report formats the end-of-collection message: the item count and the
// first limit items, 1-indexed.
func Report(items []domain.CollectedItem, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Time's up! You listed %s.\n", domain.CountLabel(len(items)))
	if len(items) == 0 || limit <= 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Here's what you listed (first %d shown):\n", limit)
	for i, item := range items {
		if i == limit {
			break
		}
		fmt.Fprintf(&b, " %d. %s\n", i+1, item.Text)
	}
	return b.String()
}

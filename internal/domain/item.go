package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CollectedItem is one committed line of free-text input from the listing
// activity.
type CollectedItem struct {
	Text        string    `json:"text"`
	CommittedAt time.Time `json:"committed_at"`
}

// NewCollectedItem trims raw input and returns an item for it. The second
// return value is false when nothing but whitespace was typed.
func NewCollectedItem(raw string, at time.Time) (CollectedItem, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return CollectedItem{}, false
	}
	return CollectedItem{Text: text, CommittedAt: at}, true
}

// CountLabel returns "1 item" or "N items".
func CountLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// MaxDurationSeconds is the longest session length that fits a time.Duration.
const MaxDurationSeconds = int(math.MaxInt64 / int64(time.Second))

// ParseDurationInput parses a whole number of seconds typed at the duration
// prompt. Anything other than a positive integer is rejected.
func ParseDurationInput(input string) (time.Duration, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidDuration, input)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: %d is not positive", ErrInvalidDuration, seconds)
	}
	if seconds > MaxDurationSeconds {
		return 0, fmt.Errorf("%w: %d is too long", ErrInvalidDuration, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

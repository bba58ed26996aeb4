package terminal

import (
	"math/rand/v2"
	"time"

	"github.com/xvierd/calm-cli/internal/ports"
)

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time. The value carries a monotonic reading, so
// differences between two calls are immune to wall clock changes.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep pauses the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

var _ ports.Clock = SystemClock{}

// NewRandom returns the source prompts and questions are drawn from. A
// non-zero seed makes the draws repeatable.
func NewRandom(seed uint64) ports.Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

package render

import (
	"time"

	"github.com/xvierd/calm-cli/internal/ports"
)

// Renderer draws spinner and countdown animations on a Screen, sleeping on
// a Clock between frames. Callers clamp intervals to the remaining budget.
type Renderer struct {
	screen ports.Screen
	clock  ports.Clock
	tick   time.Duration
	unit   time.Duration
}

// New creates a renderer. tick is the spinner cadence and unit the length of
// one countdown step.
func New(screen ports.Screen, clock ports.Clock, tick, unit time.Duration) *Renderer {
	if tick <= 0 {
		tick = 200 * time.Millisecond
	}
	if unit <= 0 {
		unit = time.Second
	}
	return &Renderer{screen: screen, clock: clock, tick: tick, unit: unit}
}

// Unit returns the length of one countdown step.
func (r *Renderer) Unit() time.Duration { return r.unit }

// SpinnerTicks returns how many frames a spinner of the given interval
// draws: ceil(interval / tick).
func SpinnerTicks(interval, tick time.Duration) int {
	if interval <= 0 || tick <= 0 {
		return 0
	}
	return int((interval + tick - 1) / tick)
}

// Spinner rotates the glyph in one cell for interval and returns the number
// of frames drawn. The final frame only sleeps what is left of interval, so
// the total sleep never exceeds it.
func (r *Renderer) Spinner(interval time.Duration) int {
	ticks := SpinnerTicks(interval, r.tick)
	var slept time.Duration
	for i := 0; i < ticks; i++ {
		frame := SpinnerFrame(i)
		r.screen.Write(frame)

		d := r.tick
		if rest := interval - slept; rest < d {
			d = rest
		}
		r.clock.Sleep(d)
		slept += d

		r.screen.EraseLast(FrameWidth(frame))
	}
	return ticks
}

// Countdown shows n, n-1, ... 1, one value per unit, erasing each value
// before the next. Non-positive n draws nothing.
func (r *Renderer) Countdown(n int) {
	for i := n; i >= 1; i-- {
		frame := CountdownFrame(i)
		r.screen.Write(frame)
		r.clock.Sleep(r.unit)
		r.screen.EraseLast(FrameWidth(frame))
	}
}

// WholeUnits rounds d down to a number of countdown steps.
func (r *Renderer) WholeUnits(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / r.unit)
}

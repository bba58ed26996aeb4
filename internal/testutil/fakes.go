// Package testutil provides scripted fakes of the terminal, clock and
// randomness ports so session behaviour can be tested in virtual time.
package testutil

import (
	"errors"
	"strings"
	"time"

	"github.com/xvierd/calm-cli/internal/ports"
)

// Epoch is the instant every FakeClock starts at.
var Epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// ErrNoInput is returned when a scripted keyboard runs out of lines.
var ErrNoInput = errors.New("no scripted input left")

// FakeClock is a virtual clock. Sleep advances it instantly.
type FakeClock struct {
	now    time.Time
	Sleeps []time.Duration
}

// NewFakeClock returns a clock set to Epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: Epoch}
}

// Now returns the virtual time.
func (c *FakeClock) Now() time.Time { return c.now }

// Sleep advances the virtual time by d.
func (c *FakeClock) Sleep(d time.Duration) {
	c.Sleeps = append(c.Sleeps, d)
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

// Advance moves the clock without recording a sleep.
func (c *FakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Since returns the virtual time elapsed since Epoch.
func (c *FakeClock) Since() time.Duration { return c.now.Sub(Epoch) }

var _ ports.Clock = (*FakeClock)(nil)

// ScreenOp is one recorded screen operation.
type ScreenOp struct {
	Op   string // "write", "erase" or "clear"
	Text string
	N    int
}

// FakeScreen records everything written to it.
type FakeScreen struct {
	Ops []ScreenOp
	out strings.Builder
}

// Write records text.
func (s *FakeScreen) Write(text string) {
	s.Ops = append(s.Ops, ScreenOp{Op: "write", Text: text})
	s.out.WriteString(text)
}

// EraseLast records an erase of n cells.
func (s *FakeScreen) EraseLast(n int) {
	s.Ops = append(s.Ops, ScreenOp{Op: "erase", N: n})
}

// ClearScreen records a clear.
func (s *FakeScreen) ClearScreen() {
	s.Ops = append(s.Ops, ScreenOp{Op: "clear"})
}

// Output returns the concatenation of all written text.
func (s *FakeScreen) Output() string { return s.out.String() }

// Writes returns only the written texts, in order.
func (s *FakeScreen) Writes() []string {
	var texts []string
	for _, op := range s.Ops {
		if op.Op == "write" {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

var _ ports.Screen = (*FakeScreen)(nil)

// KeyEvent is a key press that becomes available at a virtual offset from
// Epoch.
type KeyEvent struct {
	At  time.Duration
	Key ports.Key
}

// FakeKeyboard replays scripted keys against a FakeClock and scripted lines
// for blocking reads.
type FakeKeyboard struct {
	clock *FakeClock
	keys  []KeyEvent
	lines []string

	// LineDelay is how long the user "takes" to answer each ReadLine.
	LineDelay time.Duration

	// KeyErr, when set, is returned by ReadKey once the scripted keys run out.
	KeyErr error

	LinesRead int
}

// NewFakeKeyboard returns a keyboard bound to clock.
func NewFakeKeyboard(clock *FakeClock) *FakeKeyboard {
	return &FakeKeyboard{clock: clock}
}

// Type schedules every rune of text at offset at, followed by Enter when
// the text ends in "\n".
func (k *FakeKeyboard) Type(at time.Duration, text string) *FakeKeyboard {
	for _, r := range text {
		switch r {
		case '\n':
			k.keys = append(k.keys, KeyEvent{At: at, Key: ports.Key{Kind: ports.KeyEnter}})
		case '\b':
			k.keys = append(k.keys, KeyEvent{At: at, Key: ports.Key{Kind: ports.KeyBackspace}})
		default:
			k.keys = append(k.keys, KeyEvent{At: at, Key: ports.Key{Kind: ports.KeyPrintable, Char: r}})
		}
	}
	return k
}

// Press schedules a single key at offset at.
func (k *FakeKeyboard) Press(at time.Duration, key ports.Key) *FakeKeyboard {
	k.keys = append(k.keys, KeyEvent{At: at, Key: key})
	return k
}

// Lines queues answers for ReadLine.
func (k *FakeKeyboard) Lines(lines ...string) *FakeKeyboard {
	k.lines = append(k.lines, lines...)
	return k
}

// KeyAvailable reports whether the next scripted key is due.
func (k *FakeKeyboard) KeyAvailable() bool {
	return len(k.keys) > 0 && !Epoch.Add(k.keys[0].At).After(k.clock.Now())
}

// ReadKey pops the next key. If it is not yet due the clock jumps to it,
// like a real blocking read would wait for it.
func (k *FakeKeyboard) ReadKey() (ports.Key, error) {
	if len(k.keys) == 0 {
		if k.KeyErr != nil {
			return ports.Key{}, k.KeyErr
		}
		return ports.Key{}, ErrNoInput
	}
	ev := k.keys[0]
	k.keys = k.keys[1:]
	if due := Epoch.Add(ev.At); due.After(k.clock.Now()) {
		k.clock.Advance(due.Sub(k.clock.Now()))
	}
	return ev.Key, nil
}

// ReadLine pops the next scripted line after LineDelay of virtual time.
func (k *FakeKeyboard) ReadLine() (string, error) {
	if len(k.lines) == 0 {
		return "", ErrNoInput
	}
	line := k.lines[0]
	k.lines = k.lines[1:]
	k.LinesRead++
	k.clock.Advance(k.LineDelay)
	return line, nil
}

// Pending returns the number of scripted keys not yet read.
func (k *FakeKeyboard) Pending() int { return len(k.keys) }

var _ ports.Keyboard = (*FakeKeyboard)(nil)

// SequenceRandom returns scripted indexes in order, wrapping modulo n.
type SequenceRandom struct {
	Values []int
	Calls  []int
	pos    int
}

// IntN returns the next scripted value modulo n.
func (r *SequenceRandom) IntN(n int) int {
	r.Calls = append(r.Calls, n)
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[r.pos%len(r.Values)]
	r.pos++
	return v % n
}

var _ ports.Random = (*SequenceRandom)(nil)

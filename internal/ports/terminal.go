// Package ports defines the interfaces (driven and driving ports)
// for calm following hexagonal architecture principles.
// These interfaces define the contracts between the session engine and
// the terminal, clock, randomness and storage it runs against.
package ports

import "time"

// Clock is the time source for a session.
// This is a driven port (implemented by adapters).
type Clock interface {
	// Now returns the current instant. It must never go backwards.
	Now() time.Time

	// Sleep suspends the caller for d. It is the only suspension point the
	// renderer and the keystroke poller use.
	Sleep(d time.Duration)
}

// Screen is the terminal output surface.
// This is a driven port (implemented by adapters).
type Screen interface {
	// Write prints text at the cursor. "\n" starts a new line.
	Write(text string)

	// EraseLast removes the n cells left of the cursor and moves it back.
	EraseLast(n int)

	// ClearScreen clears the terminal and homes the cursor.
	ClearScreen()
}

// KeyKind classifies a single key press.
type KeyKind int

const (
	// KeyOther is any key the engine ignores (arrows, control keys).
	KeyOther KeyKind = iota

	// KeyPrintable carries a printable rune in Key.Char.
	KeyPrintable

	// KeyEnter commits the current line.
	KeyEnter

	// KeyBackspace removes the last character.
	KeyBackspace
)

// Key is one decoded key press.
type Key struct {
	Kind KeyKind
	Char rune
}

// Keyboard is the raw-mode input device.
// This is a driven port (implemented by adapters).
type Keyboard interface {
	// KeyAvailable reports whether ReadKey would return without blocking.
	KeyAvailable() bool

	// ReadKey returns the next key. It returns immediately once
	// KeyAvailable has reported true.
	ReadKey() (Key, error)

	// ReadLine blocks until a full line is entered. It is only used where
	// no deadline is running.
	ReadLine() (string, error)
}

// Random picks uniform indexes for prompt and question selection.
// *math/rand/v2.Rand satisfies it.
type Random interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

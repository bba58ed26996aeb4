// Package terminal adapts the process's stdin and stdout to the Screen and
// Keyboard ports. On a real terminal stdin is switched to raw mode so keys
// arrive one at a time, and a background reader queues them so the
// keystroke poller never blocks.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/cancelreader"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
	"github.com/xvierd/calm-cli/internal/render"
)

const keyBuffer = 1024

// Terminal implements ports.Screen and ports.Keyboard.
type Terminal struct {
	out    io.Writer
	raw    bool
	fd     uintptr
	state  *term.State
	reader cancelreader.CancelReader
	keys   chan keyEvent
	done   chan struct{}
	once   sync.Once
}

var (
	_ ports.Screen   = (*Terminal)(nil)
	_ ports.Keyboard = (*Terminal)(nil)
)

// Open wraps in and out. When in is a terminal it is put into raw mode
// until Close is called.
func Open(in *os.File, out io.Writer) (*Terminal, error) {
	fd := in.Fd()
	if !term.IsTerminal(fd) {
		return newTerminal(in, out, false)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t, err := newTerminal(in, out, true)
	if err != nil {
		_ = term.Restore(fd, state)
		return nil, err
	}
	t.fd = fd
	t.state = state
	return t, nil
}

func newTerminal(in io.Reader, out io.Writer, raw bool) (*Terminal, error) {
	reader, err := cancelreader.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to create input reader: %w", err)
	}
	t := &Terminal{
		out:    out,
		raw:    raw,
		reader: reader,
		keys:   make(chan keyEvent, keyBuffer),
		done:   make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

// IsRaw reports whether stdin is in raw mode.
func (t *Terminal) IsRaw() bool { return t.raw }

func (t *Terminal) readLoop() {
	defer close(t.keys)

	var dec decoder
	buf := make([]byte, 256)
	for {
		n, err := t.reader.Read(buf)
		for _, ev := range dec.decode(buf[:n]) {
			select {
			case t.keys <- ev:
			case <-t.done:
				return
			}
			if ev.err != nil && !errors.Is(ev.err, domain.ErrInterrupted) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) {
				select {
				case t.keys <- keyEvent{err: err}:
				case <-t.done:
				}
			}
			return
		}
	}
}

// Write prints text, translating "\n" to "\r\n" in raw mode.
func (t *Terminal) Write(text string) {
	if t.raw {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	_, _ = io.WriteString(t.out, text)
}

// EraseLast blanks the n cells left of the cursor.
func (t *Terminal) EraseLast(n int) {
	_, _ = io.WriteString(t.out, render.EraseFrame(n))
}

// ClearScreen clears the terminal and homes the cursor.
func (t *Terminal) ClearScreen() {
	_, _ = io.WriteString(t.out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
}

// KeyAvailable reports whether a decoded key is queued.
func (t *Terminal) KeyAvailable() bool {
	return len(t.keys) > 0
}

// ReadKey returns the next key, waiting for one if none is queued.
// Ctrl+C yields domain.ErrInterrupted, after which reading continues, and
// end of input io.EOF.
func (t *Terminal) ReadKey() (ports.Key, error) {
	ev, ok := <-t.keys
	if !ok {
		return ports.Key{}, io.EOF
	}
	if ev.err != nil {
		return ports.Key{}, ev.err
	}
	return ev.key, nil
}

// ReadLine reads keys until Enter and returns the typed line. In raw mode
// keys are echoed and Backspace edits the line.
func (t *Terminal) ReadLine() (string, error) {
	var line []rune
	for {
		key, err := t.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
				return string(line), nil
			}
			return "", err
		}

		switch key.Kind {
		case ports.KeyEnter:
			if t.raw {
				t.Write("\n")
			}
			return string(line), nil
		case ports.KeyBackspace:
			if len(line) == 0 {
				continue
			}
			last := line[len(line)-1]
			line = line[:len(line)-1]
			if t.raw {
				t.EraseLast(max(ansi.StringWidth(string(last)), 1))
			}
		case ports.KeyPrintable:
			line = append(line, key.Char)
			if t.raw {
				t.Write(string(key.Char))
			}
		}
	}
}

// Close stops the input reader and restores the terminal mode.
func (t *Terminal) Close() error {
	var err error
	t.once.Do(func() {
		close(t.done)
		t.reader.Cancel()
		if t.state != nil {
			if rerr := term.Restore(t.fd, t.state); rerr != nil {
				err = fmt.Errorf("failed to restore terminal: %w", rerr)
			}
		}
	})
	return err
}

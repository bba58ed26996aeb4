package terminal

import (
	"io"
	"unicode/utf8"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyCtrlH     = 0x08
	keyEnter     = '\r'
	keyNewline   = '\n'
	keyEscape    = 0x1b
	keyBackspace = 0x7f

	// maxEscape bounds how long an unfinished escape sequence is held
	// waiting for its final byte.
	maxEscape = 32
)

// keyEvent is one decoded key, or the error that ends input.
type keyEvent struct {
	key ports.Key
	err error
}

// decoder turns raw stdin bytes into key events. It keeps the bytes of a
// rune or escape sequence split across reads and folds "\r\n" into a
// single Enter.
type decoder struct {
	pending []byte
	lastCR  bool
}

func (d *decoder) decode(chunk []byte) []keyEvent {
	buf := append(d.pending, chunk...)
	d.pending = nil

	var events []keyEvent
	for i := 0; i < len(buf); {
		b := buf[i]
		wasCR := d.lastCR
		d.lastCR = false

		switch {
		case b == keyEnter:
			d.lastCR = true
			events = append(events, keyEvent{key: ports.Key{Kind: ports.KeyEnter}})
			i++
		case b == keyNewline:
			if !wasCR {
				events = append(events, keyEvent{key: ports.Key{Kind: ports.KeyEnter}})
			}
			i++
		case b == keyBackspace || b == keyCtrlH:
			events = append(events, keyEvent{key: ports.Key{Kind: ports.KeyBackspace}})
			i++
		case b == keyCtrlC:
			events = append(events, keyEvent{err: domain.ErrInterrupted})
			i++
		case b == keyCtrlD:
			return append(events, keyEvent{err: io.EOF})
		case b == keyEscape:
			n, complete := escapeLength(buf[i:])
			if !complete {
				d.pending = append([]byte(nil), buf[i:]...)
				return events
			}
			i += n
			events = append(events, keyEvent{key: ports.Key{Kind: ports.KeyOther}})
		case b < 0x20:
			events = append(events, keyEvent{key: ports.Key{Kind: ports.KeyOther}})
			i++
		default:
			if !utf8.FullRune(buf[i:]) {
				d.pending = append([]byte(nil), buf[i:]...)
				return events
			}
			r, size := utf8.DecodeRune(buf[i:])
			kind := ports.KeyPrintable
			if r == utf8.RuneError {
				kind = ports.KeyOther
			}
			events = append(events, keyEvent{key: ports.Key{Kind: kind, Char: r}})
			i += size
		}
	}
	return events
}

// escapeLength returns how many bytes the escape sequence at the start of
// buf occupies: CSI and SS3 sequences up to their final byte, a lone ESC
// or ESC plus one byte otherwise. complete is false when a CSI or SS3
// sequence has not received its final byte yet.
func escapeLength(buf []byte) (n int, complete bool) {
	if len(buf) < 2 {
		return 1, true
	}
	switch buf[1] {
	case '[':
		for j := 2; j < len(buf); j++ {
			if buf[j] >= 0x40 && buf[j] <= 0x7e {
				return j + 1, true
			}
		}
	case 'O':
		if len(buf) >= 3 {
			return 3, true
		}
	default:
		return 2, true
	}
	if len(buf) >= maxEscape {
		return len(buf), true
	}
	return 0, false
}

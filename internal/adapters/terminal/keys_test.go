package terminal

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

func kinds(events []keyEvent) []ports.KeyKind {
	out := make([]ports.KeyKind, len(events))
	for i, ev := range events {
		out[i] = ev.key.Kind
	}
	return out
}

func TestDecoder_Keys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ports.KeyKind
	}{
		{"printable", "ab", []ports.KeyKind{ports.KeyPrintable, ports.KeyPrintable}},
		{"carriage return", "a\r", []ports.KeyKind{ports.KeyPrintable, ports.KeyEnter}},
		{"newline", "a\n", []ports.KeyKind{ports.KeyPrintable, ports.KeyEnter}},
		{"crlf is one enter", "\r\n", []ports.KeyKind{ports.KeyEnter}},
		{"two newlines", "\n\n", []ports.KeyKind{ports.KeyEnter, ports.KeyEnter}},
		{"delete", "\x7f", []ports.KeyKind{ports.KeyBackspace}},
		{"ctrl-h", "\x08", []ports.KeyKind{ports.KeyBackspace}},
		{"arrow key", "\x1b[A", []ports.KeyKind{ports.KeyOther}},
		{"function key", "\x1b[15~x", []ports.KeyKind{ports.KeyOther, ports.KeyPrintable}},
		{"ss3 key", "\x1bOPx", []ports.KeyKind{ports.KeyOther, ports.KeyPrintable}},
		{"lone escape", "\x1b", []ports.KeyKind{ports.KeyOther}},
		{"tab", "\t", []ports.KeyKind{ports.KeyOther}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d decoder
			assert.Equal(t, tt.want, kinds(d.decode([]byte(tt.input))))
		})
	}
}

func TestDecoder_RuneSplitAcrossReads(t *testing.T) {
	var d decoder
	b := []byte("é")

	assert.Empty(t, d.decode(b[:1]))
	events := d.decode(b[1:])

	require.Len(t, events, 1)
	assert.Equal(t, ports.Key{Kind: ports.KeyPrintable, Char: 'é'}, events[0].key)
}

func TestDecoder_CRLFSplitAcrossReads(t *testing.T) {
	var d decoder

	first := d.decode([]byte("x\r"))
	second := d.decode([]byte("\ny"))

	assert.Equal(t, []ports.KeyKind{ports.KeyPrintable, ports.KeyEnter}, kinds(first))
	assert.Equal(t, []ports.KeyKind{ports.KeyPrintable}, kinds(second))
}

func TestDecoder_ControlErrors(t *testing.T) {
	var d decoder
	events := d.decode([]byte("a\x03b"))
	require.Len(t, events, 3)
	assert.ErrorIs(t, events[1].err, domain.ErrInterrupted)
	assert.Equal(t, ports.Key{Kind: ports.KeyPrintable, Char: 'b'}, events[2].key)

	d = decoder{}
	events = d.decode([]byte("\x04"))
	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].err, io.EOF)
}

func TestDecoder_EscapeSplitAcrossReads(t *testing.T) {
	tests := []struct {
		name          string
		first, second string
	}{
		{"csi", "x\x1b[", "Ay"},
		{"csi parameters", "x\x1b[1", "5~y"},
		{"ss3", "x\x1bO", "Py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d decoder
			first := d.decode([]byte(tt.first))
			second := d.decode([]byte(tt.second))

			all := append(first, second...)
			assert.Equal(t, []ports.KeyKind{ports.KeyPrintable, ports.KeyOther, ports.KeyPrintable}, kinds(all))
			assert.Equal(t, 'y', all[2].key.Char)
		})
	}
}

func TestDecoder_UnterminatedEscapeIsBounded(t *testing.T) {
	var d decoder
	seq := "\x1b[" + strings.Repeat("1", maxEscape)

	events := d.decode([]byte(seq))

	assert.Equal(t, []ports.KeyKind{ports.KeyOther}, kinds(events))
	assert.Empty(t, d.pending)
}

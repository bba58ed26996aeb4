package terminal

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

func waitForKey(t *testing.T, term *Terminal) {
	t.Helper()
	require.Eventually(t, term.KeyAvailable, time.Second, time.Millisecond)
}

func TestTerminal_ReadKeyAndEOF(t *testing.T) {
	term, err := newTerminal(strings.NewReader("hi"), io.Discard, false)
	require.NoError(t, err)
	defer func() { _ = term.Close() }()

	waitForKey(t, term)
	key, err := term.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, ports.Key{Kind: ports.KeyPrintable, Char: 'h'}, key)

	key, err = term.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, 'i', key.Char)

	_, err = term.ReadKey()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminal_ReadLine(t *testing.T) {
	term, err := newTerminal(strings.NewReader("20\nsec\x7fcond\n"), io.Discard, false)
	require.NoError(t, err)
	defer func() { _ = term.Close() }()

	line, err := term.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "20", line)

	line, err = term.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = term.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminal_ReadLineUnterminated(t *testing.T) {
	term, err := newTerminal(strings.NewReader("last"), io.Discard, false)
	require.NoError(t, err)
	defer func() { _ = term.Close() }()

	line, err := term.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "last", line)
}

func TestTerminal_Interrupt(t *testing.T) {
	term, err := newTerminal(strings.NewReader("ab\x03cd"), io.Discard, false)
	require.NoError(t, err)
	defer func() { _ = term.Close() }()

	_, err = term.ReadLine()
	assert.ErrorIs(t, err, domain.ErrInterrupted)
}

func TestTerminal_ReadingContinuesAfterInterrupt(t *testing.T) {
	term, err := newTerminal(strings.NewReader("\x032\n"), io.Discard, false)
	require.NoError(t, err)
	defer func() { _ = term.Close() }()

	_, err = term.ReadKey()
	assert.ErrorIs(t, err, domain.ErrInterrupted)

	line, err := term.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "2", line)

	_, err = term.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminal_RawWriteTranslatesNewlines(t *testing.T) {
	var out bytes.Buffer
	term, err := newTerminal(strings.NewReader(""), &out, true)
	require.NoError(t, err)
	defer func() { _ = term.Close() }()

	term.Write("one\ntwo\n")
	assert.Equal(t, "one\r\ntwo\r\n", out.String())
}

func TestTerminal_RawReadLineEchoes(t *testing.T) {
	var out bytes.Buffer
	term, err := newTerminal(strings.NewReader("ab\x7fc\r"), &out, true)
	require.NoError(t, err)
	defer func() { _ = term.Close() }()

	line, err := term.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ac", line)
	assert.Equal(t, "ab\b \bc\r\n", out.String())
}

func TestTerminal_ScreenSequences(t *testing.T) {
	var out bytes.Buffer
	term, err := newTerminal(strings.NewReader(""), &out, false)
	require.NoError(t, err)
	defer func() { _ = term.Close() }()

	term.ClearScreen()
	term.EraseLast(2)

	assert.Equal(t, "\x1b[2J\x1b[H\b \b\b \b", out.String())
}

func TestTerminal_CloseTwice(t *testing.T) {
	term, err := newTerminal(strings.NewReader(""), io.Discard, false)
	require.NoError(t, err)

	assert.NoError(t, term.Close())
	assert.NoError(t, term.Close())
}

func TestNewRandom_SeedIsRepeatable(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.IntN(100), b.IntN(100))
	}
}

func TestSystemClock(t *testing.T) {
	var c SystemClock
	start := c.Now()
	c.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, c.Now().Sub(start), time.Millisecond)
}

// Package render draws the in-place countdown and spinner animations used
// while a session is paused on a prompt. Frame construction is kept free of
// timing so it can be checked without a terminal.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SpinnerGlyphs is the rotation shown by the spinner, one glyph per tick.
var SpinnerGlyphs = []string{"|", "/", "-", "\\"}

// SpinnerFrame returns the glyph for the given tick.
func SpinnerFrame(tick int) string {
	return SpinnerGlyphs[tick%len(SpinnerGlyphs)]
}

// CountdownFrame returns the text shown for a countdown value.
func CountdownFrame(n int) string {
	return strconv.Itoa(n)
}

// FrameWidth returns how many screen cells a frame occupies.
func FrameWidth(frame string) int {
	return ansi.StringWidth(frame)
}

// EraseFrame returns the bytes that blank the n cells left of the cursor
// and leave the cursor where the first of them was.
func EraseFrame(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("\b \b", n)
}

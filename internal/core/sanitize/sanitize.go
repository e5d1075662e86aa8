// Package sanitize makes user-supplied text safe to place in terminal output.
//
// Task, owner and due date values come from transcripts and other users and
// are rendered straight into the TUI. Any escape sequence they carry could
// move the cursor, recolor the screen or set the window title, so every such
// value goes through Line before it is rendered.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Line returns s with ANSI escape sequences and control characters removed.
// Line breaks and tabs become single spaces so the value renders on one row.
func Line(s string) string {
	if s == "" {
		return s
	}

	s = ansi.Strip(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n', r == '\r', r == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(r), isBidiControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isBidiControl reports directional formatting characters that can reorder
// the visible text around them.
func isBidiControl(r rune) bool {
	switch {
	case r >= '\u202a' && r <= '\u202e':
		return true
	case r >= '\u2066' && r <= '\u2069':
		return true
	case r == '\u200e', r == '\u200f':
		return true
	}
	return false
}

package tab

import (
	"fmt"
	"unicode/utf8"
)

// Position is a line and column inside a tab.
// Both fields are 0-indexed; Col counts runes, not bytes.
type Position struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// RuneCount returns the number of characters in s.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ByteOffset converts a rune column into a byte offset within s.
// Columns past the end of s map to len(s).
func ByteOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == col {
			return i
		}
		n++
	}
	return len(s)
}

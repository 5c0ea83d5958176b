package dispatcher

import "strings"

// History records submitted command lines and walks them for recall.
//
// The recall cursor lies in [0, Len()]. Len() means "past the newest entry"
// and recalls as an empty line.
type History struct {
	entries [][]string
	cursor  int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append records tokens and resets the recall cursor.
func (h *History) Append(tokens []string) {
	h.entries = append(h.entries, append([]string(nil), tokens...))
	h.cursor = len(h.entries)
}

// Previous moves toward older entries and returns the recalled line.
// It stops at the oldest entry.
func (h *History) Previous() string {
	if len(h.entries) == 0 {
		return ""
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return strings.Join(h.entries[h.cursor], " ")
}

// Next moves toward newer entries and returns the recalled line.
// Moving past the newest entry returns "".
func (h *History) Next() string {
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor >= len(h.entries) {
		return ""
	}
	return strings.Join(h.entries[h.cursor], " ")
}

// ResetRecall moves the recall cursor past the newest entry.
func (h *History) ResetRecall() {
	h.cursor = len(h.entries)
}

// Cursor returns the recall cursor.
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns the recorded lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = strings.Join(e, " ")
	}
	return out
}

package tab

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Tab is one open document.
type Tab struct {
	// Filename is the file backing the tab; empty if untitled.
	Filename string

	// Name is the label shown in the tab bar.
	Name string

	// Changed reports unsaved modifications.
	Changed bool

	lines  []string
	cursor Position
	scroll int
	edits  []Edit
}

// New creates an empty tab with one empty line.
func New(name string) *Tab {
	return &Tab{
		Name:  name,
		lines: []string{""},
	}
}

// Title returns the label for the tab bar.
func (t *Tab) Title() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Filename != "" {
		return filepath.Base(t.Filename)
	}
	return "[untitled]"
}

// Lines returns the buffer lines. The slice must not be modified.
func (t *Tab) Lines() []string {
	return t.lines
}

// LineCount returns the number of lines (always at least one).
func (t *Tab) LineCount() int {
	return len(t.lines)
}

// Line returns the line at index i, or "" if i is out of range.
func (t *Tab) Line(i int) string {
	if i < 0 || i >= len(t.lines) {
		return ""
	}
	return t.lines[i]
}

// Text returns the buffer joined with newlines.
func (t *Tab) Text() string {
	return strings.Join(t.lines, "\n")
}

// Cursor returns the cursor position.
func (t *Tab) Cursor() Position {
	return t.cursor
}

// Scroll returns the first visible line.
func (t *Tab) Scroll() int {
	return t.scroll
}

// Edits returns the edit snapshot log, oldest first.
func (t *Tab) Edits() []Edit {
	return t.edits
}

// LastEdit returns the most recent edit snapshot.
func (t *Tab) LastEdit() (Edit, bool) {
	if len(t.edits) == 0 {
		return Edit{}, false
	}
	return t.edits[len(t.edits)-1], true
}

// SetLines replaces the buffer. An empty slice becomes one empty line.
// The cursor and scroll offset return to the top and the tab is marked changed.
func (t *Tab) SetLines(lines []string) {
	before := cloneLines(t.lines)
	start := t.cursor
	t.replace(lines)
	t.Changed = true
	t.record(Edit{Kind: EditReplace, Start: start, End: t.cursor, Before: before, After: cloneLines(t.lines)})
}

// SetText replaces the buffer with s split on newlines.
func (t *Tab) SetText(s string) {
	t.SetLines(splitLines(s))
}

func (t *Tab) replace(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	t.lines = cloneLines(lines)
	t.cursor = Position{}
	t.scroll = 0
}

// Load replaces the buffer with the contents of path.
//
// If the file does not exist the buffer is reset to a single empty line named
// after path and the not-exist error is still returned, so the caller can
// report it while the tab becomes a new file. Any other error leaves the tab
// untouched.
func (t *Tab) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.replace(nil)
			t.Filename = path
			t.Changed = false
		}
		return err
	}

	t.replace(splitLines(string(data)))
	t.Filename = path
	t.Changed = false
	return nil
}

// Save writes the buffer to path with a trailing newline.
// On success the tab takes path as its filename and is marked clean.
func (t *Tab) Save(path string) error {
	if err := os.WriteFile(path, []byte(t.Text()+"\n"), 0o644); err != nil {
		return err
	}
	t.Filename = path
	t.Changed = false
	return nil
}

// splitLines splits file content into lines, dropping one trailing newline
// and any carriage return before each newline.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// clampCursor restores the cursor invariant after external changes.
func (t *Tab) clampCursor() {
	if t.cursor.Line >= len(t.lines) {
		t.cursor.Line = len(t.lines) - 1
	}
	if t.cursor.Line < 0 {
		t.cursor.Line = 0
	}
	n := RuneCount(t.lines[t.cursor.Line])
	if t.cursor.Col > n {
		t.cursor.Col = n
	}
	if t.cursor.Col < 0 {
		t.cursor.Col = 0
	}
}

func (t *Tab) record(e Edit) {
	t.edits = append(t.edits, e)
}

// InsertRune inserts r at the cursor and advances the cursor by one column.
func (t *Tab) InsertRune(r rune) {
	t.clampCursor()
	line := t.lines[t.cursor.Line]
	start := t.cursor
	at := ByteOffset(line, t.cursor.Col)

	t.lines[t.cursor.Line] = line[:at] + string(r) + line[at:]
	t.cursor.Col++
	t.Changed = true

	t.record(Edit{
		Kind:   EditInsert,
		Start:  start,
		End:    t.cursor,
		Before: []string{line},
		After:  []string{t.lines[t.cursor.Line]},
	})
}

// SplitLine breaks the current line at the cursor. The text after the
// cursor moves to a new line below and the cursor goes to its start.
func (t *Tab) SplitLine() {
	t.clampCursor()
	y := t.cursor.Line
	line := t.lines[y]
	start := t.cursor
	at := ByteOffset(line, t.cursor.Col)

	head, rest := line[:at], line[at:]
	t.lines = append(t.lines, "")
	copy(t.lines[y+2:], t.lines[y+1:])
	t.lines[y] = head
	t.lines[y+1] = rest

	t.cursor = Position{Line: y + 1, Col: 0}
	t.Changed = true

	t.record(Edit{
		Kind:   EditNewline,
		Start:  start,
		End:    t.cursor,
		Before: []string{line},
		After:  []string{head, rest},
	})
}

// Backspace removes the character left of the cursor. At the start of a
// line it joins the line onto the previous one; at the very start of the
// buffer it does nothing.
func (t *Tab) Backspace() {
	t.clampCursor()
	y := t.cursor.Line
	start := t.cursor

	if t.cursor.Col == 0 {
		if y == 0 {
			return
		}
		prev, cur := t.lines[y-1], t.lines[y]
		t.lines[y-1] = prev + cur
		t.lines = append(t.lines[:y], t.lines[y+1:]...)
		t.cursor = Position{Line: y - 1, Col: RuneCount(prev)}
		t.Changed = true

		t.record(Edit{
			Kind:   EditMerge,
			Start:  start,
			End:    t.cursor,
			Before: []string{prev, cur},
			After:  []string{t.lines[y-1]},
		})
		return
	}

	line := t.lines[y]
	from := ByteOffset(line, t.cursor.Col-1)
	to := ByteOffset(line, t.cursor.Col)
	t.lines[y] = line[:from] + line[to:]
	t.cursor.Col--
	t.Changed = true

	t.record(Edit{
		Kind:   EditDelete,
		Start:  start,
		End:    t.cursor,
		Before: []string{line},
		After:  []string{t.lines[y]},
	})
}

// MoveVertical moves the cursor delta lines, clamped to the buffer, and
// clamps the column to the length of the target line.
func (t *Tab) MoveVertical(delta int) {
	t.cursor.Line = clamp(t.cursor.Line+delta, 0, len(t.lines)-1)
	t.cursor.Col = clamp(t.cursor.Col, 0, RuneCount(t.lines[t.cursor.Line]))
}

// MoveHorizontal moves the cursor delta columns within the current line.
func (t *Tab) MoveHorizontal(delta int) {
	t.clampCursor()
	t.cursor.Col = clamp(t.cursor.Col+delta, 0, RuneCount(t.lines[t.cursor.Line]))
}

// SetCursor places the cursor, clamping it into the buffer.
func (t *Tab) SetCursor(p Position) {
	t.cursor = p
	t.clampCursor()
}

// maxScroll is the largest valid scroll offset.
func (t *Tab) maxScroll() int {
	return max(0, len(t.lines)-1)
}

// SetScroll sets the first visible line, clamped to [0, lines-1].
func (t *Tab) SetScroll(offset int) {
	t.scroll = clamp(offset, 0, t.maxScroll())
}

// ScrollBy moves the scroll offset by delta lines.
func (t *Tab) ScrollBy(delta int) {
	t.SetScroll(t.scroll + delta)
}

// ScrollToCursor adjusts the scroll offset so the cursor line lies inside a
// viewport of height rows.
func (t *Tab) ScrollToCursor(height int) {
	if height <= 0 {
		return
	}
	if t.cursor.Line < t.scroll {
		t.SetScroll(t.cursor.Line)
	} else if t.cursor.Line >= t.scroll+height {
		t.SetScroll(t.cursor.Line - height + 1)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package dispatcher

// CommandLine is the editable text of the command field.
// The cursor counts runes.
type CommandLine struct {
	text   []rune
	cursor int
}

// Text returns the current text.
func (c *CommandLine) Text() string {
	return string(c.text)
}

// Cursor returns the cursor position in runes.
func (c *CommandLine) Cursor() int {
	return c.cursor
}

// Len returns the length in runes.
func (c *CommandLine) Len() int {
	return len(c.text)
}

// Set replaces the text and moves the cursor to the end.
func (c *CommandLine) Set(s string) {
	c.text = []rune(s)
	c.cursor = len(c.text)
}

// Clear empties the line.
func (c *CommandLine) Clear() {
	c.text = c.text[:0]
	c.cursor = 0
}

// Insert inserts r at the cursor.
func (c *CommandLine) Insert(r rune) {
	c.text = append(c.text, 0)
	copy(c.text[c.cursor+1:], c.text[c.cursor:])
	c.text[c.cursor] = r
	c.cursor++
}

// Backspace removes the rune left of the cursor.
func (c *CommandLine) Backspace() {
	if c.cursor == 0 {
		return
	}
	c.text = append(c.text[:c.cursor-1], c.text[c.cursor:]...)
	c.cursor--
}

// Left moves the cursor one rune left.
func (c *CommandLine) Left() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// Right moves the cursor one rune right.
func (c *CommandLine) Right() {
	if c.cursor < len(c.text) {
		c.cursor++
	}
}

// Package backend abstracts the terminal the editor draws on.
//
// Terminal drives a real terminal through tcell. MemoryBackend keeps its
// cells in memory and replays queued events, for tests.
package backend

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	// EventWake is delivered after Wake; it carries no input.
	EventWake
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int
}

// KeyEvent returns a key event for a special key.
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent returns a key event for a printable rune.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// FunctionNumber returns n for KeyFn, or 0 for any other key.
func (k Key) FunctionNumber() int {
	if k >= KeyF1 && k <= KeyF12 {
		return int(k-KeyF1) + 1
	}
	return 0
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Color is a terminal palette color.
type Color int

const (
	ColorDefault Color = iota
	ColorWhite
	ColorYellow
	ColorCyan
	ColorGray
)

// Style is the look of one cell.
type Style struct {
	Fg, Bg  Color
	Bold    bool
	Reverse bool
}

// StyleDefault is the terminal's default style.
var StyleDefault = Style{}

// Cell is one screen cell. Width is 2 for wide runes; the cell to the right
// of a wide rune holds Rune 0.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// Backend is the drawing surface and input source of the editor.
type Backend interface {
	// Init prepares the terminal. Must be called before any other method.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// SetCell sets the cell at x, y. Positions outside the screen are ignored.
	SetCell(x, y int, r rune, style Style)

	// Clear blanks the whole screen.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent blocks until the next event.
	PollEvent() Event

	// Wake makes a blocked PollEvent return an EventWake.
	// It is safe to call from any goroutine.
	Wake()
}
